package preorder

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/preorder"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// PreorderService handles preorder requests and their reference images
type PreorderService struct {
	preorderRepo preorder.PreorderRepository
	storage      ObjectStorage
	logger       *zap.Logger
}

// NewPreorderService creates a new PreorderService
func NewPreorderService(
	preorderRepo preorder.PreorderRepository,
	storage ObjectStorage,
	logger *zap.Logger,
) *PreorderService {
	return &PreorderService{
		preorderRepo: preorderRepo,
		storage:      storage,
		logger:       logger,
	}
}

// Submit files a preorder request, uploading up to three reference images to
// object storage first. A failure after any upload removes the objects
// already stored; cleanup failures are logged, never surfaced.
func (s *PreorderService) Submit(ctx context.Context, input SubmitInput) (*PreorderResponse, error) {
	if len(input.Images) > preorder.MaxImages {
		return nil, shared.NewDomainError("TOO_MANY_IMAGES",
			fmt.Sprintf("A preorder may carry at most %d images", preorder.MaxImages))
	}
	for _, img := range input.Images {
		if !allowedImageTypes[img.ContentType] {
			return nil, shared.NewDomainError("INVALID_IMAGE_TYPE",
				"Images must be JPEG, PNG, WebP or GIF")
		}
	}

	var keys []string
	var urls []string
	for _, img := range input.Images {
		key := imageKey(img.Filename)
		url, err := s.storage.Upload(ctx, key, img.ContentType, img.Body)
		if err != nil {
			s.cleanup(ctx, keys)
			return nil, fmt.Errorf("failed to upload preorder image: %w", err)
		}
		keys = append(keys, key)
		urls = append(urls, url)
	}

	p, err := preorder.NewPreorder(input.UserID, input.ItemName, input.Description, urls)
	if err != nil {
		s.cleanup(ctx, keys)
		return nil, err
	}
	if err := s.preorderRepo.Save(ctx, p); err != nil {
		s.cleanup(ctx, keys)
		return nil, err
	}

	s.logger.Info("Preorder submitted",
		zap.String("preorder_id", p.ID.String()),
		zap.String("user_id", input.UserID.String()),
		zap.Int("images", len(urls)))

	resp := ToPreorderResponse(p)
	return &resp, nil
}

// ListForUser lists a user's preorder requests, newest first
func (s *PreorderService) ListForUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]PreorderResponse, error) {
	filter := shared.DefaultFilter()
	if page > 0 && pageSize > 0 {
		filter.Page = page
		filter.PageSize = pageSize
	}

	preorders, err := s.preorderRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return toPreorderResponses(preorders), nil
}

// List lists preorder requests for the back office, optionally by status
func (s *PreorderService) List(ctx context.Context, status string, page, pageSize int) ([]PreorderResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 && pageSize > 0 {
		filter.Page = page
		filter.PageSize = pageSize
	}
	if status != "" {
		parsed, err := preorder.ParseStatus(status)
		if err != nil {
			return nil, 0, err
		}
		filter.Filters["status"] = parsed
	}

	preorders, err := s.preorderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.preorderRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return toPreorderResponses(preorders), total, nil
}

// UpdateStatus moves a preorder request to a new handling status
func (s *PreorderService) UpdateStatus(ctx context.Context, preorderID uuid.UUID, status string) (*PreorderResponse, error) {
	target, err := preorder.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	p, err := s.preorderRepo.FindByID(ctx, preorderID)
	if err != nil {
		return nil, err
	}
	p.ChangeStatus(target)
	if err := s.preorderRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Preorder status updated",
		zap.String("preorder_id", p.ID.String()),
		zap.String("status", string(p.Status)))

	resp := ToPreorderResponse(p)
	return &resp, nil
}

// Delete removes a preorder request and its stored images. Object removal is
// best-effort: a storage failure is logged and the deletion still succeeds.
func (s *PreorderService) Delete(ctx context.Context, preorderID uuid.UUID) error {
	p, err := s.preorderRepo.FindByID(ctx, preorderID)
	if err != nil {
		return err
	}
	if err := s.preorderRepo.Delete(ctx, preorderID); err != nil {
		return err
	}

	var keys []string
	for _, url := range p.Images() {
		if key := storageKeyFromURL(url); key != "" {
			keys = append(keys, key)
		}
	}
	s.cleanup(ctx, keys)

	s.logger.Info("Preorder deleted", zap.String("preorder_id", preorderID.String()))
	return nil
}

// storageKeyFromURL recovers the storage key from a persisted object URL
func storageKeyFromURL(url string) string {
	idx := strings.Index(url, "preorders/")
	if idx < 0 {
		return ""
	}
	return url[idx:]
}

func (s *PreorderService) cleanup(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storage.DeleteObject(ctx, key); err != nil {
			s.logger.Warn("Failed to remove orphaned preorder image",
				zap.String("storage_key", key),
				zap.Error(err))
		}
	}
}

func imageKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return "preorders/" + uuid.NewString() + ext
}

func toPreorderResponses(preorders []preorder.Preorder) []PreorderResponse {
	responses := make([]PreorderResponse, len(preorders))
	for i := range preorders {
		responses[i] = ToPreorderResponse(&preorders[i])
	}
	return responses
}
