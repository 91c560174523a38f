package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReviewService handles review submission and moderation. Every moderation
// event and deletion recomputes the product's denormalized rating aggregate
// from the full set of approved reviews.
type ReviewService struct {
	reviewRepo  catalog.ReviewRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo catalog.ReviewRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Submit creates a pending review. A user may review a product only once.
func (s *ReviewService) Submit(ctx context.Context, input SubmitReviewInput) (*ReviewResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, input.ProductID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByUserAndProduct(ctx, input.UserID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "You have already reviewed this product")
	}

	review, err := catalog.NewReview(input.UserID, input.ProductID, input.Rating, input.Title, input.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "You have already reviewed this product")
		}
		return nil, err
	}

	s.logger.Info("Review submitted",
		zap.String("review_id", review.ID.String()),
		zap.String("product_id", input.ProductID.String()))

	resp := ToReviewResponse(review)
	return &resp, nil
}

// ListApprovedByProduct lists the approved reviews shown on a product page
func (s *ReviewService) ListApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewResponse, error) {
	filter := shared.DefaultFilter()
	filter.Page = 0 // unpaged
	filter.Filters["status"] = catalog.ReviewStatusApproved

	reviews, err := s.reviewRepo.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}
	return toReviewResponses(reviews), nil
}

// ListByStatus lists reviews in a moderation state for the back office
func (s *ReviewService) ListByStatus(ctx context.Context, status catalog.ReviewStatus, page, pageSize int) ([]ReviewResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 && pageSize > 0 {
		filter.Page = page
		filter.PageSize = pageSize
	}

	reviews, err := s.reviewRepo.FindByStatus(ctx, status, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reviewRepo.CountByStatus(ctx, status)
	if err != nil {
		return nil, 0, err
	}
	return toReviewResponses(reviews), total, nil
}

// Moderate approves or rejects a pending review and refreshes the product's
// rating aggregate.
func (s *ReviewService) Moderate(ctx context.Context, reviewID uuid.UUID, status string) (*ReviewResponse, error) {
	target, err := catalog.ParseReviewStatus(status)
	if err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	switch target {
	case catalog.ReviewStatusApproved:
		err = review.Approve()
	case catalog.ReviewStatusRejected:
		err = review.Reject()
	}
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}
	if err := s.refreshAggregate(ctx, review.ProductID); err != nil {
		return nil, err
	}

	s.logger.Info("Review moderated",
		zap.String("review_id", review.ID.String()),
		zap.String("status", string(review.Status)))

	resp := ToReviewResponse(review)
	return &resp, nil
}

// Delete removes a review and refreshes the product's rating aggregate
func (s *ReviewService) Delete(ctx context.Context, reviewID uuid.UUID) error {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}
	if err := s.refreshAggregate(ctx, review.ProductID); err != nil {
		return err
	}

	s.logger.Info("Review deleted", zap.String("review_id", reviewID.String()))
	return nil
}

// refreshAggregate recomputes the denormalized rating from scratch, so the
// stored aggregate can never drift from the underlying reviews.
func (s *ReviewService) refreshAggregate(ctx context.Context, productID uuid.UUID) error {
	agg, err := s.reviewRepo.AggregateApproved(ctx, productID)
	if err != nil {
		return err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		// The product may have been deleted since; nothing to refresh
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	product.ApplyRatingAggregate(agg.Rating, agg.ReviewCount)
	return s.productRepo.Save(ctx, product)
}

func toReviewResponses(reviews []catalog.Review) []ReviewResponse {
	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = ToReviewResponse(&reviews[i])
	}
	return responses
}
