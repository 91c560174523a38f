package preorder

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/preorder"
)

// ObjectStorage is the slice of the storage backend the preorder flow needs
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey, contentType string, body io.Reader) (string, error)
	DeleteObject(ctx context.Context, storageKey string) error
}

// ImageUpload is one reference image attached to a preorder request
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// SubmitInput contains input for submitting a preorder request
type SubmitInput struct {
	UserID      uuid.UUID
	ItemName    string
	Description string
	Images      []ImageUpload
}

// PreorderResponse is the public view of a preorder request
type PreorderResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	ItemName    string    `json:"item_name"`
	Description string    `json:"description"`
	ImageURLs   []string  `json:"image_urls"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToPreorderResponse converts a domain preorder to its public view
func ToPreorderResponse(p *preorder.Preorder) PreorderResponse {
	urls := p.Images()
	if urls == nil {
		urls = []string{}
	}
	return PreorderResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		ItemName:    p.ItemName,
		Description: p.Description,
		ImageURLs:   urls,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}
