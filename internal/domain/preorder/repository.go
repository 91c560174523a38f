package preorder

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// PreorderRepository defines persistence operations for preorder requests
type PreorderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Preorder, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Preorder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Preorder, error)
	Save(ctx context.Context, p *Preorder) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
