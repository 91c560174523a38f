package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/preorder"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPreorderRepository implements PreorderRepository using GORM
type GormPreorderRepository struct {
	db *gorm.DB
}

// NewGormPreorderRepository creates a new GormPreorderRepository
func NewGormPreorderRepository(db *gorm.DB) *GormPreorderRepository {
	return &GormPreorderRepository{db: db}
}

// FindByID finds a preorder by its ID
func (r *GormPreorderRepository) FindByID(ctx context.Context, id uuid.UUID) (*preorder.Preorder, error) {
	var p preorder.Preorder
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByUser finds a user's preorders matching the filter
func (r *GormPreorderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]preorder.Preorder, error) {
	var preorders []preorder.Preorder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&preorder.Preorder{}).Where("user_id = ?", userID),
		filter,
	)
	if err := query.Find(&preorders).Error; err != nil {
		return nil, err
	}
	return preorders, nil
}

// FindAll finds all preorders matching the filter
func (r *GormPreorderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]preorder.Preorder, error) {
	var preorders []preorder.Preorder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&preorder.Preorder{}), filter)
	if err := query.Find(&preorders).Error; err != nil {
		return nil, err
	}
	return preorders, nil
}

// Save creates or updates a preorder
func (r *GormPreorderRepository) Save(ctx context.Context, p *preorder.Preorder) error {
	return translateError(r.db.WithContext(ctx).Save(p).Error)
}

// Delete deletes a preorder
func (r *GormPreorderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&preorder.Preorder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts preorders matching the filter
func (r *GormPreorderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&preorder.Preorder{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPreorderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormPreorderRepository implements PreorderRepository
var _ preorder.PreorderRepository = (*GormPreorderRepository)(nil)
