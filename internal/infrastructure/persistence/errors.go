package persistence

import (
	"errors"

	"github.com/lib/pq"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

const pqUniqueViolation = "23505"

// translateError maps driver-level errors to domain sentinels so services
// never see gorm or pq types.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return shared.ErrAlreadyExists
	}
	return err
}
