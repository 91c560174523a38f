package preorder

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// MaxImages is the cap on reference images per preorder request
const MaxImages = 3

// Status represents the handling state of a preorder request
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusReviewed  Status = "reviewed"
	StatusFulfilled Status = "fulfilled"
	StatusDeclined  Status = "declined"
)

// ParseStatus validates a preorder status value
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusSubmitted, StatusReviewed, StatusFulfilled, StatusDeclined:
		return Status(s), nil
	default:
		return "", shared.NewDomainError("INVALID_STATUS", "Unknown preorder status: "+s)
	}
}

// Preorder is a customer request for an item not in the catalog, with up to
// three reference images held in object storage. Only the returned URLs are
// persisted here.
type Preorder struct {
	shared.BaseEntity
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemName    string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	ImageURLs   string    `gorm:"type:text"` // newline-separated storage URLs
	Status      Status    `gorm:"type:varchar(20);not null;default:'submitted'"`
}

// TableName returns the table name for GORM
func (Preorder) TableName() string {
	return "preorders"
}

// NewPreorder creates a submitted preorder request
func NewPreorder(userID uuid.UUID, itemName, description string, imageURLs []string) (*Preorder, error) {
	if strings.TrimSpace(itemName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if len(imageURLs) > MaxImages {
		return nil, shared.NewDomainError("TOO_MANY_IMAGES", "A preorder may carry at most 3 images")
	}
	return &Preorder{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      userID,
		ItemName:    itemName,
		Description: description,
		ImageURLs:   strings.Join(imageURLs, "\n"),
		Status:      StatusSubmitted,
	}, nil
}

// Images returns the stored image URLs
func (p *Preorder) Images() []string {
	if p.ImageURLs == "" {
		return nil
	}
	return strings.Split(p.ImageURLs, "\n")
}

// ChangeStatus moves the preorder to a new handling status
func (p *Preorder) ChangeStatus(target Status) {
	p.Status = target
	p.UpdatedAt = time.Now()
}
