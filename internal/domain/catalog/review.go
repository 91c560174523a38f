package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ReviewStatus represents the moderation state of a review
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Review is a customer rating of a product. A user may review a product at
// most once. Moderation is a one-way transition: pending may move to
// approved or rejected, both of which are terminal.
type Review struct {
	shared.BaseEntity
	UserID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_product,priority:1"`
	ProductID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_product,priority:2"`
	Rating    int          `gorm:"not null"`
	Title     string       `gorm:"type:varchar(200)"`
	Comment   string       `gorm:"type:text"`
	Status    ReviewStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a pending review
func NewReview(userID, productID uuid.UUID, rating int, title, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
		Rating:     rating,
		Title:      strings.TrimSpace(title),
		Comment:    comment,
		Status:     ReviewStatusPending,
	}, nil
}

// Approve transitions a pending review to approved
func (r *Review) Approve() error {
	return r.moderate(ReviewStatusApproved)
}

// Reject transitions a pending review to rejected
func (r *Review) Reject() error {
	return r.moderate(ReviewStatusRejected)
}

func (r *Review) moderate(target ReviewStatus) error {
	if r.Status != ReviewStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			"Review has already been moderated and cannot change status")
	}
	r.Status = target
	r.UpdatedAt = time.Now()
	return nil
}

// IsVerified reports whether the review passed moderation. Derived from
// status, never stored.
func (r *Review) IsVerified() bool {
	return r.Status == ReviewStatusApproved
}

// ParseReviewStatus validates a moderation target status. Pending is not a
// valid target: moderation only moves forward.
func ParseReviewStatus(s string) (ReviewStatus, error) {
	switch ReviewStatus(s) {
	case ReviewStatusApproved, ReviewStatusRejected:
		return ReviewStatus(s), nil
	default:
		return "", shared.NewDomainError("INVALID_STATUS", "Review status must be approved or rejected")
	}
}
