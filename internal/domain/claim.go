package domain

import "time"

// StageClaim describes a conditional single-row stage update: move a
// deal From -> To only if the row still holds From. Optional fields are
// written when non-nil. A lost claim means another writer moved the row
// first; it is a skip, not an error.
type StageClaim struct {
	From Stage
	To   Stage

	CancelReason       *CancelReason
	StalledAt          *time.Time
	DeliveryError      *string
	PublishedMessageID *int64
	PublishedAt        *time.Time
	MustRemainUntil    *time.Time
	ScheduledAt        *time.Time

	IdleExpiresAt         *time.Time
	CreativeDeadlineAt    *time.Time
	AdminReviewDeadlineAt *time.Time
	PaymentDeadlineAt     *time.Time
}
