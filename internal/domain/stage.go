package domain

import "fmt"

// Stage is the authoritative fine-grained state of a deal's
// funds-and-delivery lifecycle.
type Stage string

const (
	StageDraft             Stage = "DRAFT"
	StageWaitingSchedule   Stage = "WAITING_SCHEDULE"
	StageWaitingCreative   Stage = "WAITING_CREATIVE"
	StageCreativeSubmitted Stage = "CREATIVE_SUBMITTED"
	StageAdminReview       Stage = "ADMIN_REVIEW"
	StageChangesRequested  Stage = "CHANGES_REQUESTED"
	StageAwaitingPayment   Stage = "AWAITING_PAYMENT"
	StagePaymentPending    Stage = "PAYMENT_PENDING"
	StageFundsConfirmed    Stage = "FUNDS_CONFIRMED"
	StageScheduled         Stage = "SCHEDULED"
	StagePosting           Stage = "POSTING"
	StagePostedVerifying   Stage = "POSTED_VERIFYING"
	StageReleased          Stage = "RELEASED"
	StageCanceled          Stage = "CANCELED"
	StageRefunded          Stage = "REFUNDED"
	StageDisputed          Stage = "DISPUTED"
)

// transitions lists every legal move besides the two universal rules
// handled in IsAllowed: x -> x is always a no-op, and any non-terminal
// stage may move to CANCELED.
var transitions = map[Stage][]Stage{
	StageDraft:             {StageWaitingSchedule},
	StageWaitingSchedule:   {StageWaitingCreative},
	StageWaitingCreative:   {StageCreativeSubmitted},
	StageCreativeSubmitted: {StageAdminReview},
	StageAdminReview:       {StageChangesRequested, StageAwaitingPayment},
	StageChangesRequested:  {StageCreativeSubmitted, StageAdminReview},
	StageAwaitingPayment:   {StagePaymentPending},
	StagePaymentPending:    {StageFundsConfirmed, StageAwaitingPayment, StageDisputed},
	StageFundsConfirmed:    {StageScheduled, StageDisputed},
	StageScheduled:         {StagePosting, StageDisputed},
	StagePosting:           {StagePostedVerifying},
	StagePostedVerifying:   {StageReleased, StageDisputed},
	StageDisputed:          {StageReleased, StageRefunded},
	StageReleased:          {},
	StageCanceled:          {},
	StageRefunded:          {},
}

var terminal = map[Stage]bool{
	StageReleased: true,
	StageCanceled: true,
	StageRefunded: true,
}

// IsTerminal reports whether no stage mutation may ever follow s.
// DISPUTED is deliberately not terminal: it awaits manual resolution.
func IsTerminal(s Stage) bool {
	return terminal[s]
}

// IsAllowed reports whether a deal may move from one stage to another.
func IsAllowed(from, to Stage) bool {
	if from == to {
		return true
	}
	if to == StageCanceled {
		return !terminal[from]
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// InvalidTransitionError indicates a stale read or a genuine bug in the
// caller; it is never retried.
type InvalidTransitionError struct {
	From Stage
	To   Stage
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid stage transition %s -> %s", e.From, e.To)
}

// AssertAllowed must be called before every escrow_status write.
func AssertAllowed(from, to Stage) error {
	if !IsAllowed(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// CoarseStatus derives the four-value summary written alongside the
// stage. It exists only for the workers' coarse filters.
func CoarseStatus(s Stage) Status {
	switch s {
	case StageFundsConfirmed, StageScheduled, StagePosting, StagePostedVerifying, StageDisputed:
		return StatusActive
	case StageReleased:
		return StatusCompleted
	case StageCanceled, StageRefunded:
		return StatusCanceled
	default:
		return StatusPending
	}
}
