package domain

// DeadlineCategory names one of the four sweepable deadlines. Each
// category owns exactly one deadline column and a fixed eligible-stage
// set; a stage is governed by at most one category at a time.
type DeadlineCategory string

const (
	CategoryIdle        DeadlineCategory = "idle"
	CategoryCreative    DeadlineCategory = "creative"
	CategoryAdminReview DeadlineCategory = "admin_review"
	CategoryPayment     DeadlineCategory = "payment"
)

// Categories in sweep order.
var Categories = []DeadlineCategory{
	CategoryIdle,
	CategoryCreative,
	CategoryAdminReview,
	CategoryPayment,
}

// Column returns the deals column holding this category's deadline.
// The set is closed, so repositories may interpolate it into SQL.
func (c DeadlineCategory) Column() string {
	switch c {
	case CategoryIdle:
		return "idle_expires_at"
	case CategoryCreative:
		return "creative_deadline_at"
	case CategoryAdminReview:
		return "admin_review_deadline_at"
	case CategoryPayment:
		return "payment_deadline_at"
	}
	return ""
}

func (c DeadlineCategory) EligibleStages() []Stage {
	switch c {
	case CategoryIdle:
		return []Stage{
			StageDraft, StageWaitingSchedule, StageWaitingCreative,
			StageCreativeSubmitted, StageAdminReview, StageChangesRequested,
			StageAwaitingPayment,
		}
	case CategoryCreative:
		return []Stage{StageWaitingCreative, StageChangesRequested}
	case CategoryAdminReview:
		return []Stage{StageCreativeSubmitted, StageAdminReview}
	case CategoryPayment:
		return []Stage{StageAwaitingPayment, StagePaymentPending}
	}
	return nil
}

// Outcome maps a stage past this category's deadline to the stage the
// sweeper drives it into. PAYMENT_PENDING is the one post-funding
// stall: money may be in flight, so it goes to DISPUTED for manual
// resolution instead of CANCELED.
func (c DeadlineCategory) Outcome(from Stage) (Stage, CancelReason) {
	if c == CategoryPayment {
		if from == StagePaymentPending {
			return StageDisputed, ReasonPaymentStalled
		}
		return StageCanceled, ReasonPaymentDeadline
	}
	switch c {
	case CategoryCreative:
		return StageCanceled, ReasonCreativeDeadline
	case CategoryAdminReview:
		return StageCanceled, ReasonAdminReviewDeadline
	default:
		return StageCanceled, ReasonIdleTimeout
	}
}

func (c DeadlineCategory) ReminderKind() ReminderKind {
	switch c {
	case CategoryIdle:
		return ReminderIdleSoon
	case CategoryCreative:
		return ReminderCreativeSoon
	case CategoryAdminReview:
		return ReminderAdminReviewSoon
	case CategoryPayment:
		return ReminderPaymentSoon
	}
	return ""
}
