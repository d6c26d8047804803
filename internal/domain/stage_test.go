package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStages = []Stage{
	StageDraft, StageWaitingSchedule, StageWaitingCreative, StageCreativeSubmitted,
	StageAdminReview, StageChangesRequested, StageAwaitingPayment, StagePaymentPending,
	StageFundsConfirmed, StageScheduled, StagePosting, StagePostedVerifying,
	StageReleased, StageCanceled, StageRefunded, StageDisputed,
}

func TestIsAllowed_SelfTransition(t *testing.T) {
	for _, stage := range allStages {
		assert.True(t, IsAllowed(stage, stage), "self transition must be allowed for %s", stage)
	}
}

func TestIsAllowed_CancelRule(t *testing.T) {
	for _, stage := range allStages {
		got := IsAllowed(stage, StageCanceled)
		if stage == StageReleased || stage == StageCanceled || stage == StageRefunded {
			if stage == StageCanceled {
				// self transition, allowed as a no-op
				assert.True(t, got)
				continue
			}
			assert.False(t, got, "terminal stage %s must not be cancelable", stage)
		} else {
			assert.True(t, got, "non-terminal stage %s must be cancelable", stage)
		}
	}
}

func TestIsAllowed_AdjacencyTable(t *testing.T) {
	tests := []struct {
		name    string
		from    Stage
		to      Stage
		allowed bool
	}{
		{"draft to scheduling", StageDraft, StageWaitingSchedule, true},
		{"draft cannot skip to creative", StageDraft, StageCreativeSubmitted, false},
		{"schedule to creative", StageWaitingSchedule, StageWaitingCreative, true},
		{"creative submitted", StageWaitingCreative, StageCreativeSubmitted, true},
		{"submitted to review", StageCreativeSubmitted, StageAdminReview, true},
		{"review requests changes", StageAdminReview, StageChangesRequested, true},
		{"changes resubmitted", StageChangesRequested, StageCreativeSubmitted, true},
		{"changes back to review", StageChangesRequested, StageAdminReview, true},
		{"review approves", StageAdminReview, StageAwaitingPayment, true},
		{"payment starts", StageAwaitingPayment, StagePaymentPending, true},
		{"payment confirmed", StagePaymentPending, StageFundsConfirmed, true},
		{"payment rolled back", StagePaymentPending, StageAwaitingPayment, true},
		{"payment stalls into dispute", StagePaymentPending, StageDisputed, true},
		{"funded to scheduled", StageFundsConfirmed, StageScheduled, true},
		{"scheduled claimed for posting", StageScheduled, StagePosting, true},
		{"posting to verification", StagePosting, StagePostedVerifying, true},
		{"verification to release", StagePostedVerifying, StageReleased, true},
		{"verification to dispute", StagePostedVerifying, StageDisputed, true},
		{"dispute resolved as release", StageDisputed, StageReleased, true},
		{"dispute resolved as refund", StageDisputed, StageRefunded, true},
		{"no back-jump from posting", StagePosting, StageScheduled, false},
		{"no refund from released", StageReleased, StageRefunded, false},
		{"no revival from canceled", StageCanceled, StageDraft, false},
		{"no direct release before posting", StageScheduled, StageReleased, false},
		{"no funding without payment", StageAwaitingPayment, StageFundsConfirmed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, IsAllowed(tt.from, tt.to))
		})
	}
}

func TestAssertAllowed(t *testing.T) {
	assert.NoError(t, AssertAllowed(StageDraft, StageWaitingSchedule))

	err := AssertAllowed(StageReleased, StageCanceled)
	assert.Error(t, err)

	var invalid *InvalidTransitionError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, StageReleased, invalid.From)
	assert.Equal(t, StageCanceled, invalid.To)
}

func TestIsTerminal(t *testing.T) {
	for _, stage := range []Stage{StageReleased, StageCanceled, StageRefunded} {
		assert.True(t, IsTerminal(stage))
	}
	for _, stage := range []Stage{StageDraft, StageDisputed, StagePosting} {
		assert.False(t, IsTerminal(stage))
	}
}

func TestCoarseStatus(t *testing.T) {
	tests := []struct {
		stage  Stage
		status Status
	}{
		{StageDraft, StatusPending},
		{StageAwaitingPayment, StatusPending},
		{StagePaymentPending, StatusPending},
		{StageFundsConfirmed, StatusActive},
		{StageScheduled, StatusActive},
		{StagePosting, StatusActive},
		{StagePostedVerifying, StatusActive},
		{StageDisputed, StatusActive},
		{StageReleased, StatusCompleted},
		{StageCanceled, StatusCanceled},
		{StageRefunded, StatusCanceled},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, CoarseStatus(tt.stage), "stage %s", tt.stage)
	}
}

func TestDeadlineCategory_Outcome(t *testing.T) {
	to, reason := CategoryIdle.Outcome(StageDraft)
	assert.Equal(t, StageCanceled, to)
	assert.Equal(t, ReasonIdleTimeout, reason)

	to, reason = CategoryPayment.Outcome(StageAwaitingPayment)
	assert.Equal(t, StageCanceled, to)
	assert.Equal(t, ReasonPaymentDeadline, reason)

	to, reason = CategoryPayment.Outcome(StagePaymentPending)
	assert.Equal(t, StageDisputed, to)
	assert.Equal(t, ReasonPaymentStalled, reason)
}

func TestDeadlineCategory_Columns(t *testing.T) {
	seen := map[string]bool{}
	for _, category := range Categories {
		column := category.Column()
		assert.NotEmpty(t, column)
		assert.False(t, seen[column], "deadline column %s reused", column)
		seen[column] = true
		assert.NotEmpty(t, category.EligibleStages())
		assert.NotEmpty(t, category.ReminderKind())
	}
}
