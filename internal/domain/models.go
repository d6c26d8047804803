package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the coarse deal summary used for worker filtering.
// It is derived from Stage and never drives transition logic.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCanceled  Status = "CANCELED"
)

type CancelReason string

const (
	ReasonIdleTimeout         CancelReason = "IDLE_TIMEOUT"
	ReasonCreativeDeadline    CancelReason = "CREATIVE_DEADLINE"
	ReasonAdminReviewDeadline CancelReason = "ADMIN_REVIEW_DEADLINE"
	ReasonPaymentDeadline     CancelReason = "PAYMENT_DEADLINE"
	ReasonPaymentStalled      CancelReason = "PAYMENT_STALLED"
	ReasonRightsRevoked       CancelReason = "RIGHTS_REVOKED"
	ReasonDeliveryFailed      CancelReason = "DELIVERY_FAILED"
	ReasonByAdvertiser        CancelReason = "BY_ADVERTISER"
	ReasonByPublisher         CancelReason = "BY_PUBLISHER"
)

type ReminderKind string

const (
	ReminderIdleSoon        ReminderKind = "IDLE_SOON"
	ReminderCreativeSoon    ReminderKind = "CREATIVE_SOON"
	ReminderAdminReviewSoon ReminderKind = "ADMIN_REVIEW_SOON"
	ReminderPaymentSoon     ReminderKind = "PAYMENT_SOON"
	ReminderDeliverySoon    ReminderKind = "DELIVERY_SOON"
)

// ListingSnapshot is captured once at deal creation; later listing edits
// never touch an in-flight deal.
type ListingSnapshot struct {
	ListingID     uuid.UUID     `json:"listing_id"`
	PriceNano     int64         `json:"price_nano"`
	Currency      string        `json:"currency"`
	AdFormat      string        `json:"ad_format"`
	VisibleFor    time.Duration `json:"visible_for"`
	Terms         string        `json:"terms"`
	ChannelTitle  string        `json:"channel_title"`
	ChannelChatID int64         `json:"channel_chat_id"`
}

type Deal struct {
	ID                    uuid.UUID       `db:"id"`
	AdvertiserUserID      int64           `db:"advertiser_user_id"`
	PublisherOwnerUserID  int64           `db:"publisher_owner_user_id"`
	ListingID             uuid.UUID       `db:"listing_id"`
	ChannelID             int64           `db:"channel_id"`
	Status                Status          `db:"status"`
	EscrowStatus          Stage           `db:"escrow_status"`
	EscrowAmountNano      int64           `db:"escrow_amount_nano"`
	EscrowCurrency        string          `db:"escrow_currency"`
	ScheduledAt           *time.Time      `db:"scheduled_at"`
	IdleExpiresAt         *time.Time      `db:"idle_expires_at"`
	CreativeDeadlineAt    *time.Time      `db:"creative_deadline_at"`
	AdminReviewDeadlineAt *time.Time      `db:"admin_review_deadline_at"`
	PaymentDeadlineAt     *time.Time      `db:"payment_deadline_at"`
	PublishedMessageID    *int64          `db:"published_message_id"`
	PublishedAt           *time.Time      `db:"published_at"`
	MustRemainUntil       *time.Time      `db:"must_remain_until"`
	DeliveryError         *string         `db:"delivery_error"`
	CancelReason          *CancelReason   `db:"cancel_reason"`
	StalledAt             *time.Time      `db:"stalled_at"`
	LastActivityAt        time.Time       `db:"last_activity_at"`
	ListingSnapshot       ListingSnapshot `db:"listing_snapshot"`
	CreatedAt             time.Time       `db:"created_at"`
}

// DealReminder existence means "already sent"; the unique (deal_id, kind)
// pair is the sole dedup mechanism.
type DealReminder struct {
	ID     int64        `db:"id"`
	DealID uuid.UUID    `db:"deal_id"`
	Kind   ReminderKind `db:"kind"`
	SentAt time.Time    `db:"sent_at"`
}

type WalletStatus string

const (
	WalletOpen   WalletStatus = "OPEN"
	WalletClosed WalletStatus = "CLOSED"
)

type EscrowWallet struct {
	ID       uuid.UUID    `db:"id"`
	DealID   uuid.UUID    `db:"deal_id"`
	Status   WalletStatus `db:"status"`
	OpenedAt time.Time    `db:"opened_at"`
	ClosedAt *time.Time   `db:"closed_at"`
}

type TxType string

const (
	TxCredit TxType = "CREDIT"
	TxPayout TxType = "PAYOUT"
	TxFee    TxType = "FEE"
	TxRefund TxType = "REFUND"
)

type TxDirection string

const (
	DirectionIn  TxDirection = "IN"
	DirectionOut TxDirection = "OUT"
)

type TxStatus string

const (
	TxPending   TxStatus = "PENDING"
	TxCompleted TxStatus = "COMPLETED"
	TxFailed    TxStatus = "FAILED"
)

// LedgerTransaction rows are append-only; wallet balances are always
// aggregated from them, never stored.
type LedgerTransaction struct {
	ID         uuid.UUID   `db:"id"`
	WalletID   uuid.UUID   `db:"wallet_id"`
	DealID     uuid.UUID   `db:"deal_id"`
	Type       TxType      `db:"type"`
	Direction  TxDirection `db:"direction"`
	AmountNano int64       `db:"amount_nano"`
	Currency   string      `db:"currency"`
	Status     TxStatus    `db:"status"`
	CreatedAt  time.Time   `db:"created_at"`
}

// Listing is the marketplace view a deal is created from. Only the
// snapshot part is persisted with the deal.
type Listing struct {
	Snapshot    ListingSnapshot
	OwnerUserID int64
	ChannelID   int64
}
