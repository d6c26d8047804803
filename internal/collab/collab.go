// Package collab declares the narrow interfaces the deal lifecycle
// core uses to reach its external collaborators. Implementations live
// in subpackages; the core never depends on a concrete transport.
package collab

import (
	"context"

	"github.com/google/uuid"

	"github.com/dealgora/dealgora/internal/domain"
)

// Notifier delivers a templated message to a party. It is fire-and-
// forget from the core's perspective: failures are logged by callers,
// never propagated into a transaction.
type Notifier interface {
	Notify(ctx context.Context, userID int64, templateKey string, args map[string]any) error
}

// Poster publishes a deal's creative into the target channel. Each
// call is at-most-once; retrying is the caller's decision.
type Poster interface {
	CheckCanPost(ctx context.Context, channelChatID int64) error
	Publish(ctx context.Context, deal *domain.Deal) (messageID int64, err error)
}

// ListingSource is a read-only lookup of a listing's current terms,
// consulted only at deal creation to build the immutable snapshot.
type ListingSource interface {
	GetListing(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error)
}
