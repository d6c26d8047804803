package listingrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/dealgora/dealgora/internal/domain"
	"github.com/dealgora/dealgora/internal/pg"
)

// Repository is the read-only ListingSource the deal core consults at
// creation time. Listing CRUD itself lives in the marketplace layer.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

var ErrListingNotFound = errors.New("listing not found")

func (r *Repository) GetListing(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	query := `
        SELECT id, owner_user_id, channel_id, channel_chat_id, channel_title,
               price_nano, currency, ad_format, visible_for_seconds, terms
        FROM listings
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, listingID)

	var listing domain.Listing
	var visibleForSeconds int64
	err := row.Scan(
		&listing.Snapshot.ListingID, &listing.OwnerUserID, &listing.ChannelID,
		&listing.Snapshot.ChannelChatID, &listing.Snapshot.ChannelTitle,
		&listing.Snapshot.PriceNano, &listing.Snapshot.Currency, &listing.Snapshot.AdFormat,
		&visibleForSeconds, &listing.Snapshot.Terms,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		zap.L().Error("can't find listing", zap.Error(err))
		return nil, err
	}
	listing.Snapshot.VisibleFor = time.Duration(visibleForSeconds) * time.Second
	return &listing, nil
}
