package store

import (
	"context"
	"fmt"

	"github.com/homefront-community/homefront/internal/logger"
	"github.com/homefront-community/homefront/models"
)

// listingRepository caches the last successfully fetched listings so the UI
// can show something useful while offline. The cache is replaced wholesale
// on every successful fetch; it never serves as a source of truth.
type listingRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewListingRepository constructs the offline listing cache backed by db.
func NewListingRepository(db *DB, logger *logger.Logger) *listingRepository {
	logger.Debug().Msg("creating listing repository")
	return &listingRepository{
		db:     db,
		logger: logger,
	}
}

// ReplaceAll atomically swaps the cached listings for the given set.
func (r *listingRepository) ReplaceAll(ctx context.Context, listings []models.Listing) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*listingRepository.ReplaceAll").Msg("error starting transaction")
		return fmt.Errorf("begin cache replace: %w", err)
	}
	defer tx.Rollback()

	query, args, err := buildClearListingsQuery()
	if err != nil {
		return fmt.Errorf("build clear listings query: %w", err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*listingRepository.ReplaceAll").Msg("error clearing listing cache")
		return fmt.Errorf("clear listing cache: %w", err)
	}

	for _, listing := range listings {
		query, args, err = buildInsertListingQuery(listing)
		if err != nil {
			return fmt.Errorf("build insert listing query: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Int64("listing_id", listing.ID).Str("func", "*listingRepository.ReplaceAll").Msg("error caching listing")
			return fmt.Errorf("cache listing %d: %w", listing.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*listingRepository.ReplaceAll").Msg("error committing listing cache")
		return fmt.Errorf("commit cache replace: %w", err)
	}

	return nil
}

// All returns the cached listings, newest first. An empty cache yields an
// empty slice, not an error.
func (r *listingRepository) All(ctx context.Context) ([]models.Listing, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectListingsQuery()
	if err != nil {
		return nil, fmt.Errorf("build select listings query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*listingRepository.All").Msg("error reading listing cache")
		return nil, fmt.Errorf("read listing cache: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var l models.Listing
		if err = rows.Scan(&l.ID, &l.Title, &l.Description, &l.City, &l.Address, &l.Rent, &l.Rooms, &l.Furnished, &l.OwnerID, &l.OwnerName, &l.ContactInfo, &l.CreatedAt); err != nil {
			log.Err(err).Str("func", "*listingRepository.All").Msg("error scanning cached listing")
			return nil, fmt.Errorf("scan cached listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listing cache: %w", err)
	}

	return listings, nil
}
