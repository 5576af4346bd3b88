package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/homefront-community/homefront/internal/logger"
)

// sessionRepository persists the bearer token as a single named row in the
// session table. It satisfies the session layer's TokenStore contract: an
// absent token is not an error.
type sessionRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSessionRepository constructs the token persistence backed by db.
func NewSessionRepository(db *DB, logger *logger.Logger) *sessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// SaveToken durably stores the credential, replacing any previous one.
func (r *sessionRepository) SaveToken(token string) error {
	query, args, err := buildUpsertTokenQuery(token)
	if err != nil {
		return fmt.Errorf("build upsert token query: %w", err)
	}

	if _, err = r.db.Exec(query, args...); err != nil {
		r.logger.Err(err).Str("func", "*sessionRepository.SaveToken").Msg("error persisting token")
		return fmt.Errorf("persist token: %w", err)
	}

	return nil
}

// LoadToken returns the stored credential, or ("", nil) when none exists.
func (r *sessionRepository) LoadToken() (string, error) {
	query, args, err := buildSelectTokenQuery()
	if err != nil {
		return "", fmt.Errorf("build select token query: %w", err)
	}

	var token string
	err = r.db.QueryRow(query, args...).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		r.logger.Err(err).Str("func", "*sessionRepository.LoadToken").Msg("error reading token")
		return "", fmt.Errorf("read token: %w", err)
	}

	return token, nil
}

// DeleteToken removes the stored credential. Removing an absent token is a
// no-op.
func (r *sessionRepository) DeleteToken() error {
	query, args, err := buildDeleteTokenQuery()
	if err != nil {
		return fmt.Errorf("build delete token query: %w", err)
	}

	if _, err = r.db.Exec(query, args...); err != nil {
		r.logger.Err(err).Str("func", "*sessionRepository.DeleteToken").Msg("error deleting token")
		return fmt.Errorf("delete token: %w", err)
	}

	return nil
}
