// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Homefront Community

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/homefront-community/homefront/models"
)

const sessionTokenKey = "token"

// builder is the shared squirrel statement builder. SQLite uses question
// mark placeholders, which is squirrel's default.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildUpsertTokenQuery(token string) (string, []any, error) {
	return builder.
		Insert("session").
		Columns("name", "value").
		Values(sessionTokenKey, token).
		Suffix("ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
}

func buildSelectTokenQuery() (string, []any, error) {
	return builder.
		Select("value").
		From("session").
		Where(sq.Eq{"name": sessionTokenKey}).
		ToSql()
}

func buildDeleteTokenQuery() (string, []any, error) {
	return builder.
		Delete("session").
		Where(sq.Eq{"name": sessionTokenKey}).
		ToSql()
}

var listingColumns = []string{
	"id",
	"title",
	"description",
	"city",
	"address",
	"rent",
	"rooms",
	"furnished",
	"owner_id",
	"owner_name",
	"contact_info",
	"created_at",
}

func buildInsertListingQuery(l models.Listing) (string, []any, error) {
	return builder.
		Insert("listings_cache").
		Columns(listingColumns...).
		Values(l.ID, l.Title, l.Description, l.City, l.Address, l.Rent, l.Rooms, l.Furnished, l.OwnerID, l.OwnerName, l.ContactInfo, l.CreatedAt).
		ToSql()
}

func buildSelectListingsQuery() (string, []any, error) {
	return builder.
		Select(listingColumns...).
		From("listings_cache").
		OrderBy("created_at DESC").
		ToSql()
}

func buildClearListingsQuery() (string, []any, error) {
	return builder.
		Delete("listings_cache").
		ToSql()
}
