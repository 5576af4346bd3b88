// Package store is the local persistence layer: a single SQLite file holding
// the session token and an offline cache of the last fetched listings.
//
// The database lives under the user configuration directory and is owned
// exclusively by this process. Schema management is delegated to the
// embedded goose migrations.
package store
