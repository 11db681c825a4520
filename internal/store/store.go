// Package store provides thin typed access to the service's DynamoDB
// tables: get-by-key, full-overwrite put, secondary-index query, scan, and
// conditional field update. No transactions, no batch atomicity, no retries.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a keyed record is absent, or when a
	// conditional update targets a missing key.
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable wraps any other backend failure. Transient failures
	// propagate to the caller; the store never retries.
	ErrUnavailable = errors.New("store unavailable")
)

// Store is the record-store contract the repositories are built on.
type Store interface {
	// Get loads the record with the given key into out, a pointer to a
	// struct. Returns ErrNotFound when the key is absent.
	Get(ctx context.Context, table, keyAttr, keyValue string, out any) error

	// Put writes item as a full-overwrite upsert.
	Put(ctx context.Context, table string, item any) error

	// QueryIndex loads every record whose indexed attribute equals value
	// into out, a pointer to a slice. Follows result pages to exhaustion.
	QueryIndex(ctx context.Context, table, index, attr, value string, out any) error

	// Scan loads every record in the table into out, a pointer to a slice.
	Scan(ctx context.Context, table string, out any) error

	// UpdateFields applies the given field assignments to an existing
	// record and loads the updated record into out (which may be nil).
	// Returns ErrNotFound when the key does not exist; the record is never
	// created by an update.
	UpdateFields(ctx context.Context, table, keyAttr, keyValue string, fields map[string]any, out any) error
}
