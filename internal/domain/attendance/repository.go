package attendance

import (
	"context"
	"time"
)

// EventFilter narrows audit-log reads for the agency-facing listing.
type EventFilter struct {
	UserID   string
	SiteID   string
	Agency   string
	Page     int
	PageSize int
}

// Repository persists the append-only audit log. Create must enforce
// accepted-punch idempotency with a storage-level uniqueness constraint so
// two concurrently retried requests with one key cannot both land; the
// loser surfaces as a duplicate error.
type Repository interface {
	Create(ctx context.Context, event *Event) error

	// FindByID returns nil without error when no row matches.
	FindByID(ctx context.Context, id string) (*Event, error)

	// ListAcceptedByUserSince returns the user's OK rows with server
	// timestamp at or after since, ascending. Used for state replay of the
	// recent tail.
	ListAcceptedByUserSince(ctx context.Context, userID string, since time.Time) ([]*Event, error)

	// ListAcceptedInWindow returns the user's OK rows inside [from, to),
	// ascending, optionally narrowed to one site. Feeds the weekly
	// reconstruction.
	ListAcceptedInWindow(ctx context.Context, userID string, from, to time.Time, siteID string) ([]*Event, error)

	// HasAcceptedIdempotencyKey reports whether an OK row with the key
	// exists at or after since.
	HasAcceptedIdempotencyKey(ctx context.Context, key string, since time.Time) (bool, error)

	// ExpireIdempotencyScopes releases the uniqueness hold on accepted rows
	// older than the cutoff so their keys may be reused.
	ExpireIdempotencyScopes(ctx context.Context, before time.Time) error

	// AttachSignature sets the signature pair on an accepted CLOCK_OUT row
	// that has none, touching no other field. Returns the number of rows
	// updated so callers can distinguish an already-signed or ineligible row.
	AttachSignature(ctx context.Context, eventID, signatureImage string, signedAt time.Time) (int64, error)

	// ListDriftFlagged returns drift-flagged rows inside [from, to) for the
	// exceptions report, newest first.
	ListDriftFlagged(ctx context.Context, from, to time.Time, page, pageSize int) ([]*Event, int64, error)

	// List returns audit rows matching the filter, newest first, with the
	// total count.
	List(ctx context.Context, filter EventFilter) ([]*Event, int64, error)
}
