// Package snapshot defines the key-value persistence seam of the Zenith hub.
//
// Live state lives in the in-memory stores; this package only mirrors each
// collection as an independent string-keyed JSON blob. Backends (Redis,
// Postgres) implement the Store interface; the loader restores collections
// at boot and the collection-changed event handler writes blobs after each
// mutation.
package snapshot

import (
	"context"
	"errors"
)

// Collection keys. One blob per collection, keyed by collection name.
const (
	KeyStudents    = "zenith-students"
	KeyTeachers    = "zenith-teachers"
	KeyCourses     = "zenith-courses"
	KeyEvents      = "zenith-events"
	KeyEnrollments = "zenith-enrollments"
	KeyAttendance  = "zenith-attendance"
)

// AllKeys lists every collection key, in load order.
var AllKeys = []string{
	KeyStudents,
	KeyTeachers,
	KeyCourses,
	KeyEvents,
	KeyEnrollments,
	KeyAttendance,
}

var (
	// ErrNotFound is returned by Load when no blob exists under the key.
	ErrNotFound = errors.New("snapshot: not found")

	// ErrUnknownKey is returned when a key names no collection.
	ErrUnknownKey = errors.New("snapshot: unknown collection key")
)

// Store persists collection blobs. Implementations must treat the blob as
// opaque bytes and must not interpret its contents.
type Store interface {
	// Save writes the blob under the collection key, replacing any
	// previous value.
	Save(ctx context.Context, key string, blob []byte) error

	// Load reads the blob stored under the collection key.
	// Returns ErrNotFound when the key has never been written.
	Load(ctx context.Context, key string) ([]byte, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
