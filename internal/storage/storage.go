// Package storage is the durable on-device key-value store backing the
// session token, user profile, preferences and cart across restarts.
package storage

import (
	"context"
	"errors"
)

// Fixed keys shared by every component that persists state.
const (
	KeyAuthToken = "authToken"
	KeyUserData  = "userData"
	KeyTheme     = "theme"
	KeyLanguage  = "language"
	KeyCart      = "cart"
)

var ErrClosed = errors.New("storage: store closed")

// Store persists JSON-serialized values under string keys.
//
// Get returns found=false for absent keys. Entries that no longer
// unmarshal are dropped and reported as absent rather than failing the
// caller, matching how the app recovers from corrupted device storage.
// Concurrent writers to the same key are last-write-wins; there is no
// transactional guarantee across keys.
type Store interface {
	Set(ctx context.Context, key string, value any) error
	Get(ctx context.Context, key string, out any) (found bool, err error)
	Delete(ctx context.Context, key string) error
}
