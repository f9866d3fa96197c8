// Package store persists the serialized game snapshot. The snapshot is an
// opaque byte blob to every implementation; it is fully overwritten on each
// save (single writer, last write wins).
package store

import "context"

type Store interface {
	// Load returns the current snapshot. The second result is false when
	// no snapshot has ever been saved.
	Load(ctx context.Context) ([]byte, bool, error)
	Save(ctx context.Context, snapshot []byte) error
	Clear(ctx context.Context) error
}
