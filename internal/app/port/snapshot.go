package port

import (
	"context"

	"asset_tracker/internal/domain/entity"
)

// SnapshotProvider hands out consistent state snapshots for the balance
// calculations. Implementations own all refresh/reload concerns; callers
// treat the returned snapshot as immutable.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (entity.Snapshot, error)
}
