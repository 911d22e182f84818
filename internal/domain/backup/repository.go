package backup

import (
	"context"
)

// Repository defines bulk ledger access for snapshots.
type Repository interface {
	// LoadSnapshot reads every ledger table into a snapshot.
	LoadSnapshot(ctx context.Context) (*Snapshot, error)

	// ReplaceAll wipes the ledger tables and writes the snapshot's rows,
	// preserving their original ids. Must run inside a transaction.
	ReplaceAll(ctx context.Context, snap *Snapshot) error
}
