package storage

import "github.com/PhucLH2303/RentEase-sub000/models"

// SnapshotWriter is the interface any snapshot backend must satisfy.
type SnapshotWriter interface {
	Write(snaps []*models.Snapshot) error
	Close() error
}

// SnapshotReader fetches previously stored snapshots back, for offline
// market reports.
type SnapshotReader interface {
	FetchAll() ([]*models.Snapshot, error)
}
