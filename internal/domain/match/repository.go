package match

import "context"

// SnapshotRepository holds the current whole-collection snapshot.
type SnapshotRepository interface {
	Current() (Snapshot, bool)
	Replace(Snapshot)
}

// DocumentSource resolves a league identity to its schedule document.
type DocumentSource interface {
	Fetch(ctx context.Context, league League) (Document, error)
}
