package entity

// Sync flag values for user-originated rows. A row is pending until the
// remote service has acknowledged it; a fresh local edit resets it to
// pending regardless of its previous state.
const (
	// SyncPending marks a row that exists only in the local cache.
	SyncPending = 0
	// SyncConfirmed marks a row the remote service has acknowledged.
	SyncConfirmed = 1
)
