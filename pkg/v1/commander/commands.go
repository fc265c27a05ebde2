package commander

// SyncType is type of requested synchronization.
type SyncType string

const (
	// SyncFull synchronizes categories and all products.
	SyncFull SyncType = "full"
	// SyncDelta synchronizes products changed within last days.
	SyncDelta SyncType = "delta"
)

// SyncCommand requests synchronization run.
type SyncCommand struct {
	Type SyncType `json:"type"`
	// Days is changes window of delta synchronization.
	Days uint `json:"days,omitempty"`
}
