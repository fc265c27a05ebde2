package models

import (
	"fmt"
	"time"
)

// EntityType is type of entity tracked in entity mapping.
type EntityType string

const (
	EntityCategory EntityType = "category"
	EntityProduct  EntityType = "product"
	EntityFeature  EntityType = "feature"
)

// SyncStatus is outcome of the last synchronization of mapped entity.
type SyncStatus string

const (
	StatusSynced  SyncStatus = "synced"
	StatusPending SyncStatus = "pending"
	StatusError   SyncStatus = "error"
)

// Mapping links remote PIM entity with local store record.
// LocalID equal to 0 means local record is not created (pending or failed).
type Mapping struct {
	EntityType  EntityType
	ExternalUID string
	LocalID     int64
	Status      SyncStatus
	LastSync    time.Time
}

// RunType is type of synchronization run.
type RunType string

const (
	RunFull  RunType = "full"
	RunDelta RunType = "delta"
)

// RunStatus is status of synchronization run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// StaleRunDetails is error details of run abandoned by a crashed process.
const StaleRunDetails = "run abandoned, marked as failed by next run"

// Run is synchronization run log record.
type Run struct {
	ID                 int
	Type               RunType
	Status             RunStatus
	StartedAt          time.Time
	CompletedAt        *time.Time
	AffectedCategories *int32
	AffectedProducts   *int32
	FailedEntities     *int32
	ErrorDetails       *string
}

// EntityError is failure of single entity synchronization.
type EntityError struct {
	Type EntityType
	UID  string
	Err  error
}

// Error returns error message annotated with entity type and uid.
func (e EntityError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Type, e.UID, e.Err)
}

// Unwrap returns underlying error.
func (e EntityError) Unwrap() error {
	return e.Err
}

// MappingCount is number of entity mappings of type in status.
type MappingCount struct {
	EntityType EntityType
	Status     SyncStatus
	Count      int64
}

// Stats summarizes synchronization state.
type Stats struct {
	Mappings      []MappingCount
	LastCompleted *Run
	// Running is nil when no run is in progress.
	Running *Run
}

// Count returns number of mappings in status. Empty entity type counts mappings of all types.
func (s Stats) Count(entityType EntityType, status SyncStatus) int64 {
	var count int64
	for _, mc := range s.Mappings {
		if mc.Status == status && (entityType == "" || mc.EntityType == entityType) {
			count += mc.Count
		}
	}
	return count
}
