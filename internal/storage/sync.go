package storage

import "time"

// SyncRun records one manual synchronization pass for a CRM module
// (leads, accounts, activities). Only bookkeeping, no enrichment logic.
type SyncRun struct {
	ID          string     `json:"id"`
	Module      string     `json:"module"`
	Direction   string     `json:"direction"`
	Status      string     `json:"status"`
	Requested   int        `json:"requested"`
	Synced      int        `json:"synced"`
	Failed      int        `json:"failed"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

const (
	SyncStatusRunning   = "running"
	SyncStatusCompleted = "completed"
	SyncStatusFailed    = "failed"
)

type SyncRequest struct {
	Direction string   `json:"direction" validate:"required,oneof=push pull both"`
	IDs       []string `json:"ids"`
}
