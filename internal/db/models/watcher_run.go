package models

import "time"

// Watcher run states.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// WatcherRun records one submitted watcher job so /results can answer
// for it after the async hand-off.
type WatcherRun struct {
	RunID     string    `gorm:"primaryKey" json:"run_id"`
	Status    string    `json:"status"`
	Models    int       `json:"models"`
	Intents   int       `json:"intents"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
