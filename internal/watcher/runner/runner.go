// Package runner is the boundary to the watcher job itself. The core hands
// over a resolved config and gets back a run identifier; the job's internals
// (LLM querying, answer extraction) live behind this interface.
package runner

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/lans/llm-answer-watcher/internal/db/models"
	"github.com/lans/llm-answer-watcher/internal/watcher/resolve"
	"gorm.io/gorm"
)

// Runner starts a watcher job for a resolved config and returns its run ID.
type Runner interface {
	RunAll(ctx context.Context, cfg *resolve.RuntimeConfig) (string, error)
}

// RecordingRunner assigns run IDs and tracks run state in the database. The
// job itself runs asynchronously; callers only await the identifier.
type RecordingRunner struct {
	db *gorm.DB
}

// NewRecordingRunner creates a runner backed by the given database.
func NewRecordingRunner(db *gorm.DB) *RecordingRunner {
	return &RecordingRunner{db: db}
}

// RunAll registers the run and kicks off the job. The returned run ID is
// usable with FindRun immediately, while the job is still in flight.
func (r *RecordingRunner) RunAll(ctx context.Context, cfg *resolve.RuntimeConfig) (string, error) {
	run := models.WatcherRun{
		RunID:   uuid.New().String(),
		Status:  models.RunStatusRunning,
		Models:  len(cfg.Models),
		Intents: len(cfg.Intents),
	}
	if err := r.db.WithContext(ctx).Create(&run).Error; err != nil {
		return "", err
	}

	log.Printf("🚀 Watcher run %s started: %d models, %d intents", run.RunID, run.Models, run.Intents)
	go r.execute(run.RunID, cfg)

	return run.RunID, nil
}

// FindRun returns the recorded state for a run ID, or nil when unknown.
func (r *RecordingRunner) FindRun(runID string) (*models.WatcherRun, error) {
	var run models.WatcherRun
	err := r.db.Where("run_id = ?", runID).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *RecordingRunner) execute(runID string, cfg *resolve.RuntimeConfig) {
	status := models.RunStatusCompleted
	if err := r.runJob(cfg); err != nil {
		log.Printf("❌ Watcher run %s failed: %v", runID, err)
		status = models.RunStatusFailed
	}
	if err := r.db.Model(&models.WatcherRun{}).Where("run_id = ?", runID).
		Update("status", status).Error; err != nil {
		log.Printf("❌ Failed to record status for run %s: %v", runID, err)
	}
}

// runJob is where the watcher pipeline plugs in. The current build records
// the hand-off only; answer collection happens out of process.
func (r *RecordingRunner) runJob(cfg *resolve.RuntimeConfig) error {
	for _, m := range cfg.Models {
		log.Printf("🎯 Run queued %s/%s (%d intents)", m.Provider, m.ModelName, len(cfg.Intents))
	}
	return nil
}
