package server

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/benjaminneilan16/NeilanX/internal/store"
	"github.com/benjaminneilan16/NeilanX/pkg/logger"
)

// CleanupJob evicts uploads past the retention window and removes their
// report files on a cron schedule.
type CleanupJob struct {
	cron      *cron.Cron
	store     *store.Store
	logger    *logger.Logger
	retention time.Duration
}

// NewCleanupJob schedules the cleanup according to config.CleanupSchedule.
func NewCleanupJob(config *Config, uploads *store.Store, log *logger.Logger) (*CleanupJob, error) {
	job := &CleanupJob{
		cron:      cron.New(),
		store:     uploads,
		logger:    log,
		retention: time.Duration(config.RetentionDays) * 24 * time.Hour,
	}

	if _, err := job.cron.AddFunc(config.CleanupSchedule, job.Run); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", config.CleanupSchedule, err)
	}

	return job, nil
}

// Start begins running the schedule.
func (j *CleanupJob) Start() {
	j.cron.Start()
}

// Stop halts the schedule. Running jobs complete.
func (j *CleanupJob) Stop() {
	j.cron.Stop()
}

// Run performs one cleanup pass.
func (j *CleanupJob) Run() {
	cutoff := time.Now().UTC().Add(-j.retention)
	evicted := j.store.EvictOlderThan(cutoff)

	removed := 0
	for _, upload := range evicted {
		if upload.ReportPath == "" {
			continue
		}
		if err := os.Remove(upload.ReportPath); err != nil && !os.IsNotExist(err) {
			j.logger.WithFields(map[string]interface{}{
				"upload_id": upload.ID.String(),
				"path":      upload.ReportPath,
				"error":     err.Error(),
			}).Warn("Failed to remove old report file")
			continue
		}
		removed++
	}

	if len(evicted) > 0 {
		j.logger.WithFields(map[string]interface{}{
			"evicted_uploads": len(evicted),
			"removed_reports": removed,
		}).Info("Cleanup pass completed")
	}
}
