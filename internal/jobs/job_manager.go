package jobs

import (
	"fmt"
	"log/slog"

	"courierhub/internal/core/application/realtime"
	"courierhub/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	topicSweepJob  *TopicSweepJob
	statsReportJob *StatsReportJob
}

// Schedules holds the cron expressions of the jobs; empty values select defaults.
type Schedules struct {
	TopicSweep  string
	StatsReport string
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	dispatcher *realtime.Dispatcher,
	presence ports.PresenceTracker,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		topicSweepJob:  NewTopicSweepJob(dispatcher, schedules.TopicSweep, logger),
		statsReportJob: NewStatsReportJob(dispatcher, presence, schedules.StatsReport, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.topicSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start topic sweep job: %w", err)
	}

	if err := jm.statsReportJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.topicSweepJob.Stop()
		return fmt.Errorf("failed to start stats report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.statsReportJob.Stop()
	jm.topicSweepJob.Stop()
}
