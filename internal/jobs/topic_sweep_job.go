package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

const DefaultTopicSweepSchedule = "*/30 * * * * *"

type topicSweeper interface {
	SweepTopics() int
}

// TopicSweepJob periodically drops topics that no longer have members.
type TopicSweepJob struct {
	sweeper  topicSweeper
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewTopicSweepJob creates the sweep job. An empty schedule selects
// DefaultTopicSweepSchedule (every 30 seconds, seconds field first).
func NewTopicSweepJob(sweeper topicSweeper, schedule string, logger *slog.Logger) *TopicSweepJob {
	if schedule == "" {
		schedule = DefaultTopicSweepSchedule
	}
	return &TopicSweepJob{
		sweeper:  sweeper,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "topic_sweep_job"),
	}
}

// Start schedules the sweep. It fails on an invalid cron expression.
func (j *TopicSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Topic sweep job started", "schedule", j.schedule)
	return nil
}

func (j *TopicSweepJob) run() {
	if removed := j.sweeper.SweepTopics(); removed > 0 {
		j.logger.DebugContext(context.Background(), "Swept empty topics", "removed", removed)
	}
}

// Stop stops the sweep job.
func (j *TopicSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Topic sweep job stopped")
}
