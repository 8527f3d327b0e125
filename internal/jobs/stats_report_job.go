package jobs

import (
	"context"
	"log/slog"
	"time"

	"courierhub/internal/core/application/realtime"
	"courierhub/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const DefaultStatsReportSchedule = "0 * * * * *"

type statsSource interface {
	Stats() realtime.Stats
}

// StatsReportJob logs the live counters of this instance next to the
// cluster-wide online counts kept by the presence tracker.
type StatsReportJob struct {
	source   statsSource
	presence ports.PresenceTracker
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewStatsReportJob(source statsSource, presence ports.PresenceTracker, schedule string, logger *slog.Logger) *StatsReportJob {
	if schedule == "" {
		schedule = DefaultStatsReportSchedule
	}
	if presence == nil {
		presence = ports.NopPresence{}
	}
	return &StatsReportJob{
		source:   source,
		presence: presence,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stats_report_job"),
	}
}

func (j *StatsReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stats report job started", "schedule", j.schedule)
	return nil
}

func (j *StatsReportJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats := j.source.Stats()
	attrs := []any{
		"connections", stats.Connections,
		"customers", stats.Customers,
		"couriers", stats.Couriers,
		"order_topics", stats.OrderTopics,
	}

	for _, role := range []string{realtime.RoleCustomer.String(), realtime.RoleCourier.String()} {
		n, err := j.presence.CountOnline(ctx, role)
		if err != nil {
			j.logger.WarnContext(ctx, "Presence count failed", "role", role, "error", err)
			continue
		}
		attrs = append(attrs, role+"s_online", n)
	}

	j.logger.InfoContext(ctx, "Realtime stats", attrs...)
}

func (j *StatsReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stats report job stopped")
}
