// Package jobs provides scheduled background tasks for the real-time engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use the six-field form with a leading seconds field.
//
// # Available Jobs
//
// 1. TopicSweepJob - drops topics left empty by unsubscribes and disconnects (default every 30s)
// 2. StatsReportJob - logs connection counters and presence counts (default every minute)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(dispatcher, presence, jobs.Schedules{TopicSweep: cfg.TopicSweepSchedule}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - An invalid schedule fails Start; already started jobs are stopped
// - Presence failures in the stats report are logged and skipped
package jobs
