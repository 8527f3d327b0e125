package cmd

import "time"

type Config struct {
	HTTPPort string

	// StoreDriver selects the Order Store: "postgres" (default) or "memory".
	StoreDriver  string
	StoreTimeout time.Duration
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSslMode    string

	// RedisAddr enables the presence mirror when set.
	RedisAddr     string
	RedisPassword string

	// MapboxToken enables Directions API routing; without it legs are
	// estimated in a straight line.
	MapboxToken   string
	MapboxBaseURL string

	TopicSweepSchedule  string
	StatsReportSchedule string
	WSSendBufferSize    int
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)
