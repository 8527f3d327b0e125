package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"courierhub/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	e := newWebServer(app)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	jobManager.StopAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Hijacked socket connections are not tracked by Shutdown; close them first.
	app.Hub().Close()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Error(err)
	}
	if err := app.Close(); err != nil {
		e.Logger.Error(err)
	}
}

func newWebServer(app *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	app.CreateHTTPServer().RegisterRoutes(e)

	wsHandler, err := app.CreateWebSocketHandler()
	if err != nil {
		log.Fatalf("Failed to create websocket handler: %v", err)
	}
	wsHandler.Register(e)

	return e
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	config := cmd.Config{
		HTTPPort:            envOrDefault("HTTP_PORT", "8080"),
		StoreDriver:         os.Getenv("STORE_DRIVER"),
		StoreTimeout:        durationVariable("STORE_TIMEOUT"),
		DBHost:              os.Getenv("DB_HOST"),
		DBPort:              envOrDefault("DB_PORT", "5432"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBSslMode:           os.Getenv("DB_SSLMODE"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		MapboxToken:         os.Getenv("MAPBOX_TOKEN"),
		MapboxBaseURL:       os.Getenv("MAPBOX_BASE_URL"),
		TopicSweepSchedule:  os.Getenv("TOPIC_SWEEP_SCHEDULE"),
		StatsReportSchedule: os.Getenv("STATS_REPORT_SCHEDULE"),
		WSSendBufferSize:    intVariable("WS_SEND_BUFFER_SIZE"),
	}
	return config
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationVariable(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return d
}

func intVariable(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return n
}
