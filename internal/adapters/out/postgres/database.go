// Package postgres opens the GORM connection used by the postgres Order Store
// and migrates the tracking columns it owns.
//
// Example:
//
//	db, err := postgres.Open(postgres.Config{Host: "localhost", Port: "5432", ...})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := orderrepo.NewGormOrderRepository(db, 5*time.Second)
package postgres

import (
	"fmt"

	"courierhub/internal/adapters/out/postgres/orderrepo"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the connection string in the key=value form the pgx driver accepts.
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode)
}

// Open connects and migrates the orders table.
func Open(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgresdriver.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		return nil, fmt.Errorf("migrate orders: %w", err)
	}
	return db, nil
}
