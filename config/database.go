package config

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectDatabase opens the backing store. When DATABASE_URL is set it
// connects to PostgreSQL; otherwise it falls back to a local SQLite file,
// which is the normal single-shop deployment.
func ConnectDatabase() error {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var err error
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		DB, err = gorm.Open(postgres.Open(databaseURL), gormConfig)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("Database connection established (postgres)")
		return nil
	}

	path := os.Getenv("DATABASE_PATH")
	if path == "" {
		path = "maa_telecom.db"
		log.Infof("DATABASE_PATH not set, using default: %s", path)
	}

	DB, err = gorm.Open(sqlite.Open(path), gormConfig)
	if err != nil {
		return fmt.Errorf("failed to open database file %s: %w", path, err)
	}

	log.Info("Database connection established (sqlite)")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
