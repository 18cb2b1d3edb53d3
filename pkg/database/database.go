// Package database opens the embedded sqlite store.
package database

import (
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the sqlite database at path, creating the file and its
// directory on first use. Foreign keys are switched on and writes wait out
// short lock contention instead of failing.
func Connect(path string, log zerolog.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: newGormLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	return db, nil
}

// Close releases the underlying sqlite connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newGormLogger(log zerolog.Logger) gormlogger.Interface {
	return gormlogger.New(
		stdlog.New(log, "", 0),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
