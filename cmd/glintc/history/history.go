// Package history persists one row per analyzed fixture, so repeated
// runs over a fixture tree can be compared over time. It is optional:
// the CLI only opens a store when --history is passed.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Run records the outcome of analyzing one fixture in a `glintc analyze`
// invocation.
type Run struct {
	ID              uint `gorm:"primaryKey"`
	Fixture         string `gorm:"type:varchar(255);index"`
	StartedAt       time.Time
	DurationMillis  int64
	ErrorCount      int `gorm:"index"`
	WarningCount    int
	InfoCount       int
	GenericInstances int
	OK              bool `gorm:"index"`
}

// Connect opens (and, for a file DSN, creates the parent directory of)
// a SQLite-backed history store and runs its migration, mirroring the
// connect-then-migrate shape a gorm-based store follows elsewhere in
// the pack.
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	config := &gorm.Config{}
	if debug {
		config.Logger = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("history migration failed: %w", err)
	}
	return db, nil
}

// Migrate brings the history schema up to date.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Run{})
}

// Record inserts one completed run.
func Record(db *gorm.DB, run *Run) error {
	return db.Create(run).Error
}

// Recent returns the most recent n runs for a fixture, newest first.
func Recent(db *gorm.DB, fixture string, n int) ([]Run, error) {
	var runs []Run
	q := db.Order("id desc").Limit(n)
	if fixture != "" {
		q = q.Where("fixture = ?", fixture)
	}
	err := q.Find(&runs).Error
	return runs, err
}
