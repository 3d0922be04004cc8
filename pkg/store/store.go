// Package store persists pending reminders.
//
// Three backends are available and selected at runtime by Config.Driver:
//   - "sqlite3", "mysql", "postgres": relational, through gorm
//   - "mongodb": document store
//   - "file": append-only JSON lines journal with periodic snapshots
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/andersfylling/disgord"
	"github.com/qysp/reminderbot/pkg/common"
	"github.com/qysp/reminderbot/pkg/models"
)

// Store is the durable record of pending reminders.
// Deleting an absent reminder is not an error. Returned slices are unordered.
type Store interface {
	Insert(ctx context.Context, r models.Reminder) error
	DeleteByID(ctx context.Context, id uint64) error
	DeleteExact(ctx context.Context, r models.Reminder) error
	ListAll(ctx context.Context) ([]models.Reminder, error)
	ListByUser(ctx context.Context, userID disgord.Snowflake) ([]models.Reminder, error)
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Driver string
	// DSN is a SQL data source name, a mongo URI or a file path prefix.
	DSN string
	// Database is the mongo database name.
	Database string
}

// Error reports a failed store operation.
type Error struct {
	Op     string
	Driver string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s: %s: %v", e.Driver, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(driver, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Driver: driver, Err: err}
}

// Open connects the configured backend and prepares its schema.
func Open(ctx context.Context, cfg Config, log *common.Logger) (Store, error) {
	if log == nil {
		log = common.NopLogger()
	}
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))

	switch driver {
	case "", "sqlite", "sqlite3":
		return openGorm("sqlite3", cfg.DSN, log)
	case "mysql", "postgres":
		return openGorm(driver, cfg.DSN, log)
	case "mongo", "mongodb":
		return openMongo(ctx, cfg.DSN, cfg.Database, log)
	case "file":
		return openFile(cfg.DSN, log)
	default:
		return nil, fmt.Errorf("unknown database driver: %s", cfg.Driver)
	}
}
