package store

import (
	"context"

	"github.com/andersfylling/disgord"
	"github.com/jinzhu/gorm"
	"github.com/qysp/reminderbot/pkg/common"
	"github.com/qysp/reminderbot/pkg/models"

	// SQL dialects selectable at runtime.
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// reminderRow is the relational representation of a reminder.
type reminderRow struct {
	ID            uint64 `gorm:"primary_key;auto_increment:false"`
	UserID        uint64 `gorm:"index;not null"`
	Message       string `gorm:"type:text;not null"`
	FireTimestamp int64  `gorm:"not null"`
}

// TableName name of the table for reminders.
func (reminderRow) TableName() string {
	return "reminders"
}

func toRow(r models.Reminder) reminderRow {
	return reminderRow{
		ID:            r.ID,
		UserID:        uint64(r.UserID),
		Message:       r.Message,
		FireTimestamp: r.FireTimestamp,
	}
}

func (row reminderRow) reminder() models.Reminder {
	return models.Reminder{
		ID:            row.ID,
		UserID:        disgord.Snowflake(row.UserID),
		Message:       row.Message,
		FireTimestamp: row.FireTimestamp,
	}
}

type gormStore struct {
	db      *gorm.DB
	dialect string
	log     *common.Logger
}

func openGorm(dialect, dsn string, log *common.Logger) (Store, error) {
	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, wrap(dialect, "open", err)
	}
	return newGormStore(db, dialect, log)
}

func newGormStore(db *gorm.DB, dialect string, log *common.Logger) (Store, error) {
	// SQLite prefers a single writer; the pool serialises access to it.
	if dialect == "sqlite3" {
		db.DB().SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&reminderRow{}).Error; err != nil {
		_ = db.Close()
		return nil, wrap(dialect, "migrate", err)
	}

	log.Debug("opened", dialect, "reminder store")
	return &gormStore{db: db, dialect: dialect, log: log}, nil
}

func (s *gormStore) Insert(ctx context.Context, r models.Reminder) error {
	row := toRow(r)
	return wrap(s.dialect, "insert", s.db.Create(&row).Error)
}

func (s *gormStore) DeleteByID(ctx context.Context, id uint64) error {
	err := s.db.Where("id = ?", id).Delete(&reminderRow{}).Error
	return wrap(s.dialect, "delete by id", err)
}

func (s *gormStore) DeleteExact(ctx context.Context, r models.Reminder) error {
	err := s.db.Where(
		"id = ? AND user_id = ? AND message = ? AND fire_timestamp = ?",
		r.ID, uint64(r.UserID), r.Message, r.FireTimestamp,
	).Delete(&reminderRow{}).Error
	return wrap(s.dialect, "delete exact", err)
}

func (s *gormStore) ListAll(ctx context.Context) ([]models.Reminder, error) {
	var rows []reminderRow
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, wrap(s.dialect, "list all", err)
	}
	return rowsToReminders(rows), nil
}

func (s *gormStore) ListByUser(ctx context.Context, userID disgord.Snowflake) ([]models.Reminder, error) {
	var rows []reminderRow
	if err := s.db.Where("user_id = ?", uint64(userID)).Find(&rows).Error; err != nil {
		return nil, wrap(s.dialect, "list by user", err)
	}
	return rowsToReminders(rows), nil
}

func (s *gormStore) Close() error {
	return s.db.Close()
}

func rowsToReminders(rows []reminderRow) []models.Reminder {
	reminders := make([]models.Reminder, 0, len(rows))
	for _, row := range rows {
		reminders = append(reminders, row.reminder())
	}
	return reminders
}
