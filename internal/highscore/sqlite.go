package highscore

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Entry is one persisted key/value pair.
type Entry struct {
	Key       string `gorm:"primaryKey"`
	Value     int    `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// TableName pins the table name.
func (Entry) TableName() string {
	return "high_scores"
}

// SQLite stores the high score in a SQLite file (pure Go driver, no cgo).
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite high score store needs a path")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	// Several sessions write concurrently.
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrating high score table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Load returns the saved value, or 0 when the key is absent.
func (s *SQLite) Load() (int, error) {
	var e Entry
	err := s.db.Where(&Entry{Key: Key}).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("loading high score: %w", err)
	}
	return e.Value, nil
}

// Save upserts score, keeping the larger of the new and stored values.
func (s *SQLite) Save(score int) error {
	e := Entry{Key: Key, Value: score, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value":      gorm.Expr("MAX(value, excluded.value)"),
			"updated_at": gorm.Expr("CASE WHEN excluded.value > value THEN excluded.updated_at ELSE updated_at END"),
		}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("saving high score: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
