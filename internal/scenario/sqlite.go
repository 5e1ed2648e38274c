package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jwaldner/optionsim/internal/logger"
)

// DBScenario is the table row for a stored scenario. The series is kept as JSON.
type DBScenario struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Kind      string    `gorm:"size:32;index"`
	CreatedAt time.Time `gorm:"index"`
	Payload   string    `gorm:"type:text"`
}

func (DBScenario) TableName() string { return "scenarios" }

// SQLiteStore persists scenarios in a SQLite file through gorm
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

// NewSQLiteStore opens (or creates) the database at dbPath
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&DBScenario{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Debug.Printf("scenario store opened at %s", dbPath)
	return &SQLiteStore{db: db, path: dbPath}, nil
}

func (s *SQLiteStore) Save(sc *Scenario) error {
	payload, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to encode scenario %s: %w", sc.ID, err)
	}
	row := &DBScenario{
		ID:        sc.ID,
		Kind:      string(sc.Kind),
		CreatedAt: sc.CreatedAt,
		Payload:   string(payload),
	}
	if err := s.db.Save(row).Error; err != nil {
		return fmt.Errorf("failed to save scenario %s: %w", sc.ID, err)
	}
	logger.Log.WithFields(map[string]interface{}{
		"id":   sc.ID,
		"kind": sc.Kind,
	}).Debug("scenario saved")
	return nil
}

func (s *SQLiteStore) Get(id string) (*Scenario, error) {
	var row DBScenario
	err := s.db.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownScenario
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario %s: %w", id, err)
	}

	var sc Scenario
	if err := json.Unmarshal([]byte(row.Payload), &sc); err != nil {
		return nil, fmt.Errorf("failed to decode scenario %s: %w", id, err)
	}
	return &sc, nil
}

// List returns summaries newest first
func (s *SQLiteStore) List() ([]Summary, error) {
	var rows []DBScenario
	if err := s.db.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	out := make([]Summary, 0, len(rows))
	for _, row := range rows {
		var sc Scenario
		if err := json.Unmarshal([]byte(row.Payload), &sc); err != nil {
			logger.Warn.Printf("skipping unreadable scenario %s: %v", row.ID, err)
			continue
		}
		out = append(out, sc.Summary())
	}
	return out, nil
}

func (s *SQLiteStore) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(&DBScenario{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUnknownScenario
	}
	return nil
}

// Clear removes every scenario and reports how many rows were deleted
func (s *SQLiteStore) Clear() (int, error) {
	result := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&DBScenario{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear scenarios: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}

func (s *SQLiteStore) Driver() string { return "sqlite" }

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
