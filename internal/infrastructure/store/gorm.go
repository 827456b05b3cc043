package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/velora/storefront/internal/infrastructure/logger"
)

// SessionRecord is the embedded store's row: one value per session key
type SessionRecord struct {
	SessionID string    `gorm:"primaryKey;size:64"`
	Key       string    `gorm:"primaryKey;size:64;column:record_key"`
	Value     []byte    `gorm:"type:blob"`
	UpdatedAt time.Time `gorm:"index"`
}

// TableName overrides the gorm table name
func (SessionRecord) TableName() string {
	return "session_records"
}

// GormStore is the embedded fallback SessionStore for deployments
// without Redis. It keeps session state in a local SQLite file.
type GormStore struct {
	db  *gorm.DB
	ttl time.Duration
}

// OpenSQLite opens (or creates) the SQLite database and migrates the
// session schema.
func OpenSQLite(path string, zapLogger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.NewGormLogger(zapLogger, gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&SessionRecord{}); err != nil {
		return nil, fmt.Errorf("store: migrate session schema: %w", err)
	}
	return db, nil
}

// NewGormStore creates a SQLite-backed session store
func NewGormStore(db *gorm.DB, ttl time.Duration) *GormStore {
	return &GormStore{db: db, ttl: ttl}
}

// Get implements SessionStore. Records older than the session TTL are
// treated as missing.
func (s *GormStore) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	var record SessionRecord
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND record_key = ?", sessionID, key).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: sqlite get: %w", err)
	}
	if s.ttl > 0 && time.Since(record.UpdatedAt) > s.ttl {
		return nil, ErrKeyNotFound
	}
	return record.Value, nil
}

// Set implements SessionStore
func (s *GormStore) Set(ctx context.Context, sessionID, key string, value []byte) error {
	record := SessionRecord{
		SessionID: sessionID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).Save(&record).Error
	if err != nil {
		return fmt.Errorf("store: sqlite set: %w", err)
	}
	return nil
}

// Delete implements SessionStore
func (s *GormStore) Delete(ctx context.Context, sessionID, key string) error {
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND record_key = ?", sessionID, key).
		Delete(&SessionRecord{}).Error
	if err != nil {
		return fmt.Errorf("store: sqlite delete: %w", err)
	}
	return nil
}

// PruneExpired removes records idle past the session TTL. Meant to run
// periodically from the server's housekeeping loop.
func (s *GormStore) PruneExpired(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	cutoff := time.Now().Add(-s.ttl)
	result := s.db.WithContext(ctx).
		Where("updated_at < ?", cutoff).
		Delete(&SessionRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("store: sqlite prune: %w", result.Error)
	}
	return result.RowsAffected, nil
}

var _ SessionStore = (*GormStore)(nil)
