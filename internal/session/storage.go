package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"oak-ledger/pkg/database"
)

// TokenKey is where the access token is kept in durable storage
const TokenKey = "token"

// Storage is a small durable key/value store for session state
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStorage keeps session state for the life of the process
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// Entry is one persisted session value
type Entry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "session_entries"
}

// GormStorage persists session state in the session database
type GormStorage struct {
	db *gorm.DB
}

// NewGormStorage migrates the session table and returns a storage backed by it
func NewGormStorage(db *gorm.DB) (*GormStorage, error) {
	if err := database.MigrateModels(db, &Entry{}); err != nil {
		return nil, err
	}
	return &GormStorage{db: db}, nil
}

func (g *GormStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var e Entry
	err := g.db.WithContext(ctx).Where("key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (g *GormStorage) Set(ctx context.Context, key, value string) error {
	return g.db.WithContext(ctx).Save(&Entry{Key: key, Value: value}).Error
}

func (g *GormStorage) Delete(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Where("key = ?", key).Delete(&Entry{}).Error
}
