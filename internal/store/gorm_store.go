package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ Store = (*GormStore)(nil)

// Entry is one row of the store_entries table.
type Entry struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "store_entries"
}

// GormStore needs a *gorm.DB opened with TranslateError so that racing
// inserts surface as gorm.ErrDuplicatedKey.
type GormStore struct {
	db         *gorm.DB
	maxRetries int
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate store entries: %w", err)
	}
	return &GormStore{db: db, maxRetries: 3}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry Entry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&Entry{Key: key, Value: value}).Error
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&Entry{}).Error
}

func (s *GormStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var entry Entry
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("key = ?", key).First(&entry).Error
			exists := true
			if errors.Is(err, gorm.ErrRecordNotFound) {
				exists = false
			} else if err != nil {
				return err
			}

			next, err := fn(entry.Value, exists)
			if err != nil {
				return err
			}

			if !exists {
				return tx.Create(&Entry{Key: key, Value: next}).Error
			}
			return tx.Model(&Entry{}).Where("key = ?", key).Updates(map[string]any{
				"value":      next,
				"updated_at": time.Now(),
			}).Error
		})
		// Another transaction created the row first; retry now that it can be locked.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return err
	}
	return ErrContention
}
