package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "meezy.GO/model/entity"
)

// CartKey is the fixed storage key the serialized cart lives under.
const CartKey = "meezy-cart"

type StorageRepository struct {
	db *gorm.DB
}

func NewStorageRepository(db *gorm.DB) *StorageRepository {
	return &StorageRepository{db: db}
}

// Save upserts the payload for a storage key.
func (r *StorageRepository) Save(key string, payload []byte) error {
	entry := entity.StorageEntry{
		StorageKey: key,
		Payload:    payload,
		UpdatedAt:  time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&entry).Error
}

// Load returns the payload for a storage key, or (nil, nil) when absent.
func (r *StorageRepository) Load(key string) ([]byte, error) {
	var entry entity.StorageEntry
	err := r.db.Where("storage_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry.Payload, nil
}

// Delete removes a storage key. No-op when absent.
func (r *StorageRepository) Delete(key string) error {
	return r.db.Where("storage_key = ?", key).Delete(&entity.StorageEntry{}).Error
}

// AppendOrderLog records a submitted order locally. Duplicate order numbers
// are ignored (the backend already confirmed the order).
func (r *StorageRepository) AppendOrderLog(e *entity.OrderLogEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(e).Error
}

// RecentOrders returns the latest n order log rows, newest first.
func (r *StorageRepository) RecentOrders(n int) ([]entity.OrderLogEntry, error) {
	var rows []entity.OrderLogEntry
	err := r.db.Order("created_at DESC").Limit(n).Find(&rows).Error
	return rows, err
}
