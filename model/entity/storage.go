package entity

import (
	"time"

	"gorm.io/datatypes"
)

// StorageEntry represents pos_storage, the durable key-value store for
// register state. The cart is serialized here under a fixed key after every
// mutation.
type StorageEntry struct {
	StorageKey string         `gorm:"column:storage_key;type:varchar(64);primaryKey" json:"storage_key"`
	Payload    datatypes.JSON `gorm:"column:payload;not null" json:"payload"`
	UpdatedAt  time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (StorageEntry) TableName() string {
	return "pos_storage"
}

// OrderLogEntry represents pos_order_log, a local record of submitted orders
// keyed by the backend's human-facing order number.
type OrderLogEntry struct {
	OrderNumber   int64     `gorm:"column:order_number;primaryKey" json:"order_number"`
	PaymentMethod string    `gorm:"column:payment_method;type:varchar(16);not null" json:"payment_method"`
	Total         float64   `gorm:"column:total;type:decimal(12,2);not null;default:0" json:"total"`
	ItemsCount    int       `gorm:"column:items_count;not null;default:0" json:"items_count"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (OrderLogEntry) TableName() string {
	return "pos_order_log"
}
