package subscriptions

import (
	"time"
)

type Subscription struct {
	UserID       string `gorm:"type:uuid;primaryKey"`
	Plan         string `gorm:"not null"`
	Status       string `gorm:"not null"`
	ExportsUsed  int    `gorm:"column:exports_used;not null"`
	ExportsLimit *int   `gorm:"column:exports_limit"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Subscription) TableName() string { return "user_subscriptions" }

// ExportRecord is the write-only audit row inserted once per consumed export.
type ExportRecord struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"type:uuid;not null;index"`
	Format    string `gorm:"not null"`
	CreatedAt time.Time
}

func (ExportRecord) TableName() string { return "exports" }
