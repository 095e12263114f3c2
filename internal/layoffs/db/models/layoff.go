// Package models contains the persistence models for the layoffs table,
// configured to work using GORM as the ORM.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Layoff is a row of the layoffs table.
// Rows are never updated in place, so there is no UpdatedAt or soft delete.
type Layoff struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Company   string    `gorm:"not null"`
	Date      time.Time `gorm:"not null;index"`
	Count     *int      `gorm:"check:count >= 0"`
	Sector    string    `gorm:"not null;index"`
	Location  string    `gorm:"not null;index"`
	SourceURL string    `gorm:"column:source_url"`
	CreatedAt time.Time
}

// TableName pins the table name used by the existing dataset.
func (Layoff) TableName() string {
	return "layoffs"
}

// BeforeCreate assigns the store-side identifier.
func (l *Layoff) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
