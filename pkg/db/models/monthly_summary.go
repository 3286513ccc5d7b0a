package models

import (
	"time"

	"github.com/google/uuid"
)

// MonthlySummary is the condensed form of a property's daily buckets for one
// closed month, written by the rollup job. Unique per (property_id, month) so
// a re-run overwrites rather than duplicates.
type MonthlySummary struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	PropertyID uuid.UUID `gorm:"column:property_id;type:uuid;not null;uniqueIndex:uq_monthly_summaries_property_month"`
	Month      string    `gorm:"column:month;type:varchar(7);not null;uniqueIndex:uq_monthly_summaries_property_month"`
	Views      int64     `gorm:"column:views;not null;default:0"`
	Leads      int64     `gorm:"column:leads;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the plural form gorm would otherwise mangle.
func (MonthlySummary) TableName() string {
	return "monthly_summaries"
}
