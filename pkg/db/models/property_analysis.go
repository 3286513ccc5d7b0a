package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyAnalysis carries the lifetime engagement counters for a property.
// One row per property; created on first recorded event. Counters only ever
// increase and survive the monthly rollup.
type PropertyAnalysis struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	PropertyID    uuid.UUID `gorm:"column:property_id;type:uuid;not null;uniqueIndex:uq_property_analyses_property"`
	TotalViews    int64     `gorm:"column:total_views;not null;default:0"`
	TotalLeads    int64     `gorm:"column:total_leads;not null;default:0"`
	ReviewAverage float64   `gorm:"column:review_average;type:numeric(3,2);not null;default:0"`
	ReviewCount   int64     `gorm:"column:review_count;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the plural form gorm would otherwise mangle.
func (PropertyAnalysis) TableName() string {
	return "property_analyses"
}
