package models

import (
	"time"

	"github.com/google/uuid"
)

// TopPropertyEntry is one slot of the cached last-month leaderboard the admin
// dashboard reads. The rollup job replaces all entries for a month at once.
type TopPropertyEntry struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Month        string    `gorm:"column:month;type:varchar(7);not null;uniqueIndex:uq_top_property_entries_month_rank"`
	Rank         int       `gorm:"column:rank;not null;uniqueIndex:uq_top_property_entries_month_rank"`
	PropertyID   uuid.UUID `gorm:"column:property_id;type:uuid;not null"`
	PropertyName string    `gorm:"column:property_name;not null"`
	Views        int64     `gorm:"column:views;not null;default:0"`
	Leads        int64     `gorm:"column:leads;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the plural form gorm would otherwise mangle.
func (TopPropertyEntry) TableName() string {
	return "top_property_entries"
}
