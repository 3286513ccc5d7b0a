package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlatformMonthlyStat is one closed month of platform-wide figures, appended
// by the rollup job. Unique per month so a re-run updates in place.
type PlatformMonthlyStat struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Month           string          `gorm:"column:month;type:varchar(7);not null;uniqueIndex:uq_platform_monthly_stats_month"`
	FarmhouseCount  int64           `gorm:"column:farmhouse_count;not null;default:0"`
	BnbCount        int64           `gorm:"column:bnb_count;not null;default:0"`
	TotalProperties int64           `gorm:"column:total_properties;not null;default:0"`
	NewProperties   int64           `gorm:"column:new_properties;not null;default:0"`
	Revenue         decimal.Decimal `gorm:"column:revenue;type:numeric(14,2);not null;default:0"`
	TotalViews      int64           `gorm:"column:total_views;not null;default:0"`
	TotalLeads      int64           `gorm:"column:total_leads;not null;default:0"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
