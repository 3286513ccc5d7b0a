package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyBucket accumulates one property's views and leads for one business
// day. The (property_id, bucket_date) pair is unique so concurrent first
// events of a day collapse into a single row via upsert.
type DailyBucket struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	PropertyID uuid.UUID `gorm:"column:property_id;type:uuid;not null;uniqueIndex:uq_daily_buckets_property_date"`
	BucketDate string    `gorm:"column:bucket_date;type:varchar(10);not null;uniqueIndex:uq_daily_buckets_property_date"`
	Views      int64     `gorm:"column:views;not null;default:0"`
	Leads      int64     `gorm:"column:leads;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
