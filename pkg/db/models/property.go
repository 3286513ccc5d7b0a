package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmstayhq/farmstay-backend/pkg/enums"
)

// Property is a rental listing. CreditBalance is the prepaid lead budget in
// whole rupees; it may go negative down to the configured deactivation floor.
type Property struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID       uuid.UUID            `gorm:"column:owner_id;type:uuid;not null"`
	Name          string               `gorm:"column:name;not null"`
	Type          enums.PropertyType   `gorm:"column:type;not null"`
	Status        enums.PropertyStatus `gorm:"column:status;not null;default:pending_approval"`
	City          string               `gorm:"column:city"`
	WhatsappLink  *string              `gorm:"column:whatsapp_link"`
	CreditBalance int64                `gorm:"column:credit_balance;not null;default:0"`
	PricePerNight int64                `gorm:"column:price_per_night;not null;default:0"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
