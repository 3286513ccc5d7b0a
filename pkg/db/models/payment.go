package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmstayhq/farmstay-backend/pkg/enums"
)

// Payment records a credit top-up attempt for a property. Amount is whole
// rupees. Only payments in the success status contribute to revenue.
type Payment struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	PropertyID       uuid.UUID           `gorm:"column:property_id;type:uuid;not null"`
	Amount           int64               `gorm:"column:amount;not null"`
	Status           enums.PaymentStatus `gorm:"column:status;not null;default:initiated"`
	GatewayOrderID   string              `gorm:"column:gateway_order_id;not null"`
	GatewayPaymentID *string             `gorm:"column:gateway_payment_id"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
