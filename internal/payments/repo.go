package payments

import (
	"context"

	"github.com/farmstayhq/farmstay-backend/pkg/db/models"
	"github.com/farmstayhq/farmstay-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles payment persistence.
type Repository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Payment, error)
	MarkStatus(ctx context.Context, id uuid.UUID, status enums.PaymentStatus, gatewayPaymentID *string) error
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]models.Payment, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a payments repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Payment, error) {
	if gatewayOrderID == "" {
		return nil, nil
	}
	var payment models.Payment
	if err := r.db.WithContext(ctx).
		Where("gateway_order_id = ?", gatewayOrderID).
		First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *repository) MarkStatus(ctx context.Context, id uuid.UUID, status enums.PaymentStatus, gatewayPaymentID *string) error {
	updates := map[string]any{"status": status}
	if gatewayPaymentID != nil {
		updates["gateway_payment_id"] = *gatewayPaymentID
	}
	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]models.Payment, error) {
	var list []models.Payment
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
