package billing

import (
	"context"

	"github.com/farmstayhq/farmstay-backend/pkg/db/models"
	"github.com/farmstayhq/farmstay-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles credit balance persistence. Balance mutations are single
// guarded UPDATE statements so concurrent debits never interleave reads and
// writes.
type Repository interface {
	FindProperty(ctx context.Context, id uuid.UUID) (*models.Property, error)
	// DebitWithFloor subtracts amount from an active property's balance only
	// while the pre-debit balance is still at or above floor. It flips the
	// row to inactive in the same statement when the post-debit balance lands
	// at or below floor, and reports the post-debit balance straight from the
	// statement. Returns applied=false when the guard rejected the debit.
	DebitWithFloor(ctx context.Context, id uuid.UUID, amount, floor int64) (balance int64, applied bool, err error)
	Credit(ctx context.Context, id uuid.UUID, amount int64) (bool, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a billing repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var property models.Property
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&property).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &property, nil
}

func (r *repository) DebitWithFloor(ctx context.Context, id uuid.UUID, amount, floor int64) (int64, bool, error) {
	// RETURNING carries the post-debit balance out of the same statement, so
	// a concurrent debit can never slip between the update and the read.
	var property models.Property
	result := r.db.WithContext(ctx).
		Model(&property).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "credit_balance"}}}).
		Where("id = ? AND status = ? AND credit_balance >= ?", id, enums.PropertyStatusActive, floor).
		Updates(map[string]any{
			"credit_balance": gorm.Expr("credit_balance - ?", amount),
			"status": gorm.Expr(
				"CASE WHEN credit_balance - ? <= ? THEN ? ELSE status END",
				amount, floor, enums.PropertyStatusInactive,
			),
		})
	if result.Error != nil {
		return 0, false, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, false, nil
	}
	return property.CreditBalance, true, nil
}

func (r *repository) Credit(ctx context.Context, id uuid.UUID, amount int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", id).
		Update("credit_balance", gorm.Expr("credit_balance + ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", id).
		Update("status", enums.PropertyStatusInactive).Error
}
