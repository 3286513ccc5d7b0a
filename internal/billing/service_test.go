package billing

import (
	"context"
	"testing"

	"github.com/farmstayhq/farmstay-backend/pkg/config"
	"github.com/farmstayhq/farmstay-backend/pkg/db/models"
	"github.com/farmstayhq/farmstay-backend/pkg/enums"
	"github.com/farmstayhq/farmstay-backend/pkg/errors"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Property{}))
	return conn
}

func newTestService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:   NewRepository(db),
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		Billing: config.BillingConfig{
			LeadCost:            40,
			MinBalanceThreshold: -500,
		},
	})
	require.NoError(t, err)
	return svc
}

func seedProperty(t *testing.T, db *gorm.DB, balance int64, status enums.PropertyStatus) uuid.UUID {
	t.Helper()
	property := models.Property{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		Name:          "Willow Farm",
		Type:          enums.PropertyTypeFarmhouse,
		Status:        status,
		CreditBalance: balance,
	}
	require.NoError(t, db.Create(&property).Error)
	return property.ID
}

func TestDebitLeadCostDecrementsBalance(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	id := seedProperty(t, db, 200, enums.PropertyStatusActive)

	balance, err := svc.DebitLeadCost(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, int64(160), balance)

	var property models.Property
	require.NoError(t, db.First(&property, "id = ?", id).Error)
	require.Equal(t, enums.PropertyStatusActive, property.Status)
}

func TestDebitLeadCostMayCrossFloorOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	// One debit away from the floor: the debit lands, the row flips inactive.
	id := seedProperty(t, db, -480, enums.PropertyStatusActive)

	balance, err := svc.DebitLeadCost(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, int64(-520), balance)

	var property models.Property
	require.NoError(t, db.First(&property, "id = ?", id).Error)
	require.Equal(t, enums.PropertyStatusInactive, property.Status)
}

func TestDebitLeadCostBlockedBelowFloor(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	id := seedProperty(t, db, -520, enums.PropertyStatusActive)

	_, err := svc.DebitLeadCost(context.Background(), id)
	require.Error(t, err)
	require.Equal(t, errors.CodeContactUnavailable, errors.As(err).Code())

	var property models.Property
	require.NoError(t, db.First(&property, "id = ?", id).Error)
	require.Equal(t, int64(-520), property.CreditBalance, "blocked debit must not touch the balance")
	require.Equal(t, enums.PropertyStatusInactive, property.Status)
}

func TestDebitLeadCostRepeatedlyNeverRunsAway(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	id := seedProperty(t, db, -490, enums.PropertyStatusActive)

	balance, err := svc.DebitLeadCost(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, int64(-530), balance)

	for i := 0; i < 5; i++ {
		_, err = svc.DebitLeadCost(context.Background(), id)
		require.Error(t, err)
		require.Equal(t, errors.CodeContactUnavailable, errors.As(err).Code())
	}

	final, err := svc.Balance(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, int64(-530), final)
}

func TestDebitLeadCostUnknownProperty(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.DebitLeadCost(context.Background(), uuid.New())
	require.Error(t, err)
	require.Equal(t, errors.CodeNotFound, errors.As(err).Code())
}

func TestDebitLeadCostRequiresActiveStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)

	for _, status := range []enums.PropertyStatus{
		enums.PropertyStatusInactive,
		enums.PropertyStatusPendingApproval,
		enums.PropertyStatusIncomplete,
	} {
		id := seedProperty(t, db, 400, status)

		_, err := svc.DebitLeadCost(context.Background(), id)
		require.Error(t, err)
		require.Equal(t, errors.CodeNotFound, errors.As(err).Code())

		var property models.Property
		require.NoError(t, db.First(&property, "id = ?", id).Error)
		require.Equal(t, int64(400), property.CreditBalance, "non-active listings keep their balance")
		require.Equal(t, status, property.Status)
	}
}

func TestCreditNeverReactivates(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	id := seedProperty(t, db, -600, enums.PropertyStatusInactive)

	balance, err := svc.Credit(context.Background(), id, 2000)
	require.NoError(t, err)
	require.Equal(t, int64(1400), balance)

	var property models.Property
	require.NoError(t, db.First(&property, "id = ?", id).Error)
	require.Equal(t, enums.PropertyStatusInactive, property.Status,
		"a top-up moves money only; status stays where the admin left it")
}

func TestCreditBelowFloorStaysInactive(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	id := seedProperty(t, db, -600, enums.PropertyStatusInactive)

	balance, err := svc.Credit(context.Background(), id, 50)
	require.NoError(t, err)
	require.Equal(t, int64(-550), balance)

	var property models.Property
	require.NoError(t, db.First(&property, "id = ?", id).Error)
	require.Equal(t, enums.PropertyStatusInactive, property.Status)
}

func TestCreditRejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	id := seedProperty(t, db, 100, enums.PropertyStatusActive)

	_, err := svc.Credit(context.Background(), id, 0)
	require.Error(t, err)
	require.Equal(t, errors.CodeValidation, errors.As(err).Code())
}

func TestCreditUnknownProperty(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.Credit(context.Background(), uuid.New(), 100)
	require.Error(t, err)
	require.Equal(t, errors.CodeNotFound, errors.As(err).Code())
}
