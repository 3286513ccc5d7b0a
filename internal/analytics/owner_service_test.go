package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/farmstayhq/farmstay-backend/internal/properties"
	"github.com/farmstayhq/farmstay-backend/pkg/calendar"
	"github.com/farmstayhq/farmstay-backend/pkg/db/models"
	"github.com/farmstayhq/farmstay-backend/pkg/enums"
	"github.com/farmstayhq/farmstay-backend/pkg/errors"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Property{},
		&models.PropertyAnalysis{},
		&models.DailyBucket{},
		&models.MonthlySummary{},
		&models.PlatformMonthlyStat{},
		&models.TopPropertyEntry{},
		&models.Payment{},
	))
	return conn
}

func newOwnerService(t *testing.T, conn *gorm.DB) *OwnerService {
	t.Helper()
	cal, err := calendar.New("")
	require.NoError(t, err)
	svc, err := NewOwnerService(OwnerServiceParams{
		Repo:       NewRepository(conn),
		Properties: properties.NewRepository(conn),
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Calendar:   cal,
	})
	require.NoError(t, err)
	return svc
}

func seedProperty(t *testing.T, conn *gorm.DB) uuid.UUID {
	t.Helper()
	property := models.Property{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		Name:          "Cedar Stay",
		Type:          enums.PropertyTypeBnB,
		Status:        enums.PropertyStatusActive,
		CreditBalance: 320,
	}
	require.NoError(t, conn.Create(&property).Error)
	return property.ID
}

func seedBucket(t *testing.T, conn *gorm.DB, propertyID uuid.UUID, date string, views, leads int64) {
	t.Helper()
	require.NoError(t, conn.Create(&models.DailyBucket{
		ID:         uuid.New(),
		PropertyID: propertyID,
		BucketDate: date,
		Views:      views,
		Leads:      leads,
	}).Error)
}

func TestDashboardWithoutAnalysisReadsZeros(t *testing.T) {
	conn := newTestDB(t)
	svc := newOwnerService(t, conn)
	id := seedProperty(t, conn)

	dashboard, err := svc.Dashboard(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, int64(0), dashboard.TotalViews)
	require.Equal(t, int64(0), dashboard.TotalLeads)
	require.Equal(t, int64(320), dashboard.CreditBalance)
	require.Equal(t, "active", dashboard.Status)
}

func TestDashboardSumsRecentLeadWindows(t *testing.T) {
	conn := newTestDB(t)
	svc := newOwnerService(t, conn)
	id := seedProperty(t, conn)
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	require.NoError(t, conn.Create(&models.PropertyAnalysis{
		ID:         uuid.New(),
		PropertyID: id,
		TotalViews: 900,
		TotalLeads: 60,
	}).Error)

	seedBucket(t, conn, id, "2024-05-20", 5, 2) // today
	seedBucket(t, conn, id, "2024-05-14", 4, 3) // 6 days ago, inside 7-day window
	seedBucket(t, conn, id, "2024-05-13", 4, 4) // outside 7-day, inside 30-day
	seedBucket(t, conn, id, "2024-04-01", 9, 9) // outside 7 and 30, inside 365
	seedBucket(t, conn, id, "2023-05-01", 8, 8) // older than a year

	require.NoError(t, conn.Create(&models.Payment{
		ID: uuid.New(), PropertyID: id, Amount: 700,
		Status: enums.PaymentStatusSuccess, GatewayOrderID: "ord-a",
	}).Error)
	require.NoError(t, conn.Create(&models.Payment{
		ID: uuid.New(), PropertyID: id, Amount: 300,
		Status: enums.PaymentStatusFailed, GatewayOrderID: "ord-b",
	}).Error)

	dashboard, err := svc.Dashboard(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, int64(900), dashboard.TotalViews)
	require.Equal(t, int64(60), dashboard.TotalLeads)
	require.Equal(t, int64(5), dashboard.LeadsLast7Days)
	require.Equal(t, int64(9), dashboard.LeadsLast30Days)
	require.Equal(t, int64(18), dashboard.LeadsLast365Days)
	require.True(t, dashboard.TotalRecharged.Equal(decimal.NewFromInt(700)),
		"failed payments never count as recharge, got %s", dashboard.TotalRecharged)
}

func TestDashboardUnknownProperty(t *testing.T) {
	conn := newTestDB(t)
	svc := newOwnerService(t, conn)

	_, err := svc.Dashboard(context.Background(), uuid.New())
	require.Error(t, err)
	require.Equal(t, errors.CodeNotFound, errors.As(err).Code())
}

func TestDailySeriesZeroFillsMissingDays(t *testing.T) {
	conn := newTestDB(t)
	svc := newOwnerService(t, conn)
	id := seedProperty(t, conn)
	svc.now = func() time.Time { return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC) }

	seedBucket(t, conn, id, "2024-05-19", 7, 1)

	series, err := svc.DailySeries(context.Background(), id, 3)
	require.NoError(t, err)
	require.Len(t, series, 3)
	require.Equal(t, "2024-05-18", series[0].Date)
	require.Equal(t, int64(0), series[0].Views)
	require.Equal(t, "2024-05-19", series[1].Date)
	require.Equal(t, int64(7), series[1].Views)
	require.Equal(t, int64(1), series[1].Leads)
	require.Equal(t, "2024-05-20", series[2].Date)
	require.Equal(t, "Mon", series[2].Weekday)
}

func TestDailySeriesRejectsOversizedWindow(t *testing.T) {
	conn := newTestDB(t)
	svc := newOwnerService(t, conn)
	id := seedProperty(t, conn)

	_, err := svc.DailySeries(context.Background(), id, maxSeriesDays+1)
	require.Error(t, err)
	require.Equal(t, errors.CodeValidation, errors.As(err).Code())
}

func TestMonthReportPrefersSummaryForClosedMonth(t *testing.T) {
	conn := newTestDB(t)
	svc := newOwnerService(t, conn)
	id := seedProperty(t, conn)
	svc.now = func() time.Time { return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, conn.Create(&models.MonthlySummary{
		ID:         uuid.New(),
		PropertyID: id,
		Month:      "2024-04",
		Views:      120,
		Leads:      14,
	}).Error)
	// Stray bucket for the same month must not double-count once summarized.
	seedBucket(t, conn, id, "2024-04-02", 3, 1)

	report, err := svc.MonthReport(context.Background(), id, "2024-04")
	require.NoError(t, err)
	require.Equal(t, int64(120), report.Views)
	require.Equal(t, int64(14), report.Leads)
	require.Equal(t, MonthSourceSummary, report.Source)
}

func TestMonthReportFallsBackToBucketsBeforeRollup(t *testing.T) {
	conn := newTestDB(t)
	svc := newOwnerService(t, conn)
	id := seedProperty(t, conn)
	svc.now = func() time.Time { return time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC) }

	seedBucket(t, conn, id, "2024-04-28", 11, 2)
	seedBucket(t, conn, id, "2024-04-29", 4, 1)

	report, err := svc.MonthReport(context.Background(), id, "2024-04")
	require.NoError(t, err)
	require.Equal(t, int64(15), report.Views)
	require.Equal(t, int64(3), report.Leads)
	require.Equal(t, MonthSourceLive, report.Source)
}

func TestMonthReportCurrentMonthReadsLiveBuckets(t *testing.T) {
	conn := newTestDB(t)
	svc := newOwnerService(t, conn)
	id := seedProperty(t, conn)
	svc.now = func() time.Time { return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC) }

	seedBucket(t, conn, id, "2024-05-19", 6, 2)

	report, err := svc.MonthReport(context.Background(), id, "2024-05")
	require.NoError(t, err)
	require.Equal(t, int64(6), report.Views)
	require.Equal(t, MonthSourceLive, report.Source)
}

func TestMonthReportEmptyMonthReadsZeros(t *testing.T) {
	conn := newTestDB(t)
	svc := newOwnerService(t, conn)
	id := seedProperty(t, conn)
	svc.now = func() time.Time { return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC) }

	report, err := svc.MonthReport(context.Background(), id, "2023-11")
	require.NoError(t, err)
	require.Equal(t, int64(0), report.Views)
	require.Equal(t, int64(0), report.Leads)
	require.Equal(t, MonthSourceEmpty, report.Source)
}

func TestMonthReportRejectsGarbageMonth(t *testing.T) {
	conn := newTestDB(t)
	svc := newOwnerService(t, conn)
	id := seedProperty(t, conn)

	_, err := svc.MonthReport(context.Background(), id, "garbage")
	require.Error(t, err)
	require.Equal(t, errors.CodeValidation, errors.As(err).Code())
}
