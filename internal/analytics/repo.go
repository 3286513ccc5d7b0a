package analytics

import (
	"context"
	"time"

	"github.com/farmstayhq/farmstay-backend/pkg/db/models"
	"github.com/farmstayhq/farmstay-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository handles aggregate reads for the owner and admin dashboards.
type Repository interface {
	FindAnalysis(ctx context.Context, propertyID uuid.UUID) (*models.PropertyAnalysis, error)
	SumLeadsSince(ctx context.Context, propertyID uuid.UUID, fromDate string) (int64, error)
	SumBucketsBetween(ctx context.Context, propertyID uuid.UUID, fromDate, toDate string) (views, leads int64, err error)
	ListBucketsBetween(ctx context.Context, propertyID uuid.UUID, fromDate, toDate string) ([]models.DailyBucket, error)
	FindMonthlySummary(ctx context.Context, propertyID uuid.UUID, month string) (*models.MonthlySummary, error)
	SumRechargedByProperty(ctx context.Context, propertyID uuid.UUID) (decimal.Decimal, error)

	SumAllBucketsBetween(ctx context.Context, fromDate, toDate string) (views, leads int64, err error)
	SumLifetimeTotals(ctx context.Context) (views, leads int64, err error)
	ListPlatformStats(ctx context.Context, lastN int) ([]models.PlatformMonthlyStat, error)
	ListTopEntries(ctx context.Context, month string) ([]models.TopPropertyEntry, error)
	SumOutstandingCredits(ctx context.Context) (int64, error)
	SumSuccessfulPayments(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	SumAllRecharged(ctx context.Context) (decimal.Decimal, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an analytics repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type bucketTotals struct {
	Views int64
	Leads int64
}

func (r *repository) FindAnalysis(ctx context.Context, propertyID uuid.UUID) (*models.PropertyAnalysis, error) {
	var analysis models.PropertyAnalysis
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		First(&analysis).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &analysis, nil
}

func (r *repository) SumLeadsSince(ctx context.Context, propertyID uuid.UUID, fromDate string) (int64, error) {
	var totals bucketTotals
	if err := r.db.WithContext(ctx).
		Model(&models.DailyBucket{}).
		Select("COALESCE(SUM(leads), 0) AS leads").
		Where("property_id = ? AND bucket_date >= ?", propertyID, fromDate).
		Scan(&totals).Error; err != nil {
		return 0, err
	}
	return totals.Leads, nil
}

func (r *repository) SumBucketsBetween(ctx context.Context, propertyID uuid.UUID, fromDate, toDate string) (int64, int64, error) {
	var totals bucketTotals
	if err := r.db.WithContext(ctx).
		Model(&models.DailyBucket{}).
		Select("COALESCE(SUM(views), 0) AS views, COALESCE(SUM(leads), 0) AS leads").
		Where("property_id = ? AND bucket_date BETWEEN ? AND ?", propertyID, fromDate, toDate).
		Scan(&totals).Error; err != nil {
		return 0, 0, err
	}
	return totals.Views, totals.Leads, nil
}

func (r *repository) ListBucketsBetween(ctx context.Context, propertyID uuid.UUID, fromDate, toDate string) ([]models.DailyBucket, error) {
	var buckets []models.DailyBucket
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND bucket_date BETWEEN ? AND ?", propertyID, fromDate, toDate).
		Order("bucket_date ASC").
		Find(&buckets).Error; err != nil {
		return nil, err
	}
	return buckets, nil
}

func (r *repository) FindMonthlySummary(ctx context.Context, propertyID uuid.UUID, month string) (*models.MonthlySummary, error) {
	var summary models.MonthlySummary
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND month = ?", propertyID, month).
		First(&summary).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

func (r *repository) SumRechargedByProperty(ctx context.Context, propertyID uuid.UUID) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	if err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("property_id = ? AND status = ?", propertyID, enums.PaymentStatusSuccess).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func (r *repository) SumAllBucketsBetween(ctx context.Context, fromDate, toDate string) (int64, int64, error) {
	var totals bucketTotals
	if err := r.db.WithContext(ctx).
		Model(&models.DailyBucket{}).
		Select("COALESCE(SUM(views), 0) AS views, COALESCE(SUM(leads), 0) AS leads").
		Where("bucket_date BETWEEN ? AND ?", fromDate, toDate).
		Scan(&totals).Error; err != nil {
		return 0, 0, err
	}
	return totals.Views, totals.Leads, nil
}

func (r *repository) SumLifetimeTotals(ctx context.Context) (int64, int64, error) {
	var totals bucketTotals
	if err := r.db.WithContext(ctx).
		Model(&models.PropertyAnalysis{}).
		Select("COALESCE(SUM(total_views), 0) AS views, COALESCE(SUM(total_leads), 0) AS leads").
		Scan(&totals).Error; err != nil {
		return 0, 0, err
	}
	return totals.Views, totals.Leads, nil
}

func (r *repository) ListPlatformStats(ctx context.Context, lastN int) ([]models.PlatformMonthlyStat, error) {
	if lastN <= 0 {
		lastN = 6
	}
	var stats []models.PlatformMonthlyStat
	if err := r.db.WithContext(ctx).
		Order("month DESC").
		Limit(lastN).
		Find(&stats).Error; err != nil {
		return nil, err
	}
	// chronological order for charting
	for i, j := 0, len(stats)-1; i < j; i, j = i+1, j-1 {
		stats[i], stats[j] = stats[j], stats[i]
	}
	return stats, nil
}

func (r *repository) ListTopEntries(ctx context.Context, month string) ([]models.TopPropertyEntry, error) {
	var entries []models.TopPropertyEntry
	if err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Order("rank ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) SumOutstandingCredits(ctx context.Context) (int64, error) {
	// Overdrawn balances stay in the sum; outstanding credit is the net
	// liability across all listings.
	var total struct{ Total int64 }
	if err := r.db.WithContext(ctx).
		Model(&models.Property{}).
		Select("COALESCE(SUM(credit_balance), 0) AS total").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total.Total, nil
}

func (r *repository) SumSuccessfulPayments(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	if err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("status = ? AND created_at >= ? AND created_at < ?", enums.PaymentStatusSuccess, from, to).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func (r *repository) SumAllRecharged(ctx context.Context) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	if err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("status = ?", enums.PaymentStatusSuccess).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}
