package analytics

import (
	"context"

	"github.com/farmstayhq/farmstay-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PropertyMonthTotals is one property's bucket sums for a month.
type PropertyMonthTotals struct {
	PropertyID uuid.UUID
	Views      int64
	Leads      int64
}

// RollupRepository owns the writes the monthly rollup performs. Summary
// writes are additive upserts so a re-run that picks up late events adds to
// what an earlier run stored. The platform stat is an overwrite; the job
// recomputes the month's totals from buckets plus summaries on every run.
type RollupRepository interface {
	WithTx(tx *gorm.DB) RollupRepository
	ListPropertyTotals(ctx context.Context, fromDate, toDate string) ([]PropertyMonthTotals, error)
	SumSummariesInMonth(ctx context.Context, month string) (views, leads int64, err error)
	FindPlatformStat(ctx context.Context, month string) (*models.PlatformMonthlyStat, error)
	UpsertPlatformStat(ctx context.Context, stat *models.PlatformMonthlyStat) error
	UpsertMonthlySummary(ctx context.Context, propertyID uuid.UUID, month string, views, leads int64) error
	DeleteBucketsBetween(ctx context.Context, propertyID uuid.UUID, fromDate, toDate string) (int64, error)
	ReplaceTopEntries(ctx context.Context, month string, entries []models.TopPropertyEntry) error
}

type rollupRepository struct {
	db *gorm.DB
}

// NewRollupRepository returns a rollup repository bound to the provided
// database.
func NewRollupRepository(db *gorm.DB) RollupRepository {
	return &rollupRepository{db: db}
}

func (r *rollupRepository) WithTx(tx *gorm.DB) RollupRepository {
	if tx == nil {
		return r
	}
	return &rollupRepository{db: tx}
}

func (r *rollupRepository) ListPropertyTotals(ctx context.Context, fromDate, toDate string) ([]PropertyMonthTotals, error) {
	var totals []PropertyMonthTotals
	if err := r.db.WithContext(ctx).
		Model(&models.DailyBucket{}).
		Select("property_id, COALESCE(SUM(views), 0) AS views, COALESCE(SUM(leads), 0) AS leads").
		Where("bucket_date BETWEEN ? AND ?", fromDate, toDate).
		Group("property_id").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *rollupRepository) SumSummariesInMonth(ctx context.Context, month string) (int64, int64, error) {
	var row struct {
		Views int64
		Leads int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.MonthlySummary{}).
		Select("COALESCE(SUM(views), 0) AS views, COALESCE(SUM(leads), 0) AS leads").
		Where("month = ?", month).
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Views, row.Leads, nil
}

func (r *rollupRepository) FindPlatformStat(ctx context.Context, month string) (*models.PlatformMonthlyStat, error) {
	var stat models.PlatformMonthlyStat
	if err := r.db.WithContext(ctx).
		Where("month = ?", month).
		First(&stat).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &stat, nil
}

func (r *rollupRepository) UpsertPlatformStat(ctx context.Context, stat *models.PlatformMonthlyStat) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "month"}},
			DoUpdates: clause.Assignments(map[string]any{
				"farmhouse_count":  stat.FarmhouseCount,
				"bnb_count":        stat.BnbCount,
				"total_properties": stat.TotalProperties,
				"new_properties":   stat.NewProperties,
				"revenue":          stat.Revenue,
				"total_views":      stat.TotalViews,
				"total_leads":      stat.TotalLeads,
			}),
		}).
		Create(stat).Error
}

func (r *rollupRepository) UpsertMonthlySummary(ctx context.Context, propertyID uuid.UUID, month string, views, leads int64) error {
	summary := models.MonthlySummary{
		ID:         uuid.New(),
		PropertyID: propertyID,
		Month:      month,
		Views:      views,
		Leads:      leads,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "property_id"}, {Name: "month"}},
			DoUpdates: clause.Assignments(map[string]any{
				"views": gorm.Expr("monthly_summaries.views + ?", views),
				"leads": gorm.Expr("monthly_summaries.leads + ?", leads),
			}),
		}).
		Create(&summary).Error
}

func (r *rollupRepository) DeleteBucketsBetween(ctx context.Context, propertyID uuid.UUID, fromDate, toDate string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("property_id = ? AND bucket_date BETWEEN ? AND ?", propertyID, fromDate, toDate).
		Delete(&models.DailyBucket{})
	return result.RowsAffected, result.Error
}

func (r *rollupRepository) ReplaceTopEntries(ctx context.Context, month string, entries []models.TopPropertyEntry) error {
	if err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Delete(&models.TopPropertyEntry{}).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}
