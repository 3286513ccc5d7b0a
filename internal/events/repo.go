package events

import (
	"context"

	"github.com/farmstayhq/farmstay-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists engagement events. All writes are increment statements
// or upserts so concurrent events for the same property never lose counts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	EnsureAnalysis(ctx context.Context, propertyID uuid.UUID) error
	IncrementLifetime(ctx context.Context, propertyID uuid.UUID, views, leads int64) error
	UpsertBucket(ctx context.Context, propertyID uuid.UUID, bucketDate string, views, leads int64) error
	ApplyReview(ctx context.Context, propertyID uuid.UUID, rating float64) error
	ReviewFigures(ctx context.Context, propertyID uuid.UUID) (average float64, count int64, err error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an events repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) EnsureAnalysis(ctx context.Context, propertyID uuid.UUID) error {
	analysis := models.PropertyAnalysis{
		ID:         uuid.New(),
		PropertyID: propertyID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "property_id"}},
			DoNothing: true,
		}).
		Create(&analysis).Error
}

func (r *repository) IncrementLifetime(ctx context.Context, propertyID uuid.UUID, views, leads int64) error {
	return r.db.WithContext(ctx).
		Model(&models.PropertyAnalysis{}).
		Where("property_id = ?", propertyID).
		Updates(map[string]any{
			"total_views": gorm.Expr("total_views + ?", views),
			"total_leads": gorm.Expr("total_leads + ?", leads),
		}).Error
}

func (r *repository) ApplyReview(ctx context.Context, propertyID uuid.UUID, rating float64) error {
	// SET expressions read the pre-update row, so average and count move
	// together.
	return r.db.WithContext(ctx).
		Model(&models.PropertyAnalysis{}).
		Where("property_id = ?", propertyID).
		Updates(map[string]any{
			"review_average": gorm.Expr("(review_average * review_count + ?) / (review_count + 1)", rating),
			"review_count":   gorm.Expr("review_count + 1"),
		}).Error
}

func (r *repository) ReviewFigures(ctx context.Context, propertyID uuid.UUID) (float64, int64, error) {
	var row struct {
		ReviewAverage float64
		ReviewCount   int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.PropertyAnalysis{}).
		Select("review_average, review_count").
		Where("property_id = ?", propertyID).
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.ReviewAverage, row.ReviewCount, nil
}

func (r *repository) UpsertBucket(ctx context.Context, propertyID uuid.UUID, bucketDate string, views, leads int64) error {
	bucket := models.DailyBucket{
		ID:         uuid.New(),
		PropertyID: propertyID,
		BucketDate: bucketDate,
		Views:      views,
		Leads:      leads,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "property_id"}, {Name: "bucket_date"}},
			DoUpdates: clause.Assignments(map[string]any{
				"views": gorm.Expr("daily_buckets.views + ?", views),
				"leads": gorm.Expr("daily_buckets.leads + ?", leads),
			}),
		}).
		Create(&bucket).Error
}
