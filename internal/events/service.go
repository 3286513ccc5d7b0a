package events

import (
	"context"
	goerrors "errors"
	"time"

	"github.com/farmstayhq/farmstay-backend/pkg/calendar"
	"github.com/farmstayhq/farmstay-backend/pkg/errors"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the event recorder.
type ServiceParams struct {
	Repo     Repository
	DB       txRunner
	Logger   *logger.Logger
	Calendar *calendar.Calendar
}

// Service records view and lead events. Each event lands in the lifetime
// counters and the current business day's bucket atomically.
type Service struct {
	repo Repository
	db   txRunner
	logg *logger.Logger
	cal  *calendar.Calendar
	now  func() time.Time
}

// NewService builds an event recorder service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, goerrors.New("repo is required")
	}
	if params.DB == nil {
		return nil, goerrors.New("db runner is required")
	}
	if params.Logger == nil {
		return nil, goerrors.New("logger is required")
	}
	if params.Calendar == nil {
		return nil, goerrors.New("calendar is required")
	}
	return &Service{
		repo: params.Repo,
		db:   params.DB,
		logg: params.Logger,
		cal:  params.Calendar,
		now:  time.Now,
	}, nil
}

// RecordView counts one listing view for the property.
func (s *Service) RecordView(ctx context.Context, propertyID uuid.UUID) error {
	return s.record(ctx, propertyID, 1, 0)
}

// RecordLead counts one delivered lead for the property.
func (s *Service) RecordLead(ctx context.Context, propertyID uuid.UUID) error {
	return s.record(ctx, propertyID, 0, 1)
}

// ReviewFigures is the running review state after an approval.
type ReviewFigures struct {
	PropertyID    uuid.UUID `json:"property_id"`
	ReviewAverage float64   `json:"review_average"`
	ReviewCount   int64     `json:"review_count"`
}

// RecordReview folds one approved review rating into the property's running
// average and bumps the review count.
func (s *Service) RecordReview(ctx context.Context, propertyID uuid.UUID, rating float64) (*ReviewFigures, error) {
	if rating < 0 || rating > 5 {
		return nil, errors.New(errors.CodeValidation, "rating must be between 0 and 5").
			WithDetails(map[string]any{"rating": rating})
	}

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.EnsureAnalysis(ctx, propertyID); err != nil {
			return err
		}
		return repo.ApplyReview(ctx, propertyID, rating)
	})
	if err != nil {
		return nil, err
	}

	average, count, err := s.repo.ReviewFigures(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"property_id":    propertyID.String(),
		"review_average": average,
		"review_count":   count,
	})
	s.logg.Info(logCtx, "review rating recorded")
	return &ReviewFigures{PropertyID: propertyID, ReviewAverage: average, ReviewCount: count}, nil
}

func (s *Service) record(ctx context.Context, propertyID uuid.UUID, views, leads int64) error {
	day := s.cal.DayOf(s.now())
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.EnsureAnalysis(ctx, propertyID); err != nil {
			return err
		}
		if err := repo.IncrementLifetime(ctx, propertyID, views, leads); err != nil {
			return err
		}
		return repo.UpsertBucket(ctx, propertyID, day, views, leads)
	})
	if err != nil {
		return err
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"property_id": propertyID.String(),
		"bucket_date": day,
		"views":       views,
		"leads":       leads,
	})
	s.logg.Info(logCtx, "engagement event recorded")
	return nil
}
