package analytics

import (
	"context"
	goerrors "errors"
	"time"

	"github.com/farmstayhq/farmstay-backend/internal/properties"
	"github.com/farmstayhq/farmstay-backend/pkg/calendar"
	"github.com/farmstayhq/farmstay-backend/pkg/errors"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultSeriesDays = 30
	maxSeriesDays     = 90
)

// OwnerDashboard is the headline KPI block for one property.
type OwnerDashboard struct {
	PropertyID       uuid.UUID       `json:"property_id"`
	Status           string          `json:"status"`
	CreditBalance    int64           `json:"credit_balance"`
	TotalRecharged   decimal.Decimal `json:"total_recharged"`
	TotalViews       int64           `json:"total_views"`
	TotalLeads       int64           `json:"total_leads"`
	ReviewAverage    float64         `json:"review_average"`
	LeadsLast7Days   int64           `json:"leads_last_7_days"`
	LeadsLast30Days  int64           `json:"leads_last_30_days"`
	LeadsLast365Days int64           `json:"leads_last_365_days"`
}

// DailyPoint is one day of the owner's engagement series. Days without a
// bucket are zero-filled so the series always has one point per day.
type DailyPoint struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Views   int64  `json:"views"`
	Leads   int64  `json:"leads"`
}

// MonthReport is one month of engagement for a property. Closed months are
// served from the rolled-up summary; the running month from live buckets.
type MonthReport struct {
	PropertyID uuid.UUID `json:"property_id"`
	Month      string    `json:"month"`
	Views      int64     `json:"views"`
	Leads      int64     `json:"leads"`
	Source     string    `json:"source"`
}

// Report sources.
const (
	MonthSourceLive    = "live"
	MonthSourceSummary = "summary"
	MonthSourceEmpty   = "empty"
)

// OwnerServiceParams groups dependencies for the owner analytics service.
type OwnerServiceParams struct {
	Repo       Repository
	Properties properties.Repository
	Logger     *logger.Logger
	Calendar   *calendar.Calendar
}

// OwnerService serves per-property aggregates to property owners.
type OwnerService struct {
	repo  Repository
	props properties.Repository
	logg  *logger.Logger
	cal   *calendar.Calendar
	now   func() time.Time
}

// NewOwnerService builds the owner analytics service.
func NewOwnerService(params OwnerServiceParams) (*OwnerService, error) {
	if params.Repo == nil {
		return nil, goerrors.New("repo is required")
	}
	if params.Properties == nil {
		return nil, goerrors.New("properties repo is required")
	}
	if params.Logger == nil {
		return nil, goerrors.New("logger is required")
	}
	if params.Calendar == nil {
		return nil, goerrors.New("calendar is required")
	}
	return &OwnerService{
		repo:  params.Repo,
		props: params.Properties,
		logg:  params.Logger,
		cal:   params.Calendar,
		now:   time.Now,
	}, nil
}

// Dashboard assembles the owner KPI block for one property.
func (s *OwnerService) Dashboard(ctx context.Context, propertyID uuid.UUID) (*OwnerDashboard, error) {
	property, err := s.props.FindByID(ctx, propertyID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading property")
	}
	if property == nil {
		return nil, errors.New(errors.CodeNotFound, "property not found")
	}

	dashboard := &OwnerDashboard{
		PropertyID:     propertyID,
		Status:         property.Status.String(),
		CreditBalance:  property.CreditBalance,
		TotalRecharged: decimal.Zero,
	}

	analysis, err := s.repo.FindAnalysis(ctx, propertyID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading analysis")
	}
	if analysis != nil {
		dashboard.TotalViews = analysis.TotalViews
		dashboard.TotalLeads = analysis.TotalLeads
		dashboard.ReviewAverage = analysis.ReviewAverage
	}

	now := s.now()
	if leads, err := s.repo.SumLeadsSince(ctx, propertyID, s.cal.DaysBefore(now, 6)); err != nil {
		s.logg.Error(ctx, "summing 7-day leads", err)
	} else {
		dashboard.LeadsLast7Days = leads
	}
	if leads, err := s.repo.SumLeadsSince(ctx, propertyID, s.cal.DaysBefore(now, 29)); err != nil {
		s.logg.Error(ctx, "summing 30-day leads", err)
	} else {
		dashboard.LeadsLast30Days = leads
	}
	if leads, err := s.repo.SumLeadsSince(ctx, propertyID, s.cal.DaysBefore(now, 364)); err != nil {
		s.logg.Error(ctx, "summing 365-day leads", err)
	} else {
		dashboard.LeadsLast365Days = leads
	}

	if recharged, err := s.repo.SumRechargedByProperty(ctx, propertyID); err != nil {
		s.logg.Error(ctx, "summing recharges", err)
	} else {
		dashboard.TotalRecharged = recharged
	}

	return dashboard, nil
}

// DailySeries returns the last N days of engagement, oldest first, one point
// per day.
func (s *OwnerService) DailySeries(ctx context.Context, propertyID uuid.UUID, days int) ([]DailyPoint, error) {
	if days <= 0 {
		days = defaultSeriesDays
	}
	if days > maxSeriesDays {
		return nil, errors.New(errors.CodeValidation, "series window too large").
			WithDetails(map[string]any{"max_days": maxSeriesDays})
	}

	property, err := s.props.FindByID(ctx, propertyID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading property")
	}
	if property == nil {
		return nil, errors.New(errors.CodeNotFound, "property not found")
	}

	now := s.now()
	from := s.cal.DaysBefore(now, days-1)
	to := s.cal.DayOf(now)

	buckets, err := s.repo.ListBucketsBetween(ctx, propertyID, from, to)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading buckets")
	}
	byDate := make(map[string]struct{ views, leads int64 }, len(buckets))
	for _, bucket := range buckets {
		byDate[bucket.BucketDate] = struct{ views, leads int64 }{bucket.Views, bucket.Leads}
	}

	series := make([]DailyPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := s.cal.DaysBefore(now, i)
		weekday, err := calendar.WeekdayLabel(date)
		if err != nil {
			return nil, errors.Wrap(errors.CodeInternal, err, "labelling series point")
		}
		point := DailyPoint{Date: date, Weekday: weekday}
		if totals, ok := byDate[date]; ok {
			point.Views = totals.views
			point.Leads = totals.leads
		}
		series = append(series, point)
	}
	return series, nil
}

// MonthReport returns one month of engagement. Closed months prefer the
// rolled-up summary and fall back to live buckets when the rollup has not run
// yet; a month with neither reads as zeros.
func (s *OwnerService) MonthReport(ctx context.Context, propertyID uuid.UUID, month string) (*MonthReport, error) {
	from, to, err := calendar.MonthRange(month)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, "invalid month, expected YYYY-MM")
	}

	property, err := s.props.FindByID(ctx, propertyID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading property")
	}
	if property == nil {
		return nil, errors.New(errors.CodeNotFound, "property not found")
	}

	report := &MonthReport{PropertyID: propertyID, Month: month, Source: MonthSourceEmpty}

	if month != s.cal.MonthOf(s.now()) {
		summary, err := s.repo.FindMonthlySummary(ctx, propertyID, month)
		if err != nil {
			return nil, errors.Wrap(errors.CodeInternal, err, "loading monthly summary")
		}
		if summary != nil {
			report.Views = summary.Views
			report.Leads = summary.Leads
			report.Source = MonthSourceSummary
			return report, nil
		}
	}

	views, leads, err := s.repo.SumBucketsBetween(ctx, propertyID, from, to)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "summing buckets")
	}
	if views > 0 || leads > 0 {
		report.Views = views
		report.Leads = leads
		report.Source = MonthSourceLive
	}
	return report, nil
}
