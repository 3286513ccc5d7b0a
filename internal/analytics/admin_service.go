package analytics

import (
	"context"
	goerrors "errors"
	"time"

	"github.com/farmstayhq/farmstay-backend/internal/properties"
	"github.com/farmstayhq/farmstay-backend/pkg/calendar"
	"github.com/farmstayhq/farmstay-backend/pkg/enums"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdminOverview is the platform-wide dashboard block. Sections that fail to
// load degrade to zero values rather than failing the whole response.
type AdminOverview struct {
	FarmhouseCount     int64           `json:"farmhouse_count"`
	BnbCount           int64           `json:"bnb_count"`
	TotalProperties    int64           `json:"total_properties"`
	CurrentMonth       MonthTotals     `json:"current_month"`
	CurrentMonthIncome decimal.Decimal `json:"current_month_income"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalRecharged     decimal.Decimal `json:"total_recharged"`
	OutstandingCredits int64           `json:"outstanding_credits"`
	MonthlyTrend       []TrendPoint    `json:"monthly_trend"`
	TopProperties      []TopProperty   `json:"top_properties"`
}

// MonthTotals is a live month-to-date engagement pair.
type MonthTotals struct {
	Month string `json:"month"`
	Views int64  `json:"views"`
	Leads int64  `json:"leads"`
}

// TrendPoint is one closed month of platform figures.
type TrendPoint struct {
	Month           string          `json:"month"`
	FarmhouseCount  int64           `json:"farmhouse_count"`
	BnbCount        int64           `json:"bnb_count"`
	TotalProperties int64           `json:"total_properties"`
	NewProperties   int64           `json:"new_properties"`
	Revenue         decimal.Decimal `json:"revenue"`
	TotalViews      int64           `json:"total_views"`
	TotalLeads      int64           `json:"total_leads"`
}

// TopProperty is one leaderboard slot from the last closed month.
type TopProperty struct {
	Rank         int       `json:"rank"`
	PropertyID   uuid.UUID `json:"property_id"`
	PropertyName string    `json:"property_name"`
	Views        int64     `json:"views"`
	Leads        int64     `json:"leads"`
}

// AdminServiceParams groups dependencies for the admin analytics service.
type AdminServiceParams struct {
	Repo       Repository
	Properties properties.Repository
	Logger     *logger.Logger
	Calendar   *calendar.Calendar
	TrendDepth int
	LeadCost   int64
}

// AdminService serves platform-wide aggregates to the admin dashboard.
type AdminService struct {
	repo       Repository
	props      properties.Repository
	logg       *logger.Logger
	cal        *calendar.Calendar
	trendDepth int
	leadCost   int64
	now        func() time.Time
}

const defaultTrendDepth = 6

// NewAdminService builds the admin analytics service.
func NewAdminService(params AdminServiceParams) (*AdminService, error) {
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
	if params.LeadCost <= 0 {
		return nil, goerrors.New("lead cost must be positive")
	}
	trendDepth := params.TrendDepth
	if trendDepth <= 0 {
		trendDepth = defaultTrendDepth
	}
	return &AdminService{
		repo:       params.Repo,
		props:      params.Properties,
		logg:       params.Logger,
		cal:        params.Calendar,
		trendDepth: trendDepth,
		leadCost:   params.LeadCost,
		now:        time.Now,
	}, nil
}

// Overview assembles the admin dashboard. Each section that errors is logged
// and reported as zeros so one broken aggregate never blanks the dashboard.
func (s *AdminService) Overview(ctx context.Context) (*AdminOverview, error) {
	overview := &AdminOverview{
		CurrentMonthIncome: decimal.Zero,
		TotalRevenue:       decimal.Zero,
		TotalRecharged:     decimal.Zero,
		MonthlyTrend:       []TrendPoint{},
		TopProperties:      []TopProperty{},
	}
	now := s.now()
	month := s.cal.MonthOf(now)
	overview.CurrentMonth.Month = month

	if count, err := s.props.CountByType(ctx, enums.PropertyTypeFarmhouse); err != nil {
		s.logg.Error(ctx, "counting farmhouses", err)
	} else {
		overview.FarmhouseCount = count
	}
	if count, err := s.props.CountByType(ctx, enums.PropertyTypeBnB); err != nil {
		s.logg.Error(ctx, "counting bnbs", err)
	} else {
		overview.BnbCount = count
	}
	if count, err := s.props.CountAll(ctx); err != nil {
		s.logg.Error(ctx, "counting properties", err)
	} else {
		overview.TotalProperties = count
	}

	if from, to, err := calendar.MonthRange(month); err != nil {
		s.logg.Error(ctx, "resolving current month range", err)
	} else if views, leads, err := s.repo.SumAllBucketsBetween(ctx, from, to); err != nil {
		s.logg.Error(ctx, "summing current month buckets", err)
	} else {
		overview.CurrentMonth.Views = views
		overview.CurrentMonth.Leads = leads
	}

	if income, err := s.repo.SumSuccessfulPayments(ctx, monthStart(now, s.cal), now); err != nil {
		s.logg.Error(ctx, "summing current month income", err)
	} else {
		overview.CurrentMonthIncome = income
	}

	// Revenue is priced from delivered leads; recharges and credits left are
	// shown beside it so the two figures can be reconciled.
	if _, leads, err := s.repo.SumLifetimeTotals(ctx); err != nil {
		s.logg.Error(ctx, "summing lifetime leads", err)
	} else {
		overview.TotalRevenue = decimal.NewFromInt(leads).Mul(decimal.NewFromInt(s.leadCost))
	}
	if recharged, err := s.repo.SumAllRecharged(ctx); err != nil {
		s.logg.Error(ctx, "summing recharges", err)
	} else {
		overview.TotalRecharged = recharged
	}

	if credits, err := s.repo.SumOutstandingCredits(ctx); err != nil {
		s.logg.Error(ctx, "summing outstanding credits", err)
	} else {
		overview.OutstandingCredits = credits
	}

	if stats, err := s.repo.ListPlatformStats(ctx, s.trendDepth); err != nil {
		s.logg.Error(ctx, "listing platform stats", err)
	} else {
		for _, stat := range stats {
			overview.MonthlyTrend = append(overview.MonthlyTrend, TrendPoint{
				Month:           stat.Month,
				FarmhouseCount:  stat.FarmhouseCount,
				BnbCount:        stat.BnbCount,
				TotalProperties: stat.TotalProperties,
				NewProperties:   stat.NewProperties,
				Revenue:         stat.Revenue,
				TotalViews:      stat.TotalViews,
				TotalLeads:      stat.TotalLeads,
			})
		}
	}

	lastMonth := s.cal.PreviousMonthOf(now)
	if entries, err := s.repo.ListTopEntries(ctx, lastMonth); err != nil {
		s.logg.Error(ctx, "listing top properties", err)
	} else {
		for _, entry := range entries {
			overview.TopProperties = append(overview.TopProperties, TopProperty{
				Rank:         entry.Rank,
				PropertyID:   entry.PropertyID,
				PropertyName: entry.PropertyName,
				Views:        entry.Views,
				Leads:        entry.Leads,
			})
		}
	}

	return overview, nil
}

// CurrentMonth returns the live month-to-date engagement totals.
func (s *AdminService) CurrentMonth(ctx context.Context) (*MonthTotals, error) {
	month := s.cal.MonthOf(s.now())
	from, to, err := calendar.MonthRange(month)
	if err != nil {
		return nil, err
	}
	views, leads, err := s.repo.SumAllBucketsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &MonthTotals{Month: month, Views: views, Leads: leads}, nil
}

// Trend returns the last closed months of platform figures, oldest first.
func (s *AdminService) Trend(ctx context.Context) ([]TrendPoint, error) {
	stats, err := s.repo.ListPlatformStats(ctx, s.trendDepth)
	if err != nil {
		return nil, err
	}
	trend := make([]TrendPoint, 0, len(stats))
	for _, stat := range stats {
		trend = append(trend, TrendPoint{
			Month:           stat.Month,
			FarmhouseCount:  stat.FarmhouseCount,
			BnbCount:        stat.BnbCount,
			TotalProperties: stat.TotalProperties,
			NewProperties:   stat.NewProperties,
			Revenue:         stat.Revenue,
			TotalViews:      stat.TotalViews,
			TotalLeads:      stat.TotalLeads,
		})
	}
	return trend, nil
}

// TopProperties returns the cached leaderboard of the last closed month.
func (s *AdminService) TopProperties(ctx context.Context) ([]TopProperty, error) {
	month := s.cal.PreviousMonthOf(s.now())
	entries, err := s.repo.ListTopEntries(ctx, month)
	if err != nil {
		return nil, err
	}
	top := make([]TopProperty, 0, len(entries))
	for _, entry := range entries {
		top = append(top, TopProperty{
			Rank:         entry.Rank,
			PropertyID:   entry.PropertyID,
			PropertyName: entry.PropertyName,
			Views:        entry.Views,
			Leads:        entry.Leads,
		})
	}
	return top, nil
}

func monthStart(now time.Time, cal *calendar.Calendar) time.Time {
	local := now.In(cal.Location())
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, cal.Location())
}
