package cron

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/farmstayhq/farmstay-backend/internal/analytics"
	"github.com/farmstayhq/farmstay-backend/internal/properties"
	"github.com/farmstayhq/farmstay-backend/pkg/calendar"
	"github.com/farmstayhq/farmstay-backend/pkg/db/models"
	"github.com/farmstayhq/farmstay-backend/pkg/enums"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
	"github.com/farmstayhq/farmstay-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

const (
	defaultTopN               = 5
	defaultPerPropertyTimeout = 30 * time.Second

	outcomeRolledUp = "rolled_up"
	outcomeFailed   = "failed"
)

// revenueSummer reports successful top-up revenue inside a time range.
type revenueSummer interface {
	SumSuccessfulPayments(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

// MonthlyRollupJobParams configure the rollup job.
type MonthlyRollupJobParams struct {
	Logger             *logger.Logger
	DB                 txRunner
	Rollup             analytics.RollupRepository
	Properties         properties.Repository
	Revenue            revenueSummer
	Calendar           *calendar.Calendar
	Metrics            *metrics.CronJobMetrics
	TopN               int
	PerPropertyTimeout time.Duration
}

// NewMonthlyRollupJob builds the job that condenses the previous month's
// daily buckets into per-property summaries and platform statistics.
func NewMonthlyRollupJob(params MonthlyRollupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Rollup == nil {
		return nil, fmt.Errorf("rollup repository required")
	}
	if params.Properties == nil {
		return nil, fmt.Errorf("properties repository required")
	}
	if params.Revenue == nil {
		return nil, fmt.Errorf("revenue summer required")
	}
	if params.Calendar == nil {
		return nil, fmt.Errorf("calendar required")
	}
	topN := params.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	timeout := params.PerPropertyTimeout
	if timeout <= 0 {
		timeout = defaultPerPropertyTimeout
	}
	return &monthlyRollupJob{
		logg:       params.Logger,
		db:         params.DB,
		rollup:     params.Rollup,
		props:      params.Properties,
		revenue:    params.Revenue,
		cal:        params.Calendar,
		metrics:    params.Metrics,
		topN:       topN,
		perTimeout: timeout,
		now:        time.Now,
	}, nil
}

type monthlyRollupJob struct {
	logg       *logger.Logger
	db         txRunner
	rollup     analytics.RollupRepository
	props      properties.Repository
	revenue    revenueSummer
	cal        *calendar.Calendar
	metrics    *metrics.CronJobMetrics
	topN       int
	perTimeout time.Duration
	now        func() time.Time
}

func (j *monthlyRollupJob) Name() string { return "monthly-rollup" }

func (j *monthlyRollupJob) Run(ctx context.Context) error {
	now := j.now()
	month := j.cal.PreviousMonthOf(now)
	from, to, err := calendar.MonthRange(month)
	if err != nil {
		return fmt.Errorf("resolving rollup month: %w", err)
	}
	logCtx := j.logg.WithField(ctx, "month", month)

	totals, err := j.rollup.ListPropertyTotals(ctx, from, to)
	if err != nil {
		return fmt.Errorf("listing property totals: %w", err)
	}

	if len(totals) == 0 {
		existing, err := j.rollup.FindPlatformStat(ctx, month)
		if err != nil {
			return fmt.Errorf("checking platform stat: %w", err)
		}
		if existing != nil {
			j.logg.Info(logCtx, "month already rolled up; nothing to do")
			return nil
		}
	}

	if err := j.writePlatformStat(ctx, month, totals); err != nil {
		return fmt.Errorf("writing platform stat: %w", err)
	}

	if len(totals) > 0 {
		if err := j.writeLeaderboard(ctx, month, totals); err != nil {
			// The leaderboard is a cache; per-property rollup still has to run.
			j.logg.Error(logCtx, "writing leaderboard", err)
		}
	}

	var errs error
	rolledUp := 0
	for _, entry := range totals {
		if err := j.rollupProperty(ctx, month, from, to, entry); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("property %s: %w", entry.PropertyID, err))
			j.metrics.AddProcessed(j.Name(), outcomeFailed, 1)
			j.logg.Error(j.logg.WithPropertyID(logCtx, entry.PropertyID.String()), "property rollup failed", err)
			continue
		}
		rolledUp++
		j.metrics.AddProcessed(j.Name(), outcomeRolledUp, 1)
	}

	doneCtx := j.logg.WithFields(logCtx, map[string]any{
		"properties_total":     len(totals),
		"properties_rolled_up": rolledUp,
	})
	j.logg.Info(doneCtx, "monthly rollup complete")
	return errs
}

// writePlatformStat writes the closed month's platform figures. Every field
// is recomputed and overwritten, so a re-run after a partial failure
// converges on the true totals instead of double-counting.
func (j *monthlyRollupJob) writePlatformStat(ctx context.Context, month string, totals []analytics.PropertyMonthTotals) error {
	farmhouses, err := j.props.CountByType(ctx, enums.PropertyTypeFarmhouse)
	if err != nil {
		return err
	}
	bnbs, err := j.props.CountByType(ctx, enums.PropertyTypeBnB)
	if err != nil {
		return err
	}
	total, err := j.props.CountAll(ctx)
	if err != nil {
		return err
	}

	monthStart, err := time.ParseInLocation(calendar.MonthLayout, month, j.cal.Location())
	if err != nil {
		return err
	}
	revenue, err := j.revenue.SumSuccessfulPayments(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return err
	}
	newProps, err := j.props.CountCreatedBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return err
	}

	// What is still in the buckets plus what earlier runs already condensed
	// into summaries. Properties whose rollup failed last time keep their
	// buckets, so they are counted exactly once here.
	views, leads, err := j.rollup.SumSummariesInMonth(ctx, month)
	if err != nil {
		return err
	}
	for _, entry := range totals {
		views += entry.Views
		leads += entry.Leads
	}

	return j.rollup.UpsertPlatformStat(ctx, &models.PlatformMonthlyStat{
		ID:              uuid.New(),
		Month:           month,
		FarmhouseCount:  farmhouses,
		BnbCount:        bnbs,
		TotalProperties: total,
		NewProperties:   newProps,
		Revenue:         revenue,
		TotalViews:      views,
		TotalLeads:      leads,
	})
}

// writeLeaderboard replaces the month's cached top-properties list. Ordering
// is leads, then views, then property id so equal months rank the same way
// on every run.
func (j *monthlyRollupJob) writeLeaderboard(ctx context.Context, month string, totals []analytics.PropertyMonthTotals) error {
	ranked := make([]analytics.PropertyMonthTotals, len(totals))
	copy(ranked, totals)
	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].Leads != ranked[b].Leads {
			return ranked[a].Leads > ranked[b].Leads
		}
		if ranked[a].Views != ranked[b].Views {
			return ranked[a].Views > ranked[b].Views
		}
		return ranked[a].PropertyID.String() < ranked[b].PropertyID.String()
	})
	if len(ranked) > j.topN {
		ranked = ranked[:j.topN]
	}

	ids := make([]uuid.UUID, 0, len(ranked))
	for _, entry := range ranked {
		ids = append(ids, entry.PropertyID)
	}
	names, err := j.props.NamesByIDs(ctx, ids)
	if err != nil {
		return err
	}

	entries := make([]models.TopPropertyEntry, 0, len(ranked))
	for i, entry := range ranked {
		entries = append(entries, models.TopPropertyEntry{
			ID:           uuid.New(),
			Month:        month,
			Rank:         i + 1,
			PropertyID:   entry.PropertyID,
			PropertyName: names[entry.PropertyID],
			Views:        entry.Views,
			Leads:        entry.Leads,
		})
	}

	return j.db.WithTx(ctx, func(tx *gorm.DB) error {
		return j.rollup.WithTx(tx).ReplaceTopEntries(ctx, month, entries)
	})
}

// rollupProperty condenses one property's month into its summary row and
// removes the consumed buckets in the same transaction.
func (j *monthlyRollupJob) rollupProperty(ctx context.Context, month, from, to string, entry analytics.PropertyMonthTotals) error {
	propCtx, cancel := context.WithTimeout(ctx, j.perTimeout)
	defer cancel()

	return j.db.WithTx(propCtx, func(tx *gorm.DB) error {
		repo := j.rollup.WithTx(tx)
		if err := repo.UpsertMonthlySummary(propCtx, entry.PropertyID, month, entry.Views, entry.Leads); err != nil {
			return err
		}
		_, err := repo.DeleteBucketsBetween(propCtx, entry.PropertyID, from, to)
		return err
	})
}
