package billing

import (
	"context"
	goerrors "errors"

	"github.com/farmstayhq/farmstay-backend/pkg/config"
	"github.com/farmstayhq/farmstay-backend/pkg/enums"
	"github.com/farmstayhq/farmstay-backend/pkg/errors"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
	"github.com/google/uuid"
)

// ServiceParams groups dependencies for the balance ledger.
type ServiceParams struct {
	Repo    Repository
	Logger  *logger.Logger
	Billing config.BillingConfig
}

// Service is the balance ledger: it owns every credit mutation tied to lead
// delivery and top-ups.
type Service struct {
	repo     Repository
	logg     *logger.Logger
	leadCost int64
	floor    int64
}

// NewService builds a balance ledger service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, goerrors.New("repo is required")
	}
	if params.Logger == nil {
		return nil, goerrors.New("logger is required")
	}
	if err := params.Billing.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		repo:     params.Repo,
		logg:     params.Logger,
		leadCost: params.Billing.LeadCost,
		floor:    params.Billing.MinBalanceThreshold,
	}, nil
}

// LeadCost exposes the configured per-lead debit.
func (s *Service) LeadCost() int64 {
	return s.leadCost
}

// DebitLeadCost charges one lead against the property's balance and returns
// the post-debit balance. Only active listings can be debited. A property
// already at or below the deactivation floor is flipped inactive and no debit
// happens; the same debit can itself push the balance to the floor, in which
// case the row is deactivated in the same statement but the lead is still
// delivered.
func (s *Service) DebitLeadCost(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	property, err := s.repo.FindProperty(ctx, propertyID)
	if err != nil {
		return 0, errors.Wrap(errors.CodeInternal, err, "loading property")
	}
	if property == nil || property.Status != enums.PropertyStatusActive {
		return 0, errors.New(errors.CodeNotFound, "property not found")
	}

	if property.CreditBalance < s.floor {
		if err := s.repo.Deactivate(ctx, propertyID); err != nil {
			s.logg.Error(ctx, "deactivating exhausted property", err)
		}
		return 0, errors.New(errors.CodeContactUnavailable, "credit balance exhausted")
	}

	balance, applied, err := s.repo.DebitWithFloor(ctx, propertyID, s.leadCost, s.floor)
	if err != nil {
		return 0, errors.Wrap(errors.CodeInternal, err, "debiting lead cost")
	}
	if !applied {
		// A concurrent debit crossed the floor, or the row was deactivated,
		// between the read and the guarded update.
		if err := s.repo.Deactivate(ctx, propertyID); err != nil {
			s.logg.Error(ctx, "deactivating exhausted property", err)
		}
		return 0, errors.New(errors.CodeContactUnavailable, "credit balance exhausted")
	}

	return balance, nil
}

// Credit adds a successful top-up to the balance. It never touches the
// listing status; bringing a deactivated listing back is a separate admin
// decision, not a side effect of money arriving.
func (s *Service) Credit(ctx context.Context, propertyID uuid.UUID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, errors.New(errors.CodeValidation, "credit amount must be positive")
	}

	applied, err := s.repo.Credit(ctx, propertyID, amount)
	if err != nil {
		return 0, errors.Wrap(errors.CodeInternal, err, "crediting balance")
	}
	if !applied {
		return 0, errors.New(errors.CodeNotFound, "property not found")
	}

	return s.Balance(ctx, propertyID)
}

// Balance returns the property's current credit balance.
func (s *Service) Balance(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	property, err := s.repo.FindProperty(ctx, propertyID)
	if err != nil {
		return 0, errors.Wrap(errors.CodeInternal, err, "loading property")
	}
	if property == nil {
		return 0, errors.New(errors.CodeNotFound, "property not found")
	}
	return property.CreditBalance, nil
}
