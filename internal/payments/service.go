package payments

import (
	"context"
	goerrors "errors"

	"github.com/farmstayhq/farmstay-backend/internal/properties"
	"github.com/farmstayhq/farmstay-backend/pkg/db/models"
	"github.com/farmstayhq/farmstay-backend/pkg/enums"
	"github.com/farmstayhq/farmstay-backend/pkg/errors"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
	"github.com/google/uuid"
)

// creditor applies a successful top-up to the property's balance.
type creditor interface {
	Credit(ctx context.Context, propertyID uuid.UUID, amount int64) (int64, error)
}

// ServiceParams groups dependencies for the payments service.
type ServiceParams struct {
	Repo       Repository
	Properties properties.Repository
	Ledger     creditor
	Logger     *logger.Logger
}

// Service drives the top-up payment lifecycle: initiate, then settle via the
// gateway callback. Only a successful callback credits the balance.
type Service struct {
	repo   Repository
	props  properties.Repository
	ledger creditor
	logg   *logger.Logger
}

// NewService builds a payments service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, goerrors.New("repo is required")
	}
	if params.Properties == nil {
		return nil, goerrors.New("properties repo is required")
	}
	if params.Ledger == nil {
		return nil, goerrors.New("ledger is required")
	}
	if params.Logger == nil {
		return nil, goerrors.New("logger is required")
	}
	return &Service{
		repo:   params.Repo,
		props:  params.Properties,
		ledger: params.Ledger,
		logg:   params.Logger,
	}, nil
}

// Initiate opens a payment in the initiated state and returns it with the
// gateway order reference the client completes against.
func (s *Service) Initiate(ctx context.Context, propertyID uuid.UUID, amount int64) (*models.Payment, error) {
	if amount <= 0 {
		return nil, errors.New(errors.CodeValidation, "top-up amount must be positive")
	}

	property, err := s.props.FindByID(ctx, propertyID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading property")
	}
	if property == nil {
		return nil, errors.New(errors.CodeNotFound, "property not found")
	}

	payment := &models.Payment{
		ID:             uuid.New(),
		PropertyID:     propertyID,
		Amount:         amount,
		Status:         enums.PaymentStatusInitiated,
		GatewayOrderID: uuid.NewString(),
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "creating payment")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"property_id":      propertyID.String(),
		"gateway_order_id": payment.GatewayOrderID,
		"amount":           amount,
	})
	s.logg.Info(logCtx, "payment initiated")
	return payment, nil
}

// HandleCallback settles a payment from the gateway's notification. Repeated
// callbacks for an already-settled payment return the stored record without
// re-crediting.
func (s *Service) HandleCallback(ctx context.Context, gatewayOrderID, gatewayPaymentID string, success bool) (*models.Payment, error) {
	payment, err := s.repo.FindByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading payment")
	}
	if payment == nil {
		return nil, errors.New(errors.CodeNotFound, "payment not found")
	}
	if payment.Status != enums.PaymentStatusInitiated {
		return payment, nil
	}

	status := enums.PaymentStatusFailed
	if success {
		status = enums.PaymentStatusSuccess
	}
	var paymentRef *string
	if gatewayPaymentID != "" {
		paymentRef = &gatewayPaymentID
	}
	if err := s.repo.MarkStatus(ctx, payment.ID, status, paymentRef); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "updating payment status")
	}
	payment.Status = status
	payment.GatewayPaymentID = paymentRef

	if success {
		if _, err := s.ledger.Credit(ctx, payment.PropertyID, payment.Amount); err != nil {
			// The payment is settled; the credit must not be lost silently.
			s.logg.Error(ctx, "crediting settled payment", err)
			return nil, errors.Wrap(errors.CodeInternal, err, "crediting settled payment")
		}
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"gateway_order_id": gatewayOrderID,
		"status":           status.String(),
	})
	s.logg.Info(logCtx, "payment settled")
	return payment, nil
}

// History lists a property's payments, newest first.
func (s *Service) History(ctx context.Context, propertyID uuid.UUID) ([]models.Payment, error) {
	list, err := s.repo.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing payments")
	}
	return list, nil
}
