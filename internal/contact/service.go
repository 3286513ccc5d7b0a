package contact

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"time"

	"github.com/farmstayhq/farmstay-backend/internal/properties"
	"github.com/farmstayhq/farmstay-backend/pkg/enums"
	"github.com/farmstayhq/farmstay-backend/pkg/errors"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
	"github.com/google/uuid"
)

const publishTimeout = 2 * time.Second

// debiter charges one lead against the property's balance.
type debiter interface {
	DebitLeadCost(ctx context.Context, propertyID uuid.UUID) (int64, error)
}

// recorder counts engagement events.
type recorder interface {
	RecordView(ctx context.Context, propertyID uuid.UUID) error
	RecordLead(ctx context.Context, propertyID uuid.UUID) error
}

// eventPublisher hands contact events to the async pipeline. Optional.
type eventPublisher interface {
	PublishContactEvent(ctx context.Context, data []byte) error
}

// WhatsAppContact is what a successful contact request reveals.
type WhatsAppContact struct {
	Link    string `json:"whatsapp_link"`
	Balance int64  `json:"credit_balance"`
}

// ContactEvent is the payload handed to the async pipeline after a lead is
// billed and recorded.
type ContactEvent struct {
	PropertyID uuid.UUID `json:"property_id"`
	Balance    int64     `json:"balance"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ServiceParams groups dependencies for the contact service.
type ServiceParams struct {
	Properties properties.Repository
	Ledger     debiter
	Events     recorder
	Publisher  eventPublisher
	Logger     *logger.Logger
}

// Service orchestrates the public contact flow: gate on listing state, bill
// the lead, record it, then reveal the WhatsApp link.
type Service struct {
	props     properties.Repository
	ledger    debiter
	events    recorder
	publisher eventPublisher
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds a contact service. Publisher may be nil when the async
// pipeline is not configured.
func NewService(params ServiceParams) (*Service, error) {
	if params.Properties == nil {
		return nil, goerrors.New("properties repo is required")
	}
	if params.Ledger == nil {
		return nil, goerrors.New("ledger is required")
	}
	if params.Events == nil {
		return nil, goerrors.New("events recorder is required")
	}
	if params.Logger == nil {
		return nil, goerrors.New("logger is required")
	}
	return &Service{
		props:     params.Properties,
		ledger:    params.Ledger,
		events:    params.Events,
		publisher: params.Publisher,
		logg:      params.Logger,
		now:       time.Now,
	}, nil
}

// RequestWhatsApp bills one lead and returns the property's WhatsApp link.
// The caller never learns whether a refusal came from listing state or an
// exhausted balance.
func (s *Service) RequestWhatsApp(ctx context.Context, propertyID uuid.UUID) (*WhatsAppContact, error) {
	property, err := s.props.FindByID(ctx, propertyID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading property")
	}
	if property == nil {
		return nil, errors.New(errors.CodeNotFound, "property not found")
	}
	if property.Status != enums.PropertyStatusActive {
		return nil, errors.New(errors.CodeContactUnavailable, "listing is not active")
	}
	if property.WhatsappLink == nil || *property.WhatsappLink == "" {
		return nil, errors.New(errors.CodeContactUnavailable, "listing has no contact link")
	}

	balance, err := s.ledger.DebitLeadCost(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	// The lead is billed; an analytics failure must not take the contact
	// away from the guest.
	if err := s.events.RecordLead(ctx, propertyID); err != nil {
		s.logg.Error(ctx, "recording billed lead", err)
	}

	s.publishContactEvent(ctx, propertyID, balance)

	return &WhatsAppContact{Link: *property.WhatsappLink, Balance: balance}, nil
}

// RecordPropertyView counts a public listing view.
func (s *Service) RecordPropertyView(ctx context.Context, propertyID uuid.UUID) error {
	property, err := s.props.FindByID(ctx, propertyID)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "loading property")
	}
	if property == nil {
		return errors.New(errors.CodeNotFound, "property not found")
	}
	if err := s.events.RecordView(ctx, propertyID); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "recording view")
	}
	return nil
}

func (s *Service) publishContactEvent(ctx context.Context, propertyID uuid.UUID, balance int64) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(ContactEvent{
		PropertyID: propertyID,
		Balance:    balance,
		OccurredAt: s.now().UTC(),
	})
	if err != nil {
		s.logg.Error(ctx, "encoding contact event", err)
		return
	}
	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := s.publisher.PublishContactEvent(publishCtx, payload); err != nil {
		s.logg.Error(ctx, "publishing contact event", err)
	}
}
