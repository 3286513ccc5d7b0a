package contact

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"testing"

	"github.com/farmstayhq/farmstay-backend/internal/properties"
	"github.com/farmstayhq/farmstay-backend/pkg/db/models"
	"github.com/farmstayhq/farmstay-backend/pkg/enums"
	"github.com/farmstayhq/farmstay-backend/pkg/errors"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Property{}))
	return conn
}

func seedProperty(t *testing.T, conn *gorm.DB, status enums.PropertyStatus, link *string) uuid.UUID {
	t.Helper()
	property := models.Property{
		ID:           uuid.New(),
		OwnerID:      uuid.New(),
		Name:         "Lakeside Farm",
		Type:         enums.PropertyTypeFarmhouse,
		Status:       status,
		WhatsappLink: link,
	}
	require.NoError(t, conn.Create(&property).Error)
	return property.ID
}

func link(s string) *string { return &s }

type fakeLedger struct {
	balance int64
	err     error
	calls   int
}

func (f *fakeLedger) DebitLeadCost(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.balance, nil
}

type fakeRecorder struct {
	views   int
	leads   int
	leadErr error
}

func (f *fakeRecorder) RecordView(ctx context.Context, propertyID uuid.UUID) error {
	f.views++
	return nil
}

func (f *fakeRecorder) RecordLead(ctx context.Context, propertyID uuid.UUID) error {
	f.leads++
	return f.leadErr
}

type fakePublisher struct {
	payloads [][]byte
	err      error
}

func (f *fakePublisher) PublishContactEvent(ctx context.Context, data []byte) error {
	f.payloads = append(f.payloads, data)
	return f.err
}

func newTestService(t *testing.T, conn *gorm.DB, ledger *fakeLedger, rec *fakeRecorder, pub eventPublisher) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Properties: properties.NewRepository(conn),
		Ledger:     ledger,
		Events:     rec,
		Publisher:  pub,
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
	})
	require.NoError(t, err)
	return svc
}

func TestRequestWhatsAppHappyPath(t *testing.T) {
	conn := newTestDB(t)
	ledger := &fakeLedger{balance: 160}
	rec := &fakeRecorder{}
	pub := &fakePublisher{}
	svc := newTestService(t, conn, ledger, rec, pub)
	id := seedProperty(t, conn, enums.PropertyStatusActive, link("https://wa.me/911234567890"))

	got, err := svc.RequestWhatsApp(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "https://wa.me/911234567890", got.Link)
	require.Equal(t, int64(160), got.Balance)
	require.Equal(t, 1, ledger.calls)
	require.Equal(t, 1, rec.leads)

	require.Len(t, pub.payloads, 1)
	var event ContactEvent
	require.NoError(t, json.Unmarshal(pub.payloads[0], &event))
	require.Equal(t, id, event.PropertyID)
	require.Equal(t, int64(160), event.Balance)
}

func TestRequestWhatsAppInactiveListing(t *testing.T) {
	conn := newTestDB(t)
	ledger := &fakeLedger{}
	svc := newTestService(t, conn, ledger, &fakeRecorder{}, nil)
	id := seedProperty(t, conn, enums.PropertyStatusInactive, link("https://wa.me/911234567890"))

	_, err := svc.RequestWhatsApp(context.Background(), id)
	require.Error(t, err)
	require.Equal(t, errors.CodeContactUnavailable, errors.As(err).Code())
	require.Zero(t, ledger.calls, "inactive listing must not be billed")
}

func TestRequestWhatsAppMissingLink(t *testing.T) {
	conn := newTestDB(t)
	ledger := &fakeLedger{}
	svc := newTestService(t, conn, ledger, &fakeRecorder{}, nil)
	id := seedProperty(t, conn, enums.PropertyStatusActive, nil)

	_, err := svc.RequestWhatsApp(context.Background(), id)
	require.Error(t, err)
	require.Equal(t, errors.CodeContactUnavailable, errors.As(err).Code())
	require.Zero(t, ledger.calls)
}

func TestRequestWhatsAppPropagatesLedgerRefusal(t *testing.T) {
	conn := newTestDB(t)
	ledger := &fakeLedger{err: errors.New(errors.CodeContactUnavailable, "credit balance exhausted")}
	rec := &fakeRecorder{}
	svc := newTestService(t, conn, ledger, rec, nil)
	id := seedProperty(t, conn, enums.PropertyStatusActive, link("https://wa.me/911234567890"))

	_, err := svc.RequestWhatsApp(context.Background(), id)
	require.Error(t, err)
	require.Equal(t, errors.CodeContactUnavailable, errors.As(err).Code())
	require.Zero(t, rec.leads, "refused contact must not count a lead")
}

func TestRequestWhatsAppSurvivesRecorderAndPublisherFailures(t *testing.T) {
	conn := newTestDB(t)
	ledger := &fakeLedger{balance: 60}
	rec := &fakeRecorder{leadErr: goerrors.New("analytics down")}
	pub := &fakePublisher{err: goerrors.New("broker down")}
	svc := newTestService(t, conn, ledger, rec, pub)
	id := seedProperty(t, conn, enums.PropertyStatusActive, link("https://wa.me/911234567890"))

	got, err := svc.RequestWhatsApp(context.Background(), id)
	require.NoError(t, err, "billed lead must still reveal the contact")
	require.Equal(t, "https://wa.me/911234567890", got.Link)
}

func TestRecordPropertyView(t *testing.T) {
	conn := newTestDB(t)
	rec := &fakeRecorder{}
	svc := newTestService(t, conn, &fakeLedger{}, rec, nil)
	id := seedProperty(t, conn, enums.PropertyStatusActive, nil)

	require.NoError(t, svc.RecordPropertyView(context.Background(), id))
	require.Equal(t, 1, rec.views)

	err := svc.RecordPropertyView(context.Background(), uuid.New())
	require.Error(t, err)
	require.Equal(t, errors.CodeNotFound, errors.As(err).Code())
}
