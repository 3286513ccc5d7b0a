package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/farmstayhq/farmstay-backend/api/controllers"
	"github.com/farmstayhq/farmstay-backend/api/middleware"
	"github.com/farmstayhq/farmstay-backend/internal/analytics"
	"github.com/farmstayhq/farmstay-backend/internal/billing"
	"github.com/farmstayhq/farmstay-backend/internal/contact"
	"github.com/farmstayhq/farmstay-backend/internal/events"
	"github.com/farmstayhq/farmstay-backend/internal/payments"
	"github.com/farmstayhq/farmstay-backend/internal/properties"
	"github.com/farmstayhq/farmstay-backend/pkg/config"
	"github.com/farmstayhq/farmstay-backend/pkg/db"
	"github.com/farmstayhq/farmstay-backend/pkg/enums"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
	"github.com/farmstayhq/farmstay-backend/pkg/redis"
)

// RouterParams carries everything the HTTP surface depends on.
type RouterParams struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            db.Pinger
	Redis         *redis.Client
	Properties    properties.Repository
	Contact       *contact.Service
	Events        *events.Service
	Billing       *billing.Service
	Payments      *payments.Service
	OwnerReports  *analytics.OwnerService
	AdminAnalytic *analytics.AdminService
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessDeps(p)))
	})

	// Public website surface, legacy envelope.
	r.Post("/contact-whatsapp/{propertyID}", controllers.ContactWhatsApp(p.Contact, logg))
	r.Post("/property-detail/{propertyID}", controllers.PropertyDetail(p.Contact, p.Properties, logg))

	// Payment gateway callback authenticates by gateway order id, not JWT.
	r.Post("/api/v1/payments/callback", controllers.PaymentCallback(p.Payments, logg))

	r.Route("/api/v1/payments/{propertyID}", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.PropertyScope(p.Properties, logg))
		r.Post("/initiate", controllers.PaymentInitiate(p.Payments, logg))
		r.Get("/", controllers.PaymentHistory(p.Payments, logg))
	})

	r.Route("/api/owner/v1/dashboard/{propertyID}", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.PropertyScope(p.Properties, logg))
		r.Get("/", controllers.OwnerDashboard(p.OwnerReports, logg))
		r.Get("/daily-series", controllers.OwnerDailySeries(p.OwnerReports, logg))
		r.Get("/month/{month}", controllers.OwnerMonthReport(p.OwnerReports, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(enums.ActorRoleAdmin), logg))
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/overview", controllers.AdminAnalyticsOverview(p.AdminAnalytic, logg))
			r.Get("/current-month", controllers.AdminCurrentMonth(p.AdminAnalytic, logg))
			r.Get("/trend", controllers.AdminTrend(p.AdminAnalytic, logg))
			r.Get("/top-properties", controllers.AdminTopProperties(p.AdminAnalytic, logg))
		})
		r.Post("/properties/{propertyID}/credits", controllers.AdminTopUpCredits(p.Billing, logg))
		r.Post("/properties/{propertyID}/reviews", controllers.AdminApproveReview(p.Events, logg))
	})

	return r
}

func readinessDeps(p RouterParams) map[string]controllers.Pinger {
	deps := map[string]controllers.Pinger{}
	if p.DB != nil {
		deps["database"] = p.DB
	}
	if p.Redis != nil {
		deps["redis"] = p.Redis
	}
	return deps
}
