package controllers

import (
	"net/http"

	"github.com/farmstayhq/farmstay-backend/api/responses"
	"github.com/farmstayhq/farmstay-backend/internal/analytics"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
)

func AdminAnalyticsOverview(svc *analytics.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview, err := svc.Overview(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}

func AdminCurrentMonth(svc *analytics.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totals, err := svc.CurrentMonth(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, totals)
	}
}

func AdminTrend(svc *analytics.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trend, err := svc.Trend(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, trend)
	}
}

func AdminTopProperties(svc *analytics.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		top, err := svc.TopProperties(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, top)
	}
}
