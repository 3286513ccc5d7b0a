package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/farmstayhq/farmstay-backend/api/responses"
	"github.com/farmstayhq/farmstay-backend/api/validators"
	"github.com/farmstayhq/farmstay-backend/internal/analytics"
	pkgerrors "github.com/farmstayhq/farmstay-backend/pkg/errors"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
)

func OwnerDashboard(svc *analytics.OwnerService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid property id"))
			return
		}
		dashboard, err := svc.Dashboard(ctx, propertyID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dashboard)
	}
}

func OwnerDailySeries(svc *analytics.OwnerService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid property id"))
			return
		}
		days, err := validators.ParseQueryInt(r, "days", 0, 0, 365)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		series, err := svc.DailySeries(ctx, propertyID, days)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, series)
	}
}

func OwnerMonthReport(svc *analytics.OwnerService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid property id"))
			return
		}
		report, err := svc.MonthReport(ctx, propertyID, chi.URLParam(r, "month"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
