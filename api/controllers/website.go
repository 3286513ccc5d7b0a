package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/farmstayhq/farmstay-backend/api/responses"
	"github.com/farmstayhq/farmstay-backend/internal/contact"
	"github.com/farmstayhq/farmstay-backend/internal/properties"
	pkgerrors "github.com/farmstayhq/farmstay-backend/pkg/errors"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
)

// ContactWhatsApp bills one lead and reveals the listing's WhatsApp link in
// the legacy website envelope.
func ContactWhatsApp(svc *contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
		if err != nil {
			responses.WriteWebsiteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid property id"))
			return
		}
		ctx = logg.WithPropertyID(ctx, propertyID.String())

		result, err := svc.RequestWhatsApp(ctx, propertyID)
		if err != nil {
			responses.WriteWebsiteError(ctx, logg, w, err)
			return
		}
		responses.WriteWebsiteSuccess(w, result)
	}
}

type propertyDetail struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	City          string    `json:"city"`
	PricePerNight int64     `json:"price_per_night"`
}

// PropertyDetail records a public listing view and returns the listing data
// the website renders.
func PropertyDetail(svc *contact.Service, props properties.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
		if err != nil {
			responses.WriteWebsiteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid property id"))
			return
		}
		ctx = logg.WithPropertyID(ctx, propertyID.String())

		if err := svc.RecordPropertyView(ctx, propertyID); err != nil {
			responses.WriteWebsiteError(ctx, logg, w, err)
			return
		}

		property, err := props.FindByID(ctx, propertyID)
		if err != nil {
			responses.WriteWebsiteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading property"))
			return
		}
		if property == nil {
			responses.WriteWebsiteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "property not found"))
			return
		}

		responses.WriteWebsiteSuccess(w, propertyDetail{
			ID:            property.ID,
			Name:          property.Name,
			Type:          string(property.Type),
			City:          property.City,
			PricePerNight: property.PricePerNight,
		})
	}
}
