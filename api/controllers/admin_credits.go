package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/farmstayhq/farmstay-backend/api/responses"
	"github.com/farmstayhq/farmstay-backend/api/validators"
	"github.com/farmstayhq/farmstay-backend/internal/billing"
	pkgerrors "github.com/farmstayhq/farmstay-backend/pkg/errors"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
)

type topUpRequest struct {
	Amount int64 `json:"amount" validate:"required,min=1"`
}

type topUpResponse struct {
	PropertyID    uuid.UUID `json:"property_id"`
	CreditBalance int64     `json:"credit_balance"`
}

// AdminTopUpCredits credits a property's balance manually, reactivating the
// listing when the new balance clears the floor.
func AdminTopUpCredits(svc *billing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid property id"))
			return
		}
		ctx = logg.WithPropertyID(ctx, propertyID.String())

		var req topUpRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		balance, err := svc.Credit(ctx, propertyID, req.Amount)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, topUpResponse{PropertyID: propertyID, CreditBalance: balance})
	}
}
