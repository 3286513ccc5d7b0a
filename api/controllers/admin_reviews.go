package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/farmstayhq/farmstay-backend/api/responses"
	"github.com/farmstayhq/farmstay-backend/api/validators"
	"github.com/farmstayhq/farmstay-backend/internal/events"
	pkgerrors "github.com/farmstayhq/farmstay-backend/pkg/errors"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
)

type approveReviewRequest struct {
	Rating float64 `json:"rating" validate:"gte=0,lte=5"`
}

// AdminApproveReview folds an approved review rating into the property's
// running average.
func AdminApproveReview(svc *events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid property id"))
			return
		}
		ctx = logg.WithPropertyID(ctx, propertyID.String())

		var req approveReviewRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		figures, err := svc.RecordReview(ctx, propertyID, req.Rating)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, figures)
	}
}
