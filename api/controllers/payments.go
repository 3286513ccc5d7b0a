package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/farmstayhq/farmstay-backend/api/responses"
	"github.com/farmstayhq/farmstay-backend/api/validators"
	"github.com/farmstayhq/farmstay-backend/internal/payments"
	"github.com/farmstayhq/farmstay-backend/pkg/enums"
	pkgerrors "github.com/farmstayhq/farmstay-backend/pkg/errors"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
)

type paymentInitiateRequest struct {
	Amount int64 `json:"amount" validate:"required,min=1"`
}

type paymentCallbackRequest struct {
	GatewayOrderID   string `json:"gateway_order_id" validate:"required"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Status           string `json:"status" validate:"required,oneof=success failed"`
}

func PaymentInitiate(svc *payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid property id"))
			return
		}
		ctx = logg.WithPropertyID(ctx, propertyID.String())

		var req paymentInitiateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payment, err := svc.Initiate(ctx, propertyID, req.Amount)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

func PaymentCallback(svc *payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req paymentCallbackRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		success := req.Status == string(enums.PaymentStatusSuccess)
		payment, err := svc.HandleCallback(ctx, req.GatewayOrderID, req.GatewayPaymentID, success)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, payment)
	}
}

func PaymentHistory(svc *payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid property id"))
			return
		}
		history, err := svc.History(ctx, propertyID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}
