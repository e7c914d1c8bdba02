package controllers

import (
	"net/http"

	"github.com/rmedina/stockroom-backend/api/responses"
	"github.com/rmedina/stockroom-backend/api/validators"
	"github.com/rmedina/stockroom-backend/internal/checkout"
	"github.com/rmedina/stockroom-backend/pkg/logger"
)

type checkoutRequest struct {
	ShippingAddress string `json:"shippingAddress" validate:"required"`
}

// Checkout places an order from the current cart.
func Checkout(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), body.ShippingAddress)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
