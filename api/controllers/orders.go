package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rmedina/stockroom-backend/api/middleware"
	"github.com/rmedina/stockroom-backend/api/responses"
	"github.com/rmedina/stockroom-backend/api/validators"
	"github.com/rmedina/stockroom-backend/internal/orders"
	"github.com/rmedina/stockroom-backend/pkg/enums"
	pkgerrors "github.com/rmedina/stockroom-backend/pkg/errors"
	"github.com/rmedina/stockroom-backend/pkg/logger"
)

func callerScope(r *http.Request) (isAdmin bool, userID string) {
	ctx := r.Context()
	return middleware.RoleFromContext(ctx) == string(enums.RoleAdmin), middleware.UserIDFromContext(ctx)
}

// OrdersList returns the caller's slice of the order book, optionally
// narrowed by an ID search term and a status.
func OrdersList(book *orders.Book, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		var status enums.OrderStatus
		if raw := query.Get("status"); raw != "" {
			parsed, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			status = parsed
		}

		isAdmin, userID := callerScope(r)
		scoped := orders.ScopeForUser(book.List(), isAdmin, userID)
		responses.WriteSuccess(w, orders.Filter(scoped, query.Get("search"), status))
	}
}

// OrderGet returns one order. Non-admin callers can only see their own;
// anything else reads as not found.
func OrderGet(book *orders.Book, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, ok := book.Get(chi.URLParam(r, "orderId"))
		if ok {
			isAdmin, userID := callerScope(r)
			if !isAdmin && order.UserID != userID {
				ok = false
			}
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}
		responses.WriteSuccess(w, order)
	}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderUpdateStatus moves an order to any valid status.
func OrderUpdateStatus(book *orders.Book, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body updateStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status"))
			return
		}

		updated, err := book.SetStatus(r.Context(), chi.URLParam(r, "orderId"), status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}
