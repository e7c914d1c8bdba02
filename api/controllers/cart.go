package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rmedina/stockroom-backend/api/responses"
	"github.com/rmedina/stockroom-backend/api/validators"
	"github.com/rmedina/stockroom-backend/internal/cart"
	pkgerrors "github.com/rmedina/stockroom-backend/pkg/errors"
	"github.com/rmedina/stockroom-backend/pkg/logger"
)

type cartView struct {
	Items      []cart.ResolvedItem `json:"items"`
	TotalItems int                 `json:"totalItems"`
	TotalPrice decimal.Decimal     `json:"totalPrice"`
}

func cartViewOf(store *cart.Store) cartView {
	return cartView{
		Items:      store.WithProducts(),
		TotalItems: store.TotalItems(),
		TotalPrice: store.TotalPrice(),
	}
}

// CartGet returns the resolved cart with totals.
func CartGet(store *cart.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cartViewOf(store))
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

func CartAddItem(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body addItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.Add(r.Context(), body.ProductID, body.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartViewOf(store))
	}
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartUpdateItem replaces the quantity of one entry. Zero or below removes
// the entry; an unknown entry is left alone.
func CartUpdateItem(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body updateItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.UpdateQuantity(r.Context(), chi.URLParam(r, "productId"), body.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartViewOf(store))
	}
}

func CartRemoveItem(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Remove(r.Context(), chi.URLParam(r, "productId")); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting cart"))
			return
		}
		responses.WriteSuccess(w, cartViewOf(store))
	}
}

func CartClear(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting cart"))
			return
		}
		responses.WriteSuccess(w, cartViewOf(store))
	}
}
