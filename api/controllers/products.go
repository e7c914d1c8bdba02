package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rmedina/stockroom-backend/api/responses"
	"github.com/rmedina/stockroom-backend/api/validators"
	"github.com/rmedina/stockroom-backend/internal/catalog"
	"github.com/rmedina/stockroom-backend/internal/products"
	"github.com/rmedina/stockroom-backend/pkg/enums"
	pkgerrors "github.com/rmedina/stockroom-backend/pkg/errors"
	"github.com/rmedina/stockroom-backend/pkg/logger"
	"github.com/rmedina/stockroom-backend/pkg/models"
)

// productView decorates a catalog product with its derived stock level.
type productView struct {
	models.Product
	StockLevel enums.StockLevel `json:"stockLevel"`
}

func viewOf(product models.Product) productView {
	return productView{Product: product, StockLevel: enums.StockLevelFor(product.Quantity)}
}

func viewsOf(list []models.Product) []productView {
	views := make([]productView, 0, len(list))
	for _, product := range list {
		views = append(views, viewOf(product))
	}
	return views
}

// ProductsList filters the catalog by search term and category.
func ProductsList(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		result := store.Filter(query.Get("search"), query.Get("category"))
		responses.WriteSuccess(w, viewsOf(result))
	}
}

func ProductGet(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, ok := store.Get(chi.URLParam(r, "productId"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, viewOf(product))
	}
}

func ProductCategories(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.Categories())
	}
}

// ProductCreate accepts an admin product draft and commits it through the
// pending mutation path.
func ProductCreate(svc *products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body products.Input
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, draft)
	}
}

func ProductUpdate(svc *products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body products.Input
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.Update(r.Context(), chi.URLParam(r, "productId"), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}
