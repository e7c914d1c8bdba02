package controllers

import (
	"net/http"

	"github.com/rmedina/stockroom-backend/api/responses"
	"github.com/rmedina/stockroom-backend/internal/dashboard"
)

// Dashboard returns the admin overview snapshot.
func Dashboard(svc *dashboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Stats())
	}
}
