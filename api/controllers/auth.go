package controllers

import (
	"net/http"
	"time"

	"github.com/rmedina/stockroom-backend/api/responses"
	"github.com/rmedina/stockroom-backend/api/validators"
	"github.com/rmedina/stockroom-backend/internal/session"
	pkgAuth "github.com/rmedina/stockroom-backend/pkg/auth"
	"github.com/rmedina/stockroom-backend/pkg/config"
	"github.com/rmedina/stockroom-backend/pkg/delay"
	pkgerrors "github.com/rmedina/stockroom-backend/pkg/errors"
	"github.com/rmedina/stockroom-backend/pkg/logger"
	"github.com/rmedina/stockroom-backend/pkg/models"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// AuthLogin authenticates against the session store and mints an access
// token. The injected delay stands in for the backend round trip the
// storefront simulates.
func AuthLogin(sessions *session.Store, sleeper delay.Sleeper, jwtCfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session store unavailable"))
			return
		}

		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if sleeper != nil {
			if err := sleeper.Sleep(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "login interrupted"))
				return
			}
		}

		ok, err := sessions.Login(r.Context(), body.Username, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting session"))
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid username or password"))
			return
		}

		user, _ := sessions.Current()
		token, err := pkgAuth.MintAccessToken(jwtCfg, time.Now(), pkgAuth.AccessTokenPayload{
			UserID: user.ID,
			Role:   user.Role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token"))
			return
		}

		responses.WriteSuccess(w, loginResponse{Token: token, User: user})
	}
}

// AuthLogout clears the active session. Always succeeds for a reachable
// state backend, even with no one signed in.
func AuthLogout(sessions *session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session store unavailable"))
			return
		}
		if err := sessions.Logout(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing session"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "signed_out"})
	}
}
