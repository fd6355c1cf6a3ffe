package controllers

import (
	"net/http"
	"time"

	"github.com/maisonluxe/storefront-backend/api/middleware"
	"github.com/maisonluxe/storefront-backend/api/responses"
	"github.com/maisonluxe/storefront-backend/api/validators"
	authsvc "github.com/maisonluxe/storefront-backend/internal/auth"
	"github.com/maisonluxe/storefront-backend/pkg/config"
	pkgerrors "github.com/maisonluxe/storefront-backend/pkg/errors"
	"github.com/maisonluxe/storefront-backend/pkg/logger"
)

const sessionCookieName = "luxe_session"

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=10,max=128"`
	FirstName string `json:"first_name" validate:"required,max=64"`
	LastName  string `json:"last_name" validate:"required,max=64"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates an unverified account. The verification token is handed to
// the mailer, never returned to the caller.
func Register(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Register(r.Context(), authsvc.RegisterInput{
			Email:     payload.Email,
			Password:  payload.Password,
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result.User)
	}
}

// Login exchanges credentials for a JWT. The token is returned in the body
// for API clients and mirrored into the session cookie for page routing.
func Login(svc authsvc.Service, jwtCfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    result.AccessToken,
			Path:     "/",
			MaxAge:   jwtCfg.ExpirationMinutes * 60,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})

		responses.WriteSuccess(w, map[string]any{
			"user":         result.User,
			"access_token": result.AccessToken,
			"expires_at":   time.Now().Add(time.Duration(jwtCfg.ExpirationMinutes) * time.Minute).Unix(),
		})
	}
}

// Logout revokes the session behind the presented token and clears the cookie.
func Logout(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		accessID := middleware.AccessIDFromContext(r.Context())
		if err := svc.Logout(r.Context(), accessID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})

		responses.WriteSuccess(w, map[string]string{"status": "signed_out"})
	}
}
