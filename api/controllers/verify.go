package controllers

import (
	"net/http"
	"strings"

	authsvc "github.com/maisonluxe/storefront-backend/internal/auth"
	"github.com/maisonluxe/storefront-backend/pkg/config"
	pkgerrors "github.com/maisonluxe/storefront-backend/pkg/errors"
	"github.com/maisonluxe/storefront-backend/pkg/logger"
)

// VerifyEmail redeems the token from the emailed link. The interface is
// entirely redirect-based: success lands on the configured success page and
// every failure, missing token, unknown token, expired token or an internal
// error, lands on the same error page so the endpoint leaks nothing about
// account state.
func VerifyEmail(svc authsvc.Service, cfg config.VerificationConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.URL.Query().Get("token"))
		if token == "" {
			http.Redirect(w, r, cfg.ErrorURL, http.StatusFound)
			return
		}

		if err := svc.VerifyEmail(r.Context(), token); err != nil {
			if logg != nil {
				typed := pkgerrors.As(err)
				if typed == nil || typed.Code() == pkgerrors.CodeInternal {
					logg.Error(r.Context(), "verification failed", err)
				} else {
					logg.Warn(logg.WithField(r.Context(), "reason", typed.Message()), "verification rejected")
				}
			}
			http.Redirect(w, r, cfg.ErrorURL, http.StatusFound)
			return
		}

		http.Redirect(w, r, cfg.SuccessURL, http.StatusFound)
	}
}
