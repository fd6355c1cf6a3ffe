package middleware

import (
	"net/http"
	"net/url"
	"strings"

	pkgAuth "github.com/maisonluxe/storefront-backend/pkg/auth"
	"github.com/maisonluxe/storefront-backend/pkg/auth/session"
	"github.com/maisonluxe/storefront-backend/pkg/config"
)

const sessionCookieName = "luxe_session"

// RouteGuard gates page routes by session state:
//   - protected prefixes redirect unauthenticated visitors to the sign-in
//     page, carrying the original path in a callbackUrl parameter
//   - auth-only pages redirect already-signed-in visitors home
//
// Everything else passes through untouched. The guard never errors: a
// session check failure is treated as unauthenticated.
func RouteGuard(cfg config.RouteGuardConfig, jwtCfg config.JWTConfig, verifier session.AccessSessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			protected := hasPrefix(path, cfg.ProtectedPrefixes)
			authPage := matchesPath(path, cfg.AuthPages)
			if !protected && !authPage {
				next.ServeHTTP(w, r)
				return
			}

			authed := hasValidSession(r, jwtCfg, verifier)

			if protected && !authed {
				target := cfg.SignInPath + "?callbackUrl=" + url.QueryEscape(path)
				http.Redirect(w, r, target, http.StatusFound)
				return
			}
			if authPage && authed {
				http.Redirect(w, r, cfg.HomePath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasValidSession(r *http.Request, jwtCfg config.JWTConfig, verifier session.AccessSessionChecker) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	claims, err := pkgAuth.ParseAccessToken(jwtCfg, cookie.Value)
	if err != nil || claims.ID == "" {
		return false
	}

	if verifier != nil {
		ok, err := verifier.HasSession(r.Context(), claims.ID)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

func hasPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			continue
		}
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func matchesPath(path string, pages []string) bool {
	for _, page := range pages {
		if strings.TrimSpace(page) == path {
			return true
		}
	}
	return false
}
