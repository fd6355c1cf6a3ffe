package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/maisonluxe/storefront-backend/pkg/config"
)

func TestSecureHeadersAppliesPolicy(t *testing.T) {
	cfg := config.SecurityConfig{
		ScriptOrigins: []string{"https://cdn.maisonluxe.com"},
		StyleOrigins:  []string{"https://cdn.maisonluxe.com", "https://fonts.googleapis.com"},
		ImageOrigins:  []string{"https://cdn.maisonluxe.com"},
		FontOrigins:   []string{"https://fonts.gstatic.com"},
	}

	handler := SecureHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	want := map[string]string{
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
		"X-Content-Type-Options":    "nosniff",
		"X-Frame-Options":           "SAMEORIGIN",
		"Referrer-Policy":           "strict-origin-when-cross-origin",
		"Permissions-Policy":        "geolocation=(), camera=()",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}

	csp := rec.Header().Get("Content-Security-Policy")
	for _, fragment := range []string{
		"default-src 'self'",
		"script-src 'self' https://cdn.maisonluxe.com",
		"style-src 'self' https://cdn.maisonluxe.com https://fonts.googleapis.com",
		"img-src 'self' data: https://cdn.maisonluxe.com",
		"font-src 'self' https://fonts.gstatic.com",
		"frame-ancestors 'self'",
	} {
		if !strings.Contains(csp, fragment) {
			t.Errorf("CSP missing %q in %q", fragment, csp)
		}
	}
}
