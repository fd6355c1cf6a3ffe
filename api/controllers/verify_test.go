package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	authsvc "github.com/maisonluxe/storefront-backend/internal/auth"
	"github.com/maisonluxe/storefront-backend/pkg/config"
	pkgerrors "github.com/maisonluxe/storefront-backend/pkg/errors"
)

type stubAuthService struct {
	authsvc.Service

	verifyErr error
	gotToken  string
}

func (s *stubAuthService) VerifyEmail(_ context.Context, token string) error {
	s.gotToken = token
	return s.verifyErr
}

func verificationConfig() config.VerificationConfig {
	return config.VerificationConfig{
		SuccessURL: "/verified",
		ErrorURL:   "/verify-error",
	}
}

func serveVerify(t *testing.T, svc authsvc.Service, target string) *httptest.ResponseRecorder {
	t.Helper()

	handler := VerifyEmail(svc, verificationConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestVerifyEmailRedirectsToSuccess(t *testing.T) {
	svc := &stubAuthService{}
	rec := serveVerify(t, svc, "/auth/verify?token=abc123")

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/verified" {
		t.Fatalf("location = %q", got)
	}
	if svc.gotToken != "abc123" {
		t.Fatalf("token passed to service = %q", svc.gotToken)
	}
}

func TestVerifyEmailMissingTokenRedirectsToError(t *testing.T) {
	svc := &stubAuthService{}
	rec := serveVerify(t, svc, "/auth/verify")

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/verify-error" {
		t.Fatalf("location = %q", got)
	}
	if svc.gotToken != "" {
		t.Fatal("service must not be called without a token")
	}
}

func TestVerifyEmailInvalidTokenRedirectsToError(t *testing.T) {
	svc := &stubAuthService{verifyErr: pkgerrors.New(pkgerrors.CodeNotFound, "verification token is invalid or expired")}
	rec := serveVerify(t, svc, "/auth/verify?token=expired")

	if got := rec.Header().Get("Location"); got != "/verify-error" {
		t.Fatalf("location = %q", got)
	}
}

func TestVerifyEmailInternalFailureRedirectsToError(t *testing.T) {
	svc := &stubAuthService{verifyErr: pkgerrors.New(pkgerrors.CodeInternal, "db down")}
	rec := serveVerify(t, svc, "/auth/verify?token=abc123")

	// collaborator failure is indistinguishable from a bad token
	if got := rec.Header().Get("Location"); got != "/verify-error" {
		t.Fatalf("location = %q", got)
	}
}
