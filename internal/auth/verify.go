package auth

import (
	"context"

	pkgerrors "github.com/maisonluxe/storefront-backend/pkg/errors"
)

// VerifyEmail redeems a verification token. The repo runs a single
// conditional UPDATE matching token, unexpired expiry and unverified state,
// so concurrent redemptions of the same token cannot both succeed.
//
// Missing, wrong, expired and already-used tokens all produce the same
// not-found error. Collapsing the cases keeps an unauthenticated caller from
// probing account state through the verification endpoint.
func (s *service) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "verification token required")
	}

	rows, err := s.repo.MarkVerified(ctx, token, s.now())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying account")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "verification token is invalid or expired")
	}

	s.logg.Info(ctx, "account verified")
	return nil
}
