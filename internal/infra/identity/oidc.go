package identity

import (
	"context"
	"fmt"

	"barbershop-billing/internal/domain/users"

	"github.com/coreos/go-oidc/v3/oidc"
)

// OIDCVerifier checks asymmetrically signed tokens against the issuer's
// published keys, discovered from /.well-known/openid-configuration.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewOIDCVerifier(ctx context.Context, issuer, audience string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery for %s: %w", issuer, err)
	}

	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{
			ClientID:          audience,
			SkipClientIDCheck: audience == "",
		}),
	}, nil
}

func (v *OIDCVerifier) Verify(ctx context.Context, token string) (users.Subscriber, error) {
	idToken, err := v.verifier.Verify(ctx, token)
	if err != nil {
		return users.Subscriber{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var claims Claims
	if err := idToken.Claims(&claims); err != nil {
		return users.Subscriber{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims.Subject = idToken.Subject
	return claims.Subscriber()
}
