package identity

import (
	"context"
	"errors"

	"barbershop-billing/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by every Verifier for a token it cannot accept.
var ErrInvalidToken = errors.New("invalid token")

// Verifier turns an access token into the identity it was issued for.
type Verifier interface {
	Verify(ctx context.Context, token string) (users.Subscriber, error)
}

// Claims is the access token payload issued by the identity directory.
type Claims struct {
	Email        string         `json:"email"`
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
	jwt.RegisteredClaims
}

func (c *Claims) Subscriber() (users.Subscriber, error) {
	if c.Subject == "" {
		return users.Subscriber{}, ErrInvalidToken
	}
	return users.Subscriber{
		UserID: c.Subject,
		Email:  c.Email,
		Role:   roleFrom(c.AppMetadata, c.UserMetadata),
	}, nil
}

// app_metadata is only writable server side, so it wins over user_metadata.
func roleFrom(appMeta, userMeta map[string]any) users.Role {
	if r, _ := appMeta["role"].(string); r != "" {
		return users.ParseRole(r)
	}
	r, _ := userMeta["role"].(string)
	return users.ParseRole(r)
}
