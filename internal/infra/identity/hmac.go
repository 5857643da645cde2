package identity

import (
	"context"
	"fmt"

	"barbershop-billing/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
)

// HMACVerifier checks tokens signed with the project's shared JWT secret.
type HMACVerifier struct {
	secret   []byte
	audience string
}

func NewHMACVerifier(secret, audience string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret), audience: audience}
}

func (v *HMACVerifier) Verify(_ context.Context, tokenString string) (users.Subscriber, error) {
	if len(v.secret) == 0 {
		return users.Subscriber{}, fmt.Errorf("%w: JWT secret not configured", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return users.Subscriber{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return claims.Subscriber()
}
