package identity

import (
	"net/http"
	"strings"

	"barbershop-billing/internal/domain/billing"
	"barbershop-billing/internal/domain/users"
)

// Gate resolves the caller of a request. Exactly one credential source is
// tried: the bearer token when the request carries one, the session cookie
// otherwise. A bad bearer token never falls back to the cookie.
type Gate struct {
	bearer     Verifier
	session    Verifier
	cookieName string
}

func NewGate(bearer, session Verifier, cookieName string) *Gate {
	return &Gate{bearer: bearer, session: session, cookieName: cookieName}
}

func (g *Gate) Resolve(r *http.Request) (users.Subscriber, error) {
	ctx := r.Context()

	if token, ok := bearerToken(r.Header.Get("Authorization")); ok {
		sub, err := g.bearer.Verify(ctx, token)
		if err != nil {
			return users.Subscriber{}, &billing.Error{Kind: billing.KindAuth, Message: "invalid token", Err: err}
		}
		return sub, nil
	}

	token := SessionToken(sessionCookie(r, g.cookieName))
	if token == "" {
		return users.Subscriber{}, billing.AuthError("not authenticated")
	}
	sub, err := g.session.Verify(ctx, token)
	if err != nil {
		return users.Subscriber{}, &billing.Error{Kind: billing.KindAuth, Message: "not authenticated", Err: err}
	}
	return sub, nil
}

// bearerToken reports whether the header uses the Bearer scheme. An empty
// token after the scheme still counts as present.
func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) < len("Bearer") || !strings.EqualFold(header[:len("Bearer")], "Bearer") {
		return "", false
	}
	rest := header[len("Bearer"):]
	if rest != "" && rest[0] != ' ' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
