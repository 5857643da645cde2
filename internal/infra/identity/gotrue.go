package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"barbershop-billing/internal/domain/users"

	"golang.org/x/oauth2"
)

// GoTrueVerifier asks the hosted auth service who a session token belongs
// to. It uses the public anon key, so it sees exactly what the browser sees.
type GoTrueVerifier struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

func NewGoTrueVerifier(baseURL, anonKey string, httpClient *http.Client) *GoTrueVerifier {
	return &GoTrueVerifier{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: httpClient,
	}
}

type goTrueUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
}

func (v *GoTrueVerifier) Verify(ctx context.Context, token string) (users.Subscriber, error) {
	if v.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, v.httpClient)
	}
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return users.Subscriber{}, err
	}
	req.Header.Set("apikey", v.anonKey)

	resp, err := client.Do(req)
	if err != nil {
		return users.Subscriber{}, fmt.Errorf("identity directory: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return users.Subscriber{}, ErrInvalidToken
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return users.Subscriber{}, fmt.Errorf("identity directory: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var u goTrueUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return users.Subscriber{}, fmt.Errorf("identity directory: decode user: %w", err)
	}
	if u.ID == "" {
		return users.Subscriber{}, ErrInvalidToken
	}

	return users.Subscriber{
		UserID: u.ID,
		Email:  u.Email,
		Role:   roleFrom(u.AppMetadata, u.UserMetadata),
	}, nil
}
