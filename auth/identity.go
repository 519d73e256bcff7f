// Package auth resolves callers against the external identity provider and
// maps them to local guest profiles.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileConflict = errors.New("profile already exists for identity")
)

// Identity is what the identity provider knows about the caller.
type Identity struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	Metadata map[string]any `json:"user_metadata"`
}

func (i Identity) meta(keys ...string) string {
	for _, key := range keys {
		if v, ok := i.Metadata[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

type IdentityProvider interface {
	GetUser(ctx context.Context, token string) (*Identity, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPProvider asks the identity provider's user endpoint who owns a bearer
// token. Any non-200 answer means the caller is unauthenticated.
type HTTPProvider struct {
	BaseURL string
	APIKey  string
	Client  HTTPClient
}

func NewHTTPProvider(baseURL, apiKey string, client HTTPClient) *HTTPProvider {
	return &HTTPProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  client,
	}
}

func (p *HTTPProvider) GetUser(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("build identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if p.APIKey != "" {
		req.Header.Set("apikey", p.APIKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUnauthenticated
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	if identity.ID == "" {
		return nil, ErrUnauthenticated
	}
	return &identity, nil
}

var _ IdentityProvider = (*HTTPProvider)(nil)
