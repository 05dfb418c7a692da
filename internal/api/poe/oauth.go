package poe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// tokenURL lives on the account host, not the API host.
var tokenURL = "https://www.pathofexile.com/oauth/token"

const tokenScopes = "service:leagues service:leagues:ladder"

// ErrMissingCredentials is returned before any network call is made.
var ErrMissingCredentials = errors.New("OAuth client_id and client_secret are required for API access")

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// RequestToken performs the OAuth client-credentials exchange and returns the
// bearer token. The token is acquired once per process; there is no refresh.
func RequestToken(ctx context.Context, clientID, clientSecret string) (string, error) {
	if clientID == "" || clientSecret == "" {
		return "", ErrMissingCredentials
	}

	form := url.Values{
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"grant_type":    {"client_credentials"},
		"scope":         {tokenScopes},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("error creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	slog.Debug("Requesting OAuth token")

	httpClient := &http.Client{Timeout: 15 * time.Second}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error requesting OAuth token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := newStatusError(resp)
		slog.Debug("Token response", "body", statusErr.Body)
		return "", fmt.Errorf("failed to get OAuth token: %w", statusErr)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading token response: %w", err)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("error decoding token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", errors.New("token response contained no access_token")
	}

	slog.Debug("Successfully obtained OAuth token")
	return token.AccessToken, nil
}
