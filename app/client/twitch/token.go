package twitch

import (
	"clipscope/app/client/apierr"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var tokenURL = "https://id.twitch.tv/oauth2/token"

var tokenHTTPClient = &http.Client{Timeout: 30 * time.Second}

// the token endpoint answers 400 for an unknown secret and 403 for an unknown client
var tokenAuthStatuses = []int{
	http.StatusBadRequest,
	http.StatusUnauthorized,
	http.StatusForbidden,
}

var ErrEmptyCredentials = errors.New("client id and client secret are required")

// GetAccessToken exchanges client credentials for an app access token.
// The token is neither cached nor refreshed.
func GetAccessToken(ctx context.Context, clientID, clientSecret string, scopes ...string) (*AccessToken, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrEmptyCredentials
	}

	queryParams := url.Values{}
	queryParams.Set("client_id", clientID)
	queryParams.Set("client_secret", clientSecret)
	queryParams.Set("grant_type", "client_credentials")
	queryParams.Set("scopes", strings.Join(scopes, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating auth request failed: %w", err)
	}
	req.URL.RawQuery = queryParams.Encode()
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	slog.DebugContext(ctx, "Requesting app access token", slog.Int("scopes", len(scopes)))

	resp, err := tokenHTTPClient.Do(req)
	if err != nil {
		// the request URL carries the secret, keep it out of the error
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, &apierr.NetworkError{Op: http.MethodPost, URL: tokenURL, Err: err}
	}
	defer resp.Body.Close()

	if !apierr.IsSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(resp.Body)
		return nil, apierr.FromStatus(resp.StatusCode, body, tokenURL, tokenAuthStatuses...)
	}

	var token AccessToken
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("decoding auth response failed: %w", err)
	}

	return &token, nil
}
