// Package legacy is a client for the deprecated clips.twitch.tv metadata endpoint.
package legacy

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

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var baseURL = "https://clips.twitch.tv/api/v2/clips"

var ErrEmptyID = errors.New("clip id is empty")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetClip fetches a clip by its slug.
func (c *Client) GetClip(ctx context.Context, id string) (*Clip, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	requestURL := c.baseURL + "/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	slog.DebugContext(ctx, "Getting legacy clip", slog.String("clip_id", id))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apierr.NetworkError{Op: http.MethodGet, URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	if !apierr.IsSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(resp.Body)
		return nil, apierr.FromStatus(resp.StatusCode, body, requestURL)
	}

	var clip Clip
	if err = json.NewDecoder(resp.Body).Decode(&clip); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return &clip, nil
}
