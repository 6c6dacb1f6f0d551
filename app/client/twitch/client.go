package twitch

import (
	"clipscope/app/client/apierr"
	"clipscope/app/client/legacy"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var baseURL = "https://api.twitch.tv/helix"

// ClipFetcher looks up a single clip on the legacy endpoint.
type ClipFetcher interface {
	GetClip(ctx context.Context, id string) (*legacy.Clip, error)
}

// Client talks to the helix API with a fixed bearer token. The token is
// never refreshed; a 401 comes back as *apierr.AuthError.
type Client struct {
	baseURL     string
	accessToken string
	clientID    string
	httpClient  *http.Client
	legacy      ClipFetcher
}

type Option func(*Client)

// WithClientID sets the Client-Id header Twitch expects alongside app tokens.
func WithClientID(clientID string) Option {
	return func(c *Client) {
		c.clientID = clientID
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithLegacyClient replaces the client used to enrich clips.
func WithLegacyClient(fetcher ClipFetcher) Option {
	return func(c *Client) {
		c.legacy = fetcher
	}
}

func NewClient(accessToken string, opts ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.legacy == nil {
		c.legacy = legacy.New()
	}

	return c
}

func (c *Client) GetTopGames(ctx context.Context, params *TopGamesParams) (*Page[Game], error) {
	queryParams, err := params.query()
	if err != nil {
		return nil, err
	}

	return get[Game](ctx, c, "/games/top", queryParams)
}

func (c *Client) GetGame(ctx context.Context, selector GameSelector) (*Page[Game], error) {
	queryParams, err := gameQuery(selector)
	if err != nil {
		return nil, err
	}

	return get[Game](ctx, c, "/games", queryParams)
}

// GetUsers looks users up by id or login; a nil selector returns the token owner.
func (c *Client) GetUsers(ctx context.Context, selector UserSelector) (*Page[User], error) {
	queryParams, err := userQuery(selector)
	if err != nil {
		return nil, err
	}

	return get[User](ctx, c, "/users", queryParams)
}

// GetClips lists clips and fills VodOffset/VodID of every clip from the
// legacy endpoint. A single failed lookup fails the whole call.
func (c *Client) GetClips(ctx context.Context, params *GetClipsParams) (*Page[Clip], error) {
	queryParams, err := params.query()
	if err != nil {
		return nil, err
	}

	page, err := get[Clip](ctx, c, "/clips", queryParams)
	if err != nil {
		return nil, err
	}

	enriched, err := c.enrichClips(ctx, page.Data)
	if err != nil {
		return nil, err
	}

	return &Page[Clip]{Data: enriched, Pagination: page.Pagination}, nil
}

func (c *Client) enrichClips(ctx context.Context, clips []Clip) ([]Clip, error) {
	enriched := make([]Clip, len(clips))

	// siblings are not cancelled on failure, every lookup runs to completion
	var g errgroup.Group
	for i, clip := range clips {
		g.Go(func() error {
			legacyClip, err := c.legacy.GetClip(ctx, clip.ID)
			if err != nil {
				return fmt.Errorf("enrich clip %s: %w", clip.ID, err)
			}

			clip.VodOffset = legacyClip.VodOffset
			clip.VodID = legacyClip.VodID
			enriched[i] = clip

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return enriched, nil
}

func get[T any](ctx context.Context, c *Client, endpoint string, queryParams url.Values) (*Page[T], error) {
	requestURL := c.baseURL + endpoint
	if len(queryParams) > 0 {
		requestURL += "?" + queryParams.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request failed: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if c.clientID != "" {
		req.Header.Set("Client-Id", c.clientID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apierr.NetworkError{Op: http.MethodGet, URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	if !apierr.IsSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(resp.Body)
		return nil, apierr.FromStatus(resp.StatusCode, body, requestURL)
	}

	var page Page[T]
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding response failed: %w", err)
	}

	slog.DebugContext(ctx, "Helix request done",
		slog.String("endpoint", endpoint),
		slog.Int("count", len(page.Data)),
		slog.Bool("has_cursor", page.Pagination.Cursor != ""),
	)

	return &page, nil
}
