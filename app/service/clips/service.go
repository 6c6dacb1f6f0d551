package clips

import (
	"clipscope/app/client/twitch"
	"clipscope/pkg/config"
	"clipscope/pkg/util"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/samber/do"
	"golang.org/x/time/rate"
)

var ErrNoSelector = errors.New("query has no clips selector")

// ClipLister is the part of the helix client the crawler needs.
type ClipLister interface {
	GetClips(ctx context.Context, params *twitch.GetClipsParams) (*twitch.Page[twitch.Clip], error)
}

// Query describes one crawl. MaxPages and Limit of 0 mean unbounded.
type Query struct {
	Selector  twitch.ClipsSelector
	First     int
	MaxPages  int
	Limit     int
	StartedAt time.Time
	EndedAt   time.Time
}

type Service struct {
	cfg    *config.Config
	client ClipLister

	rateLimiter *rate.Limiter
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Service{
		cfg:         cfg,
		client:      do.MustInvoke[*twitch.Client](di),
		rateLimiter: rate.NewLimiter(rate.Every(cfg.Query.PageInterval), 1),
	}, nil
}

// ConfiguredQuery builds the crawl described by the config file.
func (s *Service) ConfiguredQuery() (Query, error) {
	q := s.cfg.Query

	startedAt, endedAt, err := q.TimeRange()
	if err != nil {
		return Query{}, err
	}

	var selector twitch.ClipsSelector
	switch {
	case q.BroadcasterID != "":
		selector = twitch.ClipsByBroadcaster{BroadcasterID: q.BroadcasterID}
	case q.GameID != "":
		selector = twitch.ClipsByGame{GameID: q.GameID}
	case q.ClipID != "":
		selector = twitch.ClipsByID{ID: q.ClipID}
	default:
		return Query{}, ErrNoSelector
	}

	return Query{
		Selector:  selector,
		First:     q.First,
		MaxPages:  q.MaxPages,
		Limit:     q.Limit,
		StartedAt: startedAt,
		EndedAt:   endedAt,
	}, nil
}

// Collect walks the clip pages of query following the cursor. Clips are
// returned in listing order without duplicates.
func (s *Service) Collect(ctx context.Context, query Query) ([]twitch.Clip, error) {
	if query.Selector == nil {
		return nil, ErrNoSelector
	}

	span := sentry.StartSpan(ctx, "clips.collect")
	defer span.Finish()

	requestID := uuid.NewString()
	selector := describeSelector(query.Selector)

	ctx = span.Context()
	ctx = util.WithValue(ctx, util.RequestIDContextKey, requestID)
	ctx = util.WithValue(ctx, util.SelectorContextKey, selector)

	span.SetTag("request_id", requestID)
	span.SetTag("selector", selector)

	seen := make(map[string]struct{})
	result := make([]twitch.Clip, 0)
	after := ""

	for page := 0; query.MaxPages == 0 || page < query.MaxPages; page++ {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for page %d: %w", page, err)
		}

		slog.DebugContext(ctx, "Getting clips...",
			slog.Int("page", page),
			slog.String("after", after),
		)

		res, err := s.client.GetClips(ctx, &twitch.GetClipsParams{
			Selector:  query.Selector,
			First:     query.First,
			After:     after,
			StartedAt: query.StartedAt,
			EndedAt:   query.EndedAt,
		})
		if err != nil {
			sentry.CaptureException(err)
			slog.ErrorContext(ctx, "Failed to get clips",
				slog.Int("page", page),
				slog.Any("error", err),
			)
			return nil, fmt.Errorf("get clips page %d: %w", page, err)
		}

		for _, clip := range res.Data {
			if _, ok := seen[clip.ID]; ok {
				continue
			}
			seen[clip.ID] = struct{}{}
			result = append(result, clip)

			if query.Limit > 0 && len(result) >= query.Limit {
				slog.InfoContext(ctx, "Clip limit reached", slog.Int("count", len(result)))
				return result, nil
			}
		}

		if len(res.Data) == 0 || res.Pagination.Cursor == "" {
			break
		}

		after = res.Pagination.Cursor
	}

	slog.InfoContext(ctx, "Collected clips", slog.Int("count", len(result)))

	return result, nil
}

func describeSelector(selector twitch.ClipsSelector) string {
	switch s := selector.(type) {
	case twitch.ClipsByBroadcaster:
		return "broadcaster_id=" + s.BroadcasterID
	case twitch.ClipsByGame:
		return "game_id=" + s.GameID
	case twitch.ClipsByID:
		return "id=" + s.ID
	default:
		return fmt.Sprintf("%T", selector)
	}
}
