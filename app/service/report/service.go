package report

import (
	"clipscope/app/client/twitch"
	"clipscope/app/service/clips"
	"clipscope/pkg/config"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/samber/do"
	"gopkg.in/yaml.v3"
)

// Resolver is the part of the helix client the report needs.
type Resolver interface {
	GetUsers(ctx context.Context, selector twitch.UserSelector) (*twitch.Page[twitch.User], error)
	GetGame(ctx context.Context, selector twitch.GameSelector) (*twitch.Page[twitch.Game], error)
	GetTopGames(ctx context.Context, params *twitch.TopGamesParams) (*twitch.Page[twitch.Game], error)
}

type Report struct {
	GeneratedAt  time.Time     `yaml:"generated_at"`
	Clips        []ClipEntry   `yaml:"clips"`
	Broadcasters []Broadcaster `yaml:"broadcasters"`
	Games        []GameEntry   `yaml:"games"`
	TopGames     []GameEntry   `yaml:"top_games,omitempty"`
}

type ClipEntry struct {
	ID            string    `yaml:"id"`
	Title         string    `yaml:"title"`
	URL           string    `yaml:"url"`
	BroadcasterID string    `yaml:"broadcaster_id"`
	GameID        string    `yaml:"game_id"`
	Views         int       `yaml:"views"`
	CreatedAt     time.Time `yaml:"created_at"`
	VodID         *string   `yaml:"vod_id,omitempty"`
	VodOffset     *int      `yaml:"vod_offset,omitempty"`
}

type Broadcaster struct {
	ID          string `yaml:"id"`
	Login       string `yaml:"login"`
	DisplayName string `yaml:"display_name"`
	Type        string `yaml:"broadcaster_type,omitempty"`
}

type GameEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type Service struct {
	cfg          *config.Config
	resolver     Resolver
	clipsService *clips.Service

	now func() time.Time
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:          do.MustInvoke[*config.Config](di),
		resolver:     do.MustInvoke[*twitch.Client](di),
		clipsService: do.MustInvoke[*clips.Service](di),
		now:          time.Now,
	}, nil
}

// Build crawls the configured clips and resolves their broadcasters and games.
func (s *Service) Build(ctx context.Context) (*Report, error) {
	query, err := s.clipsService.ConfiguredQuery()
	if err != nil {
		return nil, fmt.Errorf("configured query: %w", err)
	}

	collected, err := s.clipsService.Collect(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("collect clips: %w", err)
	}

	report := &Report{
		GeneratedAt: s.now().UTC(),
		Clips:       make([]ClipEntry, 0, len(collected)),
	}

	var broadcasterIDs, gameIDs []string
	seenBroadcasters := make(map[string]struct{})
	seenGames := make(map[string]struct{})

	for _, clip := range collected {
		report.Clips = append(report.Clips, ClipEntry{
			ID:            clip.ID,
			Title:         clip.Title,
			URL:           clip.URL,
			BroadcasterID: clip.BroadcasterID,
			GameID:        clip.GameID,
			Views:         clip.ViewCount,
			CreatedAt:     clip.CreatedAt,
			VodID:         clip.VodID,
			VodOffset:     clip.VodOffset,
		})

		if _, ok := seenBroadcasters[clip.BroadcasterID]; !ok && clip.BroadcasterID != "" {
			seenBroadcasters[clip.BroadcasterID] = struct{}{}
			broadcasterIDs = append(broadcasterIDs, clip.BroadcasterID)
		}
		if _, ok := seenGames[clip.GameID]; !ok && clip.GameID != "" {
			seenGames[clip.GameID] = struct{}{}
			gameIDs = append(gameIDs, clip.GameID)
		}
	}

	for _, id := range broadcasterIDs {
		res, err := s.resolver.GetUsers(ctx, twitch.UserByID{ID: id})
		if err != nil {
			return nil, fmt.Errorf("get broadcaster %s: %w", id, err)
		}
		for _, user := range res.Data {
			report.Broadcasters = append(report.Broadcasters, Broadcaster{
				ID:          user.ID,
				Login:       user.Login,
				DisplayName: user.DisplayName,
				Type:        user.BroadcasterType,
			})
		}
	}

	for _, id := range gameIDs {
		res, err := s.resolver.GetGame(ctx, twitch.GameByID{ID: id})
		if err != nil {
			return nil, fmt.Errorf("get game %s: %w", id, err)
		}
		for _, game := range res.Data {
			report.Games = append(report.Games, GameEntry{ID: game.ID, Name: game.Name})
		}
	}

	if s.cfg.Report.TopGames {
		res, err := s.resolver.GetTopGames(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("get top games: %w", err)
		}
		for _, game := range res.Data {
			report.TopGames = append(report.TopGames, GameEntry{ID: game.ID, Name: game.Name})
		}
	}

	slog.InfoContext(ctx, "Report built",
		slog.Int("clips", len(report.Clips)),
		slog.Int("broadcasters", len(report.Broadcasters)),
		slog.Int("games", len(report.Games)),
	)

	return report, nil
}

// Write builds the report and encodes it as YAML.
func (s *Service) Write(ctx context.Context, w io.Writer) error {
	report, err := s.Build(ctx)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err = enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return enc.Close()
}

// Run writes the report to the configured output, stdout when unset.
func (s *Service) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "Building the report...")

	if s.cfg.Report.Output == "" {
		return s.Write(ctx, os.Stdout)
	}

	out, err := os.Create(s.cfg.Report.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	if err = s.Write(ctx, out); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Report written", slog.String("output", s.cfg.Report.Output))

	return out.Close()
}
