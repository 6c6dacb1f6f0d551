package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const defaultPath = "config.yaml"

// PathEnv overrides the config file location.
const PathEnv = "CLIPSCOPE_CONFIG"

type Config struct {
	Log struct {
		Level    string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
		Telegram struct {
			Token  string `yaml:"token"`
			ChatID string `yaml:"chat_id"`
		} `yaml:"telegram"`
	} `yaml:"log"`

	Sentry struct {
		DSN              string  `yaml:"dsn"`
		Environment      string  `yaml:"environment"`
		TracesSampleRate float64 `yaml:"traces_sample_rate" validate:"min=0,max=1"`
	} `yaml:"sentry"`

	Twitch struct {
		ClientID     string   `yaml:"client_id" validate:"required"`
		ClientSecret string   `yaml:"client_secret" validate:"required"`
		Scopes       []string `yaml:"scopes"`
	} `yaml:"twitch"`

	Query Query `yaml:"query"`

	Report struct {
		Output   string `yaml:"output"`
		TopGames bool   `yaml:"top_games"`
	} `yaml:"report"`
}

// Query selects the clips to crawl. Exactly one of BroadcasterID, GameID
// and ClipID must be set.
type Query struct {
	BroadcasterID string        `yaml:"broadcaster_id" validate:"required_without_all=GameID ClipID,excluded_with=GameID ClipID"`
	GameID        string        `yaml:"game_id" validate:"required_without_all=BroadcasterID ClipID,excluded_with=BroadcasterID ClipID"`
	ClipID        string        `yaml:"clip_id" validate:"required_without_all=BroadcasterID GameID,excluded_with=BroadcasterID GameID"`
	First         int           `yaml:"first" validate:"min=1,max=100"`
	MaxPages      int           `yaml:"max_pages" validate:"min=0"`
	Limit         int           `yaml:"limit" validate:"min=0"`
	StartedAt     string        `yaml:"started_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndedAt       string        `yaml:"ended_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	PageInterval  time.Duration `yaml:"page_interval" validate:"min=0"`
}

func Load() (*Config, error) {
	path := os.Getenv(PathEnv)
	if path == "" {
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var result Config
	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Log.Level == "" {
		result.Log.Level = "debug"
	}
	if result.Sentry.TracesSampleRate == 0 {
		result.Sentry.TracesSampleRate = 1.0
	}
	if result.Sentry.Environment == "" {
		result.Sentry.Environment = "production"
	}
	if result.Query.First == 0 {
		result.Query.First = 20
	}
	if result.Query.PageInterval == 0 {
		result.Query.PageInterval = time.Second
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

// TimeRange parses the optional started_at/ended_at bounds.
func (q Query) TimeRange() (startedAt, endedAt time.Time, err error) {
	if q.StartedAt != "" {
		if startedAt, err = time.Parse(time.RFC3339, q.StartedAt); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("could not parse started_at: %w", err)
		}
	}
	if q.EndedAt != "" {
		if endedAt, err = time.Parse(time.RFC3339, q.EndedAt); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("could not parse ended_at: %w", err)
		}
	}

	return startedAt, endedAt, nil
}
