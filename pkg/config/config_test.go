package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
twitch:
  client_id: abc
  client_secret: def
  scopes: [clips:edit]
query:
  broadcaster_id: "12345"
  max_pages: 3
  started_at: "2024-01-01T00:00:00Z"
report:
  top_games: true
`

func TestParse(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := Parse([]byte(validConfig))
		require.NoError(t, err)

		assert.Equal(t, "abc", cfg.Twitch.ClientID)
		assert.Equal(t, []string{"clips:edit"}, cfg.Twitch.Scopes)
		assert.Equal(t, "12345", cfg.Query.BroadcasterID)
		assert.Equal(t, 20, cfg.Query.First)
		assert.Equal(t, 3, cfg.Query.MaxPages)
		assert.Equal(t, time.Second, cfg.Query.PageInterval)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "production", cfg.Sentry.Environment)
		assert.InDelta(t, 1.0, cfg.Sentry.TracesSampleRate, 0.0001)
		assert.True(t, cfg.Report.TopGames)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg, err := Parse([]byte(validConfig + "log:\n  level: warn\nsentry:\n  environment: staging\n"))
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, "staging", cfg.Sentry.Environment)
	})

	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing credentials",
			yaml: "query:\n  game_id: \"1\"\n",
		},
		{
			name: "no selector",
			yaml: "twitch: {client_id: a, client_secret: b}\n",
		},
		{
			name: "two selectors",
			yaml: "twitch: {client_id: a, client_secret: b}\nquery: {game_id: \"1\", clip_id: x}\n",
		},
		{
			name: "page size too large",
			yaml: "twitch: {client_id: a, client_secret: b}\nquery: {game_id: \"1\", first: 500}\n",
		},
		{
			name: "bad time",
			yaml: "twitch: {client_id: a, client_secret: b}\nquery: {game_id: \"1\", started_at: yesterday}\n",
		},
		{
			name: "bad log level",
			yaml: "log: {level: loud}\ntwitch: {client_id: a, client_secret: b}\nquery: {game_id: \"1\"}\n",
		},
		{
			name: "not yaml",
			yaml: "twitch: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("twitch: {client_id: a, client_secret: b}\nquery: {clip_id: x, page_interval: 250ms}\n"), 0o600))
	t.Setenv(PathEnv, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "x", cfg.Query.ClipID)
	assert.Equal(t, 250*time.Millisecond, cfg.Query.PageInterval)

	t.Setenv(PathEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	require.Error(t, err)
}

func TestQuery_TimeRange(t *testing.T) {
	startedAt, endedAt, err := Query{StartedAt: "2024-01-01T00:00:00Z"}.TimeRange()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), startedAt)
	assert.True(t, endedAt.IsZero())

	_, _, err = Query{EndedAt: "nope"}.TimeRange()
	require.Error(t, err)
}
