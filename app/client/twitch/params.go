package twitch

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidParams = errors.New("invalid params")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ClipsSelector picks which clips GetClips lists. Exactly one of
// ClipsByBroadcaster, ClipsByGame or ClipsByID.
type ClipsSelector interface {
	clipsQuery(q url.Values)
}

type ClipsByBroadcaster struct {
	BroadcasterID string `validate:"required"`
}

type ClipsByGame struct {
	GameID string `validate:"required"`
}

type ClipsByID struct {
	ID string `validate:"required"`
}

func (s ClipsByBroadcaster) clipsQuery(q url.Values) { q.Set("broadcaster_id", s.BroadcasterID) }
func (s ClipsByGame) clipsQuery(q url.Values)        { q.Set("game_id", s.GameID) }
func (s ClipsByID) clipsQuery(q url.Values)          { q.Set("id", s.ID) }

// GameSelector is either GameByID or GameByName.
type GameSelector interface {
	gameQuery(q url.Values)
}

type GameByID struct {
	ID string `validate:"required"`
}

type GameByName struct {
	Name string `validate:"required"`
}

func (s GameByID) gameQuery(q url.Values)   { q.Set("id", s.ID) }
func (s GameByName) gameQuery(q url.Values) { q.Set("name", s.Name) }

// UserSelector is either UserByID or UserByLogin. A nil selector asks for
// the user owning the token.
type UserSelector interface {
	userQuery(q url.Values)
}

type UserByID struct {
	ID string `validate:"required"`
}

type UserByLogin struct {
	Login string `validate:"required"`
}

func (s UserByID) userQuery(q url.Values)    { q.Set("id", s.ID) }
func (s UserByLogin) userQuery(q url.Values) { q.Set("login", s.Login) }

// GetClipsParams represents the parameters for getting clips
type GetClipsParams struct {
	Selector  ClipsSelector `validate:"-"`
	Before    string        `validate:"excluded_with=After"`
	After     string
	First     int `validate:"min=0,max=100"`
	StartedAt time.Time
	EndedAt   time.Time
}

// TopGamesParams represents the optional paging of GetTopGames
type TopGamesParams struct {
	Before string `validate:"excluded_with=After"`
	After  string
	First  int `validate:"min=0,max=100"`
}

func (p *GetClipsParams) query() (url.Values, error) {
	if p == nil || p.Selector == nil {
		return nil, fmt.Errorf("%w: clips selector is required", ErrInvalidParams)
	}
	if err := validateStruct(p.Selector); err != nil {
		return nil, err
	}
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	if !p.EndedAt.IsZero() {
		if p.StartedAt.IsZero() {
			return nil, fmt.Errorf("%w: ended_at requires started_at", ErrInvalidParams)
		}
		if p.EndedAt.Before(p.StartedAt) {
			return nil, fmt.Errorf("%w: ended_at is before started_at", ErrInvalidParams)
		}
	}

	queryParams := url.Values{}
	p.Selector.clipsQuery(queryParams)

	if p.First > 0 {
		queryParams.Set("first", strconv.Itoa(p.First))
	}
	if p.After != "" {
		queryParams.Set("after", p.After)
	}
	if p.Before != "" {
		queryParams.Set("before", p.Before)
	}
	if !p.StartedAt.IsZero() {
		queryParams.Set("started_at", p.StartedAt.UTC().Format(time.RFC3339))
	}
	if !p.EndedAt.IsZero() {
		queryParams.Set("ended_at", p.EndedAt.UTC().Format(time.RFC3339))
	}

	return queryParams, nil
}

func (p *TopGamesParams) query() (url.Values, error) {
	queryParams := url.Values{}
	if p == nil {
		return queryParams, nil
	}
	if err := validateStruct(p); err != nil {
		return nil, err
	}

	if p.First > 0 {
		queryParams.Set("first", strconv.Itoa(p.First))
	}
	if p.After != "" {
		queryParams.Set("after", p.After)
	}
	if p.Before != "" {
		queryParams.Set("before", p.Before)
	}

	return queryParams, nil
}

func gameQuery(selector GameSelector) (url.Values, error) {
	if selector == nil {
		return nil, fmt.Errorf("%w: game selector is required", ErrInvalidParams)
	}
	if err := validateStruct(selector); err != nil {
		return nil, err
	}

	queryParams := url.Values{}
	selector.gameQuery(queryParams)
	return queryParams, nil
}

func userQuery(selector UserSelector) (url.Values, error) {
	queryParams := url.Values{}
	if selector == nil {
		return queryParams, nil
	}
	if err := validateStruct(selector); err != nil {
		return nil, err
	}

	selector.userQuery(queryParams)
	return queryParams, nil
}

func validateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return nil
}
