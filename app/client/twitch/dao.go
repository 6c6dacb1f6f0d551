package twitch

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Page is the envelope every helix listing endpoint returns
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination holds the opaque forward cursor, empty on the last page
type Pagination struct {
	Cursor string `json:"cursor,omitempty"`
}

// Clip represents a Twitch clip. VodOffset and VodID are filled from the
// legacy endpoint by GetClips.
type Clip struct {
	ID              string    `json:"id"`
	URL             string    `json:"url"`
	EmbedURL        string    `json:"embed_url"`
	BroadcasterID   string    `json:"broadcaster_id"`
	BroadcasterName string    `json:"broadcaster_name,omitempty"`
	CreatorID       string    `json:"creator_id"`
	CreatorName     string    `json:"creator_name,omitempty"`
	VideoID         string    `json:"video_id"`
	GameID          string    `json:"game_id"`
	Language        string    `json:"language"`
	Title           string    `json:"title"`
	ViewCount       int       `json:"view_count"`
	CreatedAt       time.Time `json:"created_at"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	Duration        float64   `json:"duration,omitempty"`

	VodOffset *int    `json:"vod_offset,omitempty"`
	VodID     *string `json:"vod_id,omitempty"`
}

// Game represents a game category on Twitch
type Game struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BoxArtURL string `json:"box_art_url"`
}

// User represents a Twitch user
type User struct {
	ID              string    `json:"id"`
	Login           string    `json:"login"`
	DisplayName     string    `json:"display_name"`
	Type            string    `json:"type"`
	BroadcasterType string    `json:"broadcaster_type"`
	Description     string    `json:"description"`
	ProfileImageURL string    `json:"profile_image_url"`
	OfflineImageURL string    `json:"offline_image_url"`
	ViewCount       int       `json:"view_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// AccessToken is the response of the OAuth token endpoint
type AccessToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        Scope  `json:"scope,omitempty"`
}

// OAuth2 converts the token for use with golang.org/x/oauth2 based code.
func (t *AccessToken) OAuth2(now time.Time) *oauth2.Token {
	token := &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
	}

	if t.ExpiresIn > 0 {
		token.Expiry = now.Add(time.Duration(t.ExpiresIn) * time.Second)
	}

	return token
}

// Scope is a space separated list of granted scopes. The token endpoint
// sends either a string or an array; both decode here.
type Scope string

func (s *Scope) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = Scope(strings.Join(list, " "))
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("scope is neither a string nor a list: %w", err)
	}

	*s = Scope(str)
	return nil
}

// List splits the scope on spaces and commas.
func (s Scope) List() []string {
	return strings.FieldsFunc(string(s), func(r rune) bool {
		return r == ' ' || r == ','
	})
}
