package legacy

// Clip is the full record served by the legacy clips endpoint
type Clip struct {
	ID                     string     `json:"id"`
	Slug                   string     `json:"slug"`
	Title                  string     `json:"title"`
	Language               string     `json:"language"`
	Game                   string     `json:"game"`
	Communities            []string   `json:"communities"`
	CreatedAt              string     `json:"created_at"`
	Duration               float64    `json:"duration"`
	Views                  int        `json:"views"`
	URL                    string     `json:"url"`
	InfoURL                string     `json:"info_url"`
	StatusURL              string     `json:"status_url"`
	EditURL                string     `json:"edit_url"`
	ViewURL                string     `json:"view_url"`
	EmbedURL               string     `json:"embed_url"`
	EmbedHTML              string     `json:"embed_html"`
	PreviewImage           string     `json:"preview_image"`
	Thumbnails             Thumbnails `json:"thumbnails"`
	BroadcastID            string     `json:"broadcast_id"`
	BroadcasterID          string     `json:"broadcaster_id"`
	BroadcasterLogin       string     `json:"broadcaster_login"`
	BroadcasterDisplayName string     `json:"broadcaster_display_name"`
	BroadcasterChannelURL  string     `json:"broadcaster_channel_url"`
	BroadcasterLogo        string     `json:"broadcaster_logo"`
	CuratorID              string     `json:"curator_id"`
	CuratorLogin           string     `json:"curator_login"`
	CuratorDisplayName     string     `json:"curator_display_name"`
	CuratorChannelURL      string     `json:"curator_channel_url"`
	CuratorLogo            string     `json:"curator_logo"`

	// null when the broadcast has no VOD
	VodID              *string `json:"vod_id"`
	VodOffset          *int    `json:"vod_offset"`
	VodURL             string  `json:"vod_url"`
	VodPreviewImageURL string  `json:"vod_preview_image_url"`
}

// Thumbnails represents the preview images of a clip
type Thumbnails struct {
	Medium string `json:"medium"`
	Small  string `json:"small"`
	Tiny   string `json:"tiny"`
}
