package domain

import "time"

// TrackedAuthor é um criador do roster junto com o cursor de descoberta
// da campanha consultada.
type TrackedAuthor struct {
	ID           string     `json:"id"`
	Handle       string     `json:"handle"`
	DisplayName  string     `json:"display_name"`
	AvatarURL    string     `json:"avatar_url"`
	Followers    int64      `json:"followers"`
	Enabled      bool       `json:"enabled"`
	SinceID      string     `json:"since_id,omitempty"`
	LastPolledAt *time.Time `json:"last_polled_at,omitempty"`
	NextPollAt   *time.Time `json:"next_poll_at,omitempty"`
}

type AuthorCursor struct {
	CampaignID   string
	AuthorID     string
	SinceID      string
	LastPolledAt time.Time
	NextPollAt   time.Time
}
