package domain

import "time"

// Engagement são os contadores públicos de um post.
type Engagement struct {
	Favorites int64 `json:"favorites"`
	Replies   int64 `json:"replies"`
	Reshares  int64 `json:"reshares"`
	Quotes    int64 `json:"quotes"`
}

func (e Engagement) Total() int64 {
	return e.Favorites + e.Replies + e.Reshares + e.Quotes
}

// SocialPost é um post como devolvido pela fonte de conteúdo.
// Metrics é nil quando a fonte não trouxe métricas públicas.
type SocialPost struct {
	ID        string
	AuthorID  string
	Text      string
	CreatedAt time.Time
	Metrics   *Engagement
}

type TimelineQuery struct {
	SinceID    string
	StartTime  time.Time
	MaxResults int
}

type TrackedPost struct {
	CampaignID        string     `json:"campaign_id"`
	PostID            string     `json:"post_id"`
	AuthorID          string     `json:"author_id"`
	AuthorHandle      string     `json:"author_handle"`
	AuthorDisplayName string     `json:"author_display_name"`
	AuthorAvatarURL   string     `json:"author_avatar_url"`
	AuthorReach       int64      `json:"author_reach"`
	Text              string     `json:"text"`
	Engagement        Engagement `json:"engagement"`
	LastScore         float64    `json:"last_score"`
	CurrentScore      float64    `json:"current_score"`
	RefreshStage      int        `json:"refresh_stage"`
	NextRefreshAt     *time.Time `json:"next_refresh_at,omitempty"`
	PostedAt          *time.Time `json:"posted_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// IsFrozen indica que o post esgotou a escada de reidratação.
func (p *TrackedPost) IsFrozen() bool {
	return p.NextRefreshAt == nil
}
