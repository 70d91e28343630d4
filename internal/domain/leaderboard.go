package domain

import "time"

type LeaderboardResponse struct {
	CampaignID  string           `json:"campaign_id"`
	Leaderboard []LeaderboardRow `json:"leaderboard"`
	LastUpdate  time.Time        `json:"last_update"`
}

type LeaderboardRow struct {
	AuthorID     string  `json:"author_id"`
	Handle       string  `json:"username"`
	DisplayName  string  `json:"name,omitempty"`
	AvatarURL    string  `json:"avatar,omitempty"`
	Score        float64 `json:"score"`
	Rank         int     `json:"rank"`
	RankChange   int     `json:"rank_change"` // Valor positivo = subiu, negativo = desceu, 0 = manteve
	PreviousRank int     `json:"previous_rank"`
}

type Leaderboard struct {
	CampaignID string
	Rows       []LeaderboardRow
	UpdatedAt  time.Time
}

// ScoreDelta é o incremento de pontuação de um autor produzido por uma execução.
type ScoreDelta struct {
	AuthorID    string
	Handle      string
	DisplayName string
	AvatarURL   string
	Delta       float64
}
