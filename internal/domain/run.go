package domain

import "time"

type RunKind string

const (
	RunKindDiscovery RunKind = "discovery"
	RunKindHydration RunKind = "hydration"
)

type SkipReason string

const (
	SkipCampaignNotFound  SkipReason = "campaign_not_found"
	SkipCampaignEnded     SkipReason = "campaign_ended"
	SkipNoKeywords        SkipReason = "no_keywords"
	SkipMissingCredential SkipReason = "missing_credential"
	SkipNoDueAuthors      SkipReason = "no_due_authors"
	SkipNoDuePosts        SkipReason = "no_due_posts"
	SkipRunInProgress     SkipReason = "run_in_progress"
)

// RunReport resume uma execução limitada de descoberta ou reidratação.
type RunReport struct {
	RunID           string     `json:"run_id"`
	CampaignID      string     `json:"campaign_id"`
	Kind            RunKind    `json:"kind"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      time.Time  `json:"finished_at"`
	SkipReason      SkipReason `json:"skip_reason,omitempty"`
	AuthorsPolled   int        `json:"authors_polled"`
	PostsMatched    int        `json:"posts_matched"`
	PostsRefreshed  int        `json:"posts_refreshed"`
	PostsFrozen     int        `json:"posts_frozen"`
	FetchFailures   int        `json:"fetch_failures"`
	BudgetExhausted bool       `json:"budget_exhausted"`
	AuthorsCredited int        `json:"authors_credited"`
	DeltaTotal      float64    `json:"delta_total"`
}

func (r *RunReport) Skipped() bool {
	return r.SkipReason != ""
}
