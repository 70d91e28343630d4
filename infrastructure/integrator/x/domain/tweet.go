package xdomain

type PublicMetrics struct {
	LikeCount    int64 `json:"like_count"`
	ReplyCount   int64 `json:"reply_count"`
	RetweetCount int64 `json:"retweet_count"`
	QuoteCount   int64 `json:"quote_count"`
}

type Tweet struct {
	ID            string         `json:"id"`
	AuthorID      string         `json:"author_id"`
	Text          string         `json:"text"`
	CreatedAt     string         `json:"created_at"`
	PublicMetrics *PublicMetrics `json:"public_metrics,omitempty"`
}

type Meta struct {
	ResultCount int    `json:"result_count"`
	NewestID    string `json:"newest_id"`
	OldestID    string `json:"oldest_id"`
	NextToken   string `json:"next_token"`
}

// TweetsResponse é o envelope de /2/users/:id/tweets e /2/tweets.
// Posts apagados ou protegidos aparecem em Errors e não em Data.
type TweetsResponse struct {
	Data   []Tweet   `json:"data"`
	Meta   Meta      `json:"meta"`
	Errors []Problem `json:"errors,omitempty"`
}
