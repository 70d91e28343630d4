package xclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	xdomain "github.com/vfg2006/creator-campaign-api/infrastructure/integrator/x/domain"
)

// A API aceita entre 5 e 100 resultados por página.
const (
	minTimelineResults = 5
	maxTimelineResults = 100
)

type UserTweetsParams struct {
	UserID     string
	SinceID    string
	StartTime  time.Time
	MaxResults int
}

func (c *XClient) GetUserTweets(ctx context.Context, params UserTweetsParams) (*xdomain.TweetsResponse, error) {
	query := url.Values{}
	query.Set("tweet.fields", tweetFields)
	query.Set("max_results", strconv.Itoa(clampResults(params.MaxResults)))

	if params.SinceID != "" {
		query.Set("since_id", params.SinceID)
	}
	if !params.StartTime.IsZero() {
		query.Set("start_time", params.StartTime.UTC().Format(time.RFC3339))
	}

	var response xdomain.TweetsResponse
	path := fmt.Sprintf("/2/users/%s/tweets", url.PathEscape(params.UserID))
	if err := c.get(ctx, path, query, &response); err != nil {
		return nil, fmt.Errorf("erro ao buscar timeline do usuário %s: %w", params.UserID, err)
	}

	return &response, nil
}

func clampResults(n int) int {
	if n < minTimelineResults {
		return minTimelineResults
	}
	if n > maxTimelineResults {
		return maxTimelineResults
	}
	return n
}
