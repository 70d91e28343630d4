package xclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	xdomain "github.com/vfg2006/creator-campaign-api/infrastructure/integrator/x/domain"
)

// MaxLookupIDs é o limite de IDs por chamada de /2/tweets.
const MaxLookupIDs = 100

func (c *XClient) GetTweetsByIDs(ctx context.Context, ids []string) (*xdomain.TweetsResponse, error) {
	if len(ids) == 0 {
		return &xdomain.TweetsResponse{}, nil
	}
	if len(ids) > MaxLookupIDs {
		return nil, fmt.Errorf("no máximo %d IDs por consulta, recebidos %d", MaxLookupIDs, len(ids))
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("tweet.fields", tweetFields)

	var response xdomain.TweetsResponse
	if err := c.get(ctx, "/2/tweets", query, &response); err != nil {
		return nil, fmt.Errorf("erro ao buscar %d posts: %w", len(ids), err)
	}

	return &response, nil
}
