package x

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	xdomain "github.com/vfg2006/creator-campaign-api/infrastructure/integrator/x/domain"
	"github.com/vfg2006/creator-campaign-api/infrastructure/integrator/x/xclient"
	"github.com/vfg2006/creator-campaign-api/internal/config"
	"github.com/vfg2006/creator-campaign-api/internal/domain"
)

// XIntegrator é a fonte de conteúdo social usada pelos schedulers.
type XIntegrator interface {
	Configured() bool
	FetchRecentPosts(ctx context.Context, authorID string, query domain.TimelineQuery) ([]domain.SocialPost, error)
	FetchPostsByID(ctx context.Context, ids []string) (map[string]domain.SocialPost, error)
}

type XService struct {
	cfg    *config.Config
	Client xclient.Client
}

func New(cfg *config.Config, client xclient.Client) XIntegrator {
	return &XService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *XService) Configured() bool {
	return s.cfg.X.BearerToken != ""
}

func (s *XService) FetchRecentPosts(ctx context.Context, authorID string, query domain.TimelineQuery) ([]domain.SocialPost, error) {
	resp, err := s.Client.GetUserTweets(ctx, xclient.UserTweetsParams{
		UserID:     authorID,
		SinceID:    query.SinceID,
		StartTime:  query.StartTime,
		MaxResults: query.MaxResults,
	})
	if err != nil {
		return nil, err
	}

	posts := make([]domain.SocialPost, 0, len(resp.Data))
	for _, tweet := range resp.Data {
		post := toSocialPost(tweet)
		if post.AuthorID == "" {
			post.AuthorID = authorID
		}
		posts = append(posts, post)
	}

	return posts, nil
}

// FetchPostsByID consulta em lotes de até 100 IDs. Posts apagados ou
// indisponíveis ficam de fora do mapa retornado.
func (s *XService) FetchPostsByID(ctx context.Context, ids []string) (map[string]domain.SocialPost, error) {
	posts := make(map[string]domain.SocialPost, len(ids))

	for start := 0; start < len(ids); start += xclient.MaxLookupIDs {
		end := min(start+xclient.MaxLookupIDs, len(ids))

		resp, err := s.Client.GetTweetsByIDs(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}

		for _, tweet := range resp.Data {
			posts[tweet.ID] = toSocialPost(tweet)
		}

		if len(resp.Errors) > 0 {
			logrus.WithFields(logrus.Fields{
				"unavailable": len(resp.Errors),
				"requested":   end - start,
			}).Debug("Posts indisponíveis na consulta por ID")
		}
	}

	return posts, nil
}

func toSocialPost(tweet xdomain.Tweet) domain.SocialPost {
	post := domain.SocialPost{
		ID:       tweet.ID,
		AuthorID: tweet.AuthorID,
		Text:     tweet.Text,
	}

	if tweet.CreatedAt != "" {
		if createdAt, err := time.Parse(time.RFC3339, tweet.CreatedAt); err == nil {
			post.CreatedAt = createdAt
		}
	}

	if tweet.PublicMetrics != nil {
		post.Metrics = &domain.Engagement{
			Favorites: tweet.PublicMetrics.LikeCount,
			Replies:   tweet.PublicMetrics.ReplyCount,
			Reshares:  tweet.PublicMetrics.RetweetCount,
			Quotes:    tweet.PublicMetrics.QuoteCount,
		}
	}

	return post
}
