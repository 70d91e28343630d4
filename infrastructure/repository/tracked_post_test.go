package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/creator-campaign-api/internal/domain"
)

// compact colapsa espaços e quebras de linha dos sufixos multilinha.
func compact(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}

func samplePost() *domain.TrackedPost {
	next := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	posted := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	return &domain.TrackedPost{
		CampaignID:        "cmp-1",
		PostID:            "1790000000000000001",
		AuthorID:          "auth-1",
		AuthorHandle:      "maria",
		AuthorDisplayName: "Maria",
		AuthorAvatarURL:   "https://cdn.example.com/maria.png",
		AuthorReach:       2000,
		Text:              "Loving the new campaign launch",
		Engagement:        domain.Engagement{Favorites: 30, Replies: 6, Reshares: 2, Quotes: 1},
		LastScore:         4.5,
		CurrentScore:      4.5,
		RefreshStage:      1,
		NextRefreshAt:     &next,
		PostedAt:          &posted,
	}
}

func TestUpsertDiscoveredQuery(t *testing.T) {
	post := samplePost()

	query, args, err := upsertDiscoveredQuery(post)
	require.NoError(t, err)

	sql := compact(query)

	assert.True(t, strings.HasPrefix(sql, "INSERT INTO tracked_posts (campaign_id,post_id,author_id,"), sql)
	assert.Contains(t, sql, "$18)")
	assert.NotContains(t, sql, "$19")
	assert.Contains(t, sql, "ON CONFLICT (campaign_id, post_id) DO UPDATE SET")
	assert.Contains(t, sql, "previous_score = tracked_posts.last_score, last_score = EXCLUDED.last_score,")
	assert.True(t, strings.HasSuffix(sql, "RETURNING previous_score, (xmax = 0) AS inserted"), sql)
	assert.NotContains(t, sql, "refresh_stage = EXCLUDED", "o estágio da escada não pode ser reiniciado por uma redescoberta")
	assert.NotContains(t, sql, "GREATEST")

	assert.Equal(t, []any{
		post.CampaignID,
		post.PostID,
		post.AuthorID,
		post.AuthorHandle,
		post.AuthorDisplayName,
		post.AuthorAvatarURL,
		post.AuthorReach,
		post.Text,
		post.Engagement.Favorites,
		post.Engagement.Replies,
		post.Engagement.Reshares,
		post.Engagement.Quotes,
		post.LastScore,
		post.CurrentScore,
		0,
		post.RefreshStage,
		post.NextRefreshAt,
		post.PostedAt,
	}, args)
}

func TestSaveMeasurementQuery(t *testing.T) {
	post := samplePost()
	post.LastScore = 6.25
	post.CurrentScore = 6.25
	post.RefreshStage = 2

	query, args, err := saveMeasurementQuery(post, 1, 4.5)
	require.NoError(t, err)

	sql := compact(query)

	assert.Equal(t,
		"UPDATE tracked_posts SET text = $1, favorites = $2, replies = $3, reshares = $4, quotes = $5, "+
			"current_score = $6, previous_score = last_score, last_score = $7, refresh_stage = $8, "+
			"next_refresh_at = $9, updated_at = CURRENT_TIMESTAMP "+
			"WHERE (campaign_id = $10 AND post_id = $11 AND refresh_stage = $12 AND last_score = $13)",
		sql,
	)

	assert.Equal(t, []any{
		post.Text,
		post.Engagement.Favorites,
		post.Engagement.Replies,
		post.Engagement.Reshares,
		post.Engagement.Quotes,
		6.25,
		6.25,
		2,
		post.NextRefreshAt,
		post.CampaignID,
		post.PostID,
		1,
		4.5,
	}, args)
}

func TestSaveMeasurementQuery_FrozenPost(t *testing.T) {
	post := samplePost()
	post.NextRefreshAt = nil

	_, args, err := saveMeasurementQuery(post, 3, post.LastScore)
	require.NoError(t, err)

	require.Len(t, args, 13)
	assert.Nil(t, args[8], "post congelado grava next_refresh_at nulo")
}
