package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/creator-campaign-api/infrastructure/database/postgres"
	"github.com/vfg2006/creator-campaign-api/internal/domain"
)

const trackedPostsTable = "tracked_posts"

var trackedPostColumns = []string{
	"campaign_id",
	"post_id",
	"author_id",
	"author_handle",
	"author_display_name",
	"author_avatar_url",
	"author_reach",
	"text",
	"favorites",
	"replies",
	"reshares",
	"quotes",
	"last_score",
	"current_score",
	"refresh_stage",
	"next_refresh_at",
	"posted_at",
	"created_at",
	"updated_at",
}

// UpsertResult informa a linha de base creditada antes da escrita.
type UpsertResult struct {
	PreviousScore float64
	Inserted      bool
}

type TrackedPostRepository interface {
	UpsertDiscovered(ctx context.Context, post *domain.TrackedPost) (*UpsertResult, error)
	ListDueForRefresh(ctx context.Context, campaignID string, now time.Time, terminalStage, limit int) ([]*domain.TrackedPost, error)
	SaveMeasurement(ctx context.Context, post *domain.TrackedPost, expectedStage int, expectedScore float64) (bool, error)
	Freeze(ctx context.Context, campaignID, postID string, terminalStage int) error
	ListCampaignsWithDuePosts(ctx context.Context, now time.Time, terminalStage int) ([]string, error)
}

type trackedPostRepository struct {
	conn postgres.Conn
}

func NewTrackedPostRepository(conn postgres.Conn) TrackedPostRepository {
	return &trackedPostRepository{
		conn: conn,
	}
}

// UpsertDiscovered insere o post descoberto ou atualiza o engajamento de um
// post já rastreado. Em conflito o estágio da escada é preservado e last_score
// passa a ser a nova medição; a anterior volta em PreviousScore.
func (r *trackedPostRepository) UpsertDiscovered(ctx context.Context, post *domain.TrackedPost) (*UpsertResult, error) {
	query, args, err := upsertDiscoveredQuery(post)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	result := &UpsertResult{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&result.PreviousScore, &result.Inserted)
	if err != nil {
		return nil, fmt.Errorf("erro ao salvar post %s: %w", post.PostID, err)
	}

	return result, nil
}

// upsertDiscoveredQuery devolve em previous_score o last_score anterior à
// escrita; num insert ele é 0.
func upsertDiscoveredQuery(post *domain.TrackedPost) (string, []any, error) {
	return squirrel.StatementBuilder.
		Insert(trackedPostsTable).
		Columns(
			"campaign_id",
			"post_id",
			"author_id",
			"author_handle",
			"author_display_name",
			"author_avatar_url",
			"author_reach",
			"text",
			"favorites",
			"replies",
			"reshares",
			"quotes",
			"last_score",
			"current_score",
			"previous_score",
			"refresh_stage",
			"next_refresh_at",
			"posted_at",
		).
		Values(
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
		).
		Suffix(`
			ON CONFLICT (campaign_id, post_id) DO UPDATE SET
				author_handle = COALESCE(NULLIF(EXCLUDED.author_handle, ''), tracked_posts.author_handle),
				author_display_name = COALESCE(NULLIF(EXCLUDED.author_display_name, ''), tracked_posts.author_display_name),
				author_avatar_url = COALESCE(NULLIF(EXCLUDED.author_avatar_url, ''), tracked_posts.author_avatar_url),
				text = EXCLUDED.text,
				favorites = EXCLUDED.favorites,
				replies = EXCLUDED.replies,
				reshares = EXCLUDED.reshares,
				quotes = EXCLUDED.quotes,
				current_score = EXCLUDED.current_score,
				previous_score = tracked_posts.last_score,
				last_score = EXCLUDED.last_score,
				updated_at = CURRENT_TIMESTAMP
			RETURNING previous_score, (xmax = 0) AS inserted
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// ListDueForRefresh nunca retorna posts congelados (next_refresh_at nulo).
func (r *trackedPostRepository) ListDueForRefresh(ctx context.Context, campaignID string, now time.Time, terminalStage, limit int) ([]*domain.TrackedPost, error) {
	query, args, err := squirrel.
		Select(trackedPostColumns...).
		From(trackedPostsTable).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		Where(squirrel.NotEq{"next_refresh_at": nil}).
		Where(squirrel.LtOrEq{"next_refresh_at": now}).
		Where(squirrel.Lt{"refresh_stage": terminalStage}).
		OrderBy("next_refresh_at ASC", "post_id ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.TrackedPost, 0, limit)
	for rows.Next() {
		post, err := r.scanTrackedPost(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return posts, nil
}

// SaveMeasurement grava uma nova medição somente se o post ainda estiver no
// estágio e na linha de base lidos. Retorna false quando outra execução já
// avançou o post.
func (r *trackedPostRepository) SaveMeasurement(ctx context.Context, post *domain.TrackedPost, expectedStage int, expectedScore float64) (bool, error) {
	query, args, err := saveMeasurementQuery(post, expectedStage, expectedScore)
	if err != nil {
		return false, fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao salvar medição do post %s: %w", post.PostID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter linhas afetadas: %w", err)
	}

	return affected == 1, nil
}

func saveMeasurementQuery(post *domain.TrackedPost, expectedStage int, expectedScore float64) (string, []any, error) {
	return squirrel.
		Update(trackedPostsTable).
		Set("text", post.Text).
		Set("favorites", post.Engagement.Favorites).
		Set("replies", post.Engagement.Replies).
		Set("reshares", post.Engagement.Reshares).
		Set("quotes", post.Engagement.Quotes).
		Set("current_score", post.CurrentScore).
		Set("previous_score", squirrel.Expr("last_score")).
		Set("last_score", post.LastScore).
		Set("refresh_stage", post.RefreshStage).
		Set("next_refresh_at", post.NextRefreshAt).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.And{
			squirrel.Eq{"campaign_id": post.CampaignID},
			squirrel.Eq{"post_id": post.PostID},
			squirrel.Eq{"refresh_stage": expectedStage},
			squirrel.Eq{"last_score": expectedScore},
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *trackedPostRepository) Freeze(ctx context.Context, campaignID, postID string, terminalStage int) error {
	query, args, err := squirrel.
		Update(trackedPostsTable).
		Set("refresh_stage", terminalStage).
		Set("next_refresh_at", nil).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"campaign_id": campaignID, "post_id": postID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao congelar post %s: %w", postID, err)
	}

	return nil
}

// ListCampaignsWithDuePosts inclui campanhas encerradas cuja escada ainda não terminou.
func (r *trackedPostRepository) ListCampaignsWithDuePosts(ctx context.Context, now time.Time, terminalStage int) ([]string, error) {
	query, args, err := squirrel.
		Select("DISTINCT campaign_id").
		From(trackedPostsTable).
		Where(squirrel.NotEq{"next_refresh_at": nil}).
		Where(squirrel.LtOrEq{"next_refresh_at": now}).
		Where(squirrel.Lt{"refresh_stage": terminalStage}).
		OrderBy("campaign_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ids, nil
}

func (r *trackedPostRepository) scanTrackedPost(rows *sql.Rows) (*domain.TrackedPost, error) {
	post := &domain.TrackedPost{}
	var nextRefreshAt, postedAt sql.NullTime

	err := rows.Scan(
		&post.CampaignID,
		&post.PostID,
		&post.AuthorID,
		&post.AuthorHandle,
		&post.AuthorDisplayName,
		&post.AuthorAvatarURL,
		&post.AuthorReach,
		&post.Text,
		&post.Engagement.Favorites,
		&post.Engagement.Replies,
		&post.Engagement.Reshares,
		&post.Engagement.Quotes,
		&post.LastScore,
		&post.CurrentScore,
		&post.RefreshStage,
		&nextRefreshAt,
		&postedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if nextRefreshAt.Valid {
		post.NextRefreshAt = &nextRefreshAt.Time
	}
	if postedAt.Valid {
		post.PostedAt = &postedAt.Time
	}

	return post, nil
}
