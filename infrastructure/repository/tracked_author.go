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

const (
	trackedAuthorsTable = "tracked_authors ta"
	authorCursorsTable  = "author_cursors"
)

type TrackedAuthorRepository interface {
	ListDueAuthors(ctx context.Context, campaignID string, now time.Time, limit int) ([]*domain.TrackedAuthor, error)
	UpdateAuthorCursor(ctx context.Context, cursor domain.AuthorCursor) error
	SaveOrUpdateAuthor(ctx context.Context, author *domain.TrackedAuthor) error
}

type trackedAuthorRepository struct {
	conn postgres.Conn
}

func NewTrackedAuthorRepository(conn postgres.Conn) TrackedAuthorRepository {
	return &trackedAuthorRepository{
		conn: conn,
	}
}

// ListDueAuthors retorna os autores habilitados cujo próximo poll já venceu
// para a campanha, dos consultados há mais tempo para os mais recentes.
func (r *trackedAuthorRepository) ListDueAuthors(ctx context.Context, campaignID string, now time.Time, limit int) ([]*domain.TrackedAuthor, error) {
	query, args, err := squirrel.
		Select(
			"ta.id",
			"ta.handle",
			"ta.display_name",
			"ta.avatar_url",
			"ta.followers",
			"ta.enabled",
			"COALESCE(ac.since_id, '')",
			"ac.last_polled_at",
			"ac.next_poll_at",
		).
		From(trackedAuthorsTable).
		LeftJoin(authorCursorsTable+" ac ON ac.author_id = ta.id AND ac.campaign_id = ?", campaignID).
		Where(squirrel.Eq{"ta.enabled": true}).
		Where(squirrel.Or{
			squirrel.Eq{"ac.next_poll_at": nil},
			squirrel.LtOrEq{"ac.next_poll_at": now},
		}).
		OrderBy("ac.last_polled_at ASC NULLS FIRST", "ta.id ASC").
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

	authors := make([]*domain.TrackedAuthor, 0, limit)
	for rows.Next() {
		author, err := r.scanTrackedAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear autor: %w", err)
		}
		authors = append(authors, author)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return authors, nil
}

// UpdateAuthorCursor grava o resultado do poll. O since_id nunca retrocede:
// IDs numéricos são comparados por tamanho e depois lexicograficamente.
func (r *trackedAuthorRepository) UpdateAuthorCursor(ctx context.Context, cursor domain.AuthorCursor) error {
	query, args, err := authorCursorQuery(cursor)
	if err != nil {
		return fmt.Errorf("erro ao construir query de cursor: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar cursor do autor %s: %w", cursor.AuthorID, err)
	}

	return nil
}

func authorCursorQuery(cursor domain.AuthorCursor) (string, []any, error) {
	return squirrel.StatementBuilder.
		Insert(authorCursorsTable).
		Columns("campaign_id", "author_id", "since_id", "last_polled_at", "next_poll_at").
		Values(cursor.CampaignID, cursor.AuthorID, cursor.SinceID, cursor.LastPolledAt, cursor.NextPollAt).
		Suffix(`
			ON CONFLICT (campaign_id, author_id) DO UPDATE SET
				since_id = CASE
					WHEN EXCLUDED.since_id = '' THEN author_cursors.since_id
					WHEN length(EXCLUDED.since_id) > length(author_cursors.since_id) THEN EXCLUDED.since_id
					WHEN length(EXCLUDED.since_id) = length(author_cursors.since_id)
						AND EXCLUDED.since_id COLLATE "C" > author_cursors.since_id COLLATE "C" THEN EXCLUDED.since_id
					ELSE author_cursors.since_id
				END,
				last_polled_at = EXCLUDED.last_polled_at,
				next_poll_at = EXCLUDED.next_poll_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *trackedAuthorRepository) SaveOrUpdateAuthor(ctx context.Context, author *domain.TrackedAuthor) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("tracked_authors").
		Columns("id", "handle", "display_name", "avatar_url", "followers", "enabled").
		Values(author.ID, author.Handle, author.DisplayName, author.AvatarURL, author.Followers, author.Enabled).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				handle = EXCLUDED.handle,
				display_name = EXCLUDED.display_name,
				avatar_url = EXCLUDED.avatar_url,
				followers = EXCLUDED.followers,
				enabled = EXCLUDED.enabled,
				updated_at = CURRENT_TIMESTAMP
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao salvar autor %s: %w", author.ID, err)
	}

	return nil
}

func (r *trackedAuthorRepository) scanTrackedAuthor(rows *sql.Rows) (*domain.TrackedAuthor, error) {
	author := &domain.TrackedAuthor{}
	var lastPolledAt, nextPollAt sql.NullTime

	err := rows.Scan(
		&author.ID,
		&author.Handle,
		&author.DisplayName,
		&author.AvatarURL,
		&author.Followers,
		&author.Enabled,
		&author.SinceID,
		&lastPolledAt,
		&nextPollAt,
	)
	if err != nil {
		return nil, err
	}

	if lastPolledAt.Valid {
		author.LastPolledAt = &lastPolledAt.Time
	}
	if nextPollAt.Valid {
		author.NextPollAt = &nextPollAt.Time
	}

	return author, nil
}
