package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/creator-campaign-api/infrastructure/database/postgres"
	"github.com/vfg2006/creator-campaign-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const leaderboardsTable = "leaderboards"

// LeaderboardMutation recebe as linhas atuais e devolve o conjunto completo a persistir.
type LeaderboardMutation func(rows []domain.LeaderboardRow) ([]domain.LeaderboardRow, error)

type LeaderboardRepository interface {
	GetLeaderboard(ctx context.Context, campaignID string) (*domain.Leaderboard, error)
	UpdateLeaderboard(ctx context.Context, campaignID string, mutate LeaderboardMutation) (*domain.Leaderboard, error)
}

type leaderboardRepository struct {
	conn postgres.Conn
}

func NewLeaderboardRepository(conn postgres.Conn) LeaderboardRepository {
	return &leaderboardRepository{
		conn: conn,
	}
}

// GetLeaderboard retorna nil, nil quando a campanha ainda não tem leaderboard.
func (r *leaderboardRepository) GetLeaderboard(ctx context.Context, campaignID string) (*domain.Leaderboard, error) {
	query, args, err := squirrel.
		Select("data", "updated_at").
		From(leaderboardsTable).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	leaderboard, err := r.scanLeaderboard(r.conn.QueryRowContext(ctx, query, args...), campaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar leaderboard: %w", err)
	}

	return leaderboard, nil
}

// UpdateLeaderboard aplica a mutação com a linha do documento bloqueada
// (SELECT ... FOR UPDATE), então merges concorrentes da mesma campanha
// são serializados.
func (r *leaderboardRepository) UpdateLeaderboard(ctx context.Context, campaignID string, mutate LeaderboardMutation) (*domain.Leaderboard, error) {
	var updated *domain.Leaderboard

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		ensure, args, err := squirrel.StatementBuilder.
			Insert(leaderboardsTable).
			Columns("campaign_id", "data").
			Values(campaignID, "[]").
			Suffix("ON CONFLICT (campaign_id) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir query de inserção: %w", err)
		}
		if _, err := tx.ExecContext(ctx, ensure, args...); err != nil {
			return fmt.Errorf("erro ao criar leaderboard: %w", err)
		}

		lock, args, err := squirrel.
			Select("data", "updated_at").
			From(leaderboardsTable).
			Where(squirrel.Eq{"campaign_id": campaignID}).
			Suffix("FOR UPDATE").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		current, err := r.scanLeaderboard(tx.QueryRowContext(ctx, lock, args...), campaignID)
		if err != nil {
			return fmt.Errorf("erro ao bloquear leaderboard: %w", err)
		}

		rows, err := mutate(current.Rows)
		if err != nil {
			return err
		}

		data, err := json.Marshal(rows)
		if err != nil {
			return fmt.Errorf("erro ao serializar leaderboard: %w", err)
		}

		now := time.Now().UTC()
		update, args, err := squirrel.
			Update(leaderboardsTable).
			Set("data", string(data)).
			Set("updated_at", now).
			Where(squirrel.Eq{"campaign_id": campaignID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir query de atualização: %w", err)
		}
		if _, err := tx.ExecContext(ctx, update, args...); err != nil {
			return fmt.Errorf("erro ao gravar leaderboard: %w", err)
		}

		updated = &domain.Leaderboard{
			CampaignID: campaignID,
			Rows:       rows,
			UpdatedAt:  now,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *leaderboardRepository) scanLeaderboard(row *sql.Row, campaignID string) (*domain.Leaderboard, error) {
	var (
		data      []byte
		updatedAt time.Time
	)

	if err := row.Scan(&data, &updatedAt); err != nil {
		return nil, err
	}

	rows := make([]domain.LeaderboardRow, 0)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("erro ao desserializar leaderboard: %w", err)
		}
	}

	return &domain.Leaderboard{
		CampaignID: campaignID,
		Rows:       rows,
		UpdatedAt:  updatedAt,
	}, nil
}
