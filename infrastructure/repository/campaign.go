// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/creator-campaign-api/infrastructure/database/postgres"
	"github.com/vfg2006/creator-campaign-api/internal/domain"
)

const campaignsTable = "campaigns"

type CampaignRepository interface {
	GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error)
	ListActiveCampaignIDs(ctx context.Context) ([]string, error)
}

type campaignRepository struct {
	conn postgres.Conn
}

func NewCampaignRepository(conn postgres.Conn) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

// GetCampaign retorna nil, nil quando a campanha não existe.
func (r *campaignRepository) GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select("id", "title", "keywords", "status", "created_at", "updated_at").
		From(campaignsTable).
		Where(squirrel.Eq{"id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	campaign := &domain.Campaign{}
	var status string

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&campaign.ID,
		&campaign.Title,
		pq.Array(&campaign.Keywords),
		&status,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar campanha: %w", err)
	}

	campaign.Status = domain.CampaignStatus(status)

	return campaign, nil
}

func (r *campaignRepository) ListActiveCampaignIDs(ctx context.Context) ([]string, error) {
	query, args, err := squirrel.
		Select("id").
		From(campaignsTable).
		Where(squirrel.Eq{"status": string(domain.CampaignStatusActive)}).
		OrderBy("id ASC").
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
