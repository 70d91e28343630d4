// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

type CampaignStatus string

const (
	CampaignStatusActive CampaignStatus = "active"
	CampaignStatusEnded  CampaignStatus = "ended"
)

type Campaign struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Keywords  []string       `json:"keywords"`
	Status    CampaignStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (c *Campaign) IsEnded() bool {
	return c.Status == CampaignStatusEnded
}
