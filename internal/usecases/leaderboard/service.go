// Package leaderboard mantém o placar acumulado de cada campanha.
package leaderboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creator-campaign-api/infrastructure/repository"
	"github.com/vfg2006/creator-campaign-api/internal/domain"
)

// Aggregator soma deltas de pontuação ao placar da campanha.
type Aggregator interface {
	Merge(ctx context.Context, campaignID string, deltas []domain.ScoreDelta) (*domain.Leaderboard, error)
}

type LeaderboardService interface {
	Aggregator
	GetLeaderboardSnapshot(ctx context.Context, campaignID string) (*domain.LeaderboardResponse, error)
}

type Service struct {
	LeaderboardRepository repository.LeaderboardRepository
}

func NewLeaderboardService(leaderboardRepository repository.LeaderboardRepository) LeaderboardService {
	return &Service{
		LeaderboardRepository: leaderboardRepository,
	}
}

// Merge é aditivo: a pontuação de um autor só cresce pelos deltas recebidos.
// Deltas não positivos são ignorados e, sem deltas válidos, nada é gravado.
func (s *Service) Merge(ctx context.Context, campaignID string, deltas []domain.ScoreDelta) (*domain.Leaderboard, error) {
	valid := make([]domain.ScoreDelta, 0, len(deltas))
	for _, delta := range deltas {
		if delta.AuthorID == "" || math.IsNaN(delta.Delta) || math.IsInf(delta.Delta, 0) {
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaignID,
				"author_id":   delta.AuthorID,
			}).Warn("Delta inválido descartado")
			continue
		}
		if delta.Delta < 0 {
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaignID,
				"author_id":   delta.AuthorID,
				"delta":       delta.Delta,
			}).Warn("Delta negativo descartado")
			continue
		}
		if delta.Delta == 0 {
			continue
		}
		valid = append(valid, delta)
	}

	if len(valid) == 0 {
		return nil, nil
	}

	updated, err := s.LeaderboardRepository.UpdateLeaderboard(ctx, campaignID, func(rows []domain.LeaderboardRow) ([]domain.LeaderboardRow, error) {
		return MergeRows(rows, valid), nil
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao atualizar leaderboard da campanha %s: %w", campaignID, err)
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"authors":     len(valid),
		"rows":        len(updated.Rows),
	}).Info("Leaderboard atualizado")

	return updated, nil
}

func (s *Service) GetLeaderboardSnapshot(ctx context.Context, campaignID string) (*domain.LeaderboardResponse, error) {
	leaderboard, err := s.LeaderboardRepository.GetLeaderboard(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if leaderboard == nil {
		return &domain.LeaderboardResponse{
			CampaignID:  campaignID,
			Leaderboard: []domain.LeaderboardRow{},
			LastUpdate:  time.Now(),
		}, nil
	}

	return &domain.LeaderboardResponse{
		CampaignID:  campaignID,
		Leaderboard: leaderboard.Rows,
		LastUpdate:  leaderboard.UpdatedAt,
	}, nil
}

// MergeRows soma os deltas às linhas atuais por autor e reordena por
// pontuação. Linhas de autores sem delta são preservadas. Em empate a ordem
// anterior é mantida e autores novos entram na ordem dos deltas.
func MergeRows(current []domain.LeaderboardRow, deltas []domain.ScoreDelta) []domain.LeaderboardRow {
	merged := make([]domain.LeaderboardRow, 0, len(current)+len(deltas))
	index := make(map[string]int, len(current)+len(deltas))
	rankBefore := make(map[string]int, len(current))

	for _, row := range current {
		if i, exists := index[row.AuthorID]; exists {
			merged[i].Score += row.Score
			continue
		}
		index[row.AuthorID] = len(merged)
		rankBefore[row.AuthorID] = len(merged) + 1
		merged = append(merged, row)
	}

	for _, delta := range deltas {
		if delta.Delta <= 0 {
			continue
		}

		if i, exists := index[delta.AuthorID]; exists {
			row := &merged[i]
			row.Score += delta.Delta
			row.Handle = latest(row.Handle, delta.Handle)
			row.DisplayName = latest(row.DisplayName, delta.DisplayName)
			row.AvatarURL = latest(row.AvatarURL, delta.AvatarURL)
			continue
		}

		index[delta.AuthorID] = len(merged)
		merged = append(merged, domain.LeaderboardRow{
			AuthorID:    delta.AuthorID,
			Handle:      delta.Handle,
			DisplayName: delta.DisplayName,
			AvatarURL:   delta.AvatarURL,
			Score:       delta.Delta,
		})
	}

	updateRanks(merged, rankBefore)

	return merged
}

func updateRanks(rows []domain.LeaderboardRow, rankBefore map[string]int) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})

	for i := range rows {
		row := &rows[i]
		row.Rank = i + 1

		if before, exists := rankBefore[row.AuthorID]; exists {
			row.PreviousRank = before
			row.RankChange = before - row.Rank
			continue
		}

		row.PreviousRank = 0
		row.RankChange = 0
	}
}

func latest(current, candidate string) string {
	if candidate != "" {
		return candidate
	}
	return current
}
