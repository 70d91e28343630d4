package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/creator-campaign-api/internal/domain"
)

func TestCronRunner_RunAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Deve usar as campanhas configuradas", func(t *testing.T) {
		var visited []string
		runner := newCronRunner("teste", "* * * * *", true, []string{"c1", "c2"}, func(context.Context) ([]string, error) {
			t.Fatal("não deve listar campanhas ativas")
			return nil, nil
		})
		runner.run = func(_ context.Context, campaignID string) (*domain.RunReport, error) {
			visited = append(visited, campaignID)
			return &domain.RunReport{CampaignID: campaignID}, nil
		}

		reports, err := runner.RunAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"c1", "c2"}, visited)
		assert.Len(t, reports, 2)
	})

	t.Run("Sem configuração lista as campanhas ativas", func(t *testing.T) {
		runner := newCronRunner("teste", "* * * * *", true, nil, func(context.Context) ([]string, error) {
			return []string{"c9"}, nil
		})
		runner.run = func(_ context.Context, campaignID string) (*domain.RunReport, error) {
			return &domain.RunReport{CampaignID: campaignID}, nil
		}

		reports, err := runner.RunAll(ctx)

		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, "c9", reports[0].CampaignID)
	})

	t.Run("Erro em uma campanha não interrompe as demais", func(t *testing.T) {
		calls := 0
		runner := newCronRunner("teste", "* * * * *", true, []string{"c1", "c2"}, nil)
		runner.run = func(_ context.Context, campaignID string) (*domain.RunReport, error) {
			calls++
			if campaignID == "c1" {
				return &domain.RunReport{CampaignID: campaignID}, assert.AnError
			}
			return &domain.RunReport{CampaignID: campaignID}, nil
		}

		reports, err := runner.RunAll(ctx)

		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 2, calls)
		assert.Len(t, reports, 2)
	})

	t.Run("Erro ao listar campanhas", func(t *testing.T) {
		runner := newCronRunner("teste", "* * * * *", true, nil, func(context.Context) ([]string, error) {
			return nil, errors.New("db fora")
		})

		_, err := runner.RunAll(ctx)

		assert.Error(t, err)
	})

	t.Run("Não deve executar em paralelo", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		runner := newCronRunner("teste", "* * * * *", true, []string{"c1"}, nil)
		runner.run = func(_ context.Context, campaignID string) (*domain.RunReport, error) {
			close(started)
			<-release
			return &domain.RunReport{CampaignID: campaignID}, nil
		}

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = runner.RunAll(ctx)
		}()

		<-started
		reports, err := runner.RunAll(ctx)
		assert.NoError(t, err)
		assert.Nil(t, reports)
		assert.Equal(t, true, runner.GetStatus()["sync_running"])

		close(release)
		wg.Wait()

		status := runner.GetStatus()
		assert.Equal(t, false, status["sync_running"])
		assert.Contains(t, status, "last_sync_completed_at")
	})
}

func TestCronRunner_StartDisabled(t *testing.T) {
	runner := newCronRunner("teste", "* * * * *", false, nil, nil)

	assert.NoError(t, runner.Start(context.Background()))
	assert.Equal(t, false, runner.GetStatus()["sync_enabled"])
}

func TestCronRunner_StartInvalidCron(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := newCronRunner("teste", "expressão inválida", true, nil, nil)

	assert.Error(t, runner.Start(ctx))
}
