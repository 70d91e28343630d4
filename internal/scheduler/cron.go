// Package scheduler contém as execuções limitadas de descoberta e reidratação
// e os crons que as disparam por campanha.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creator-campaign-api/internal/domain"
)

// Runner é o contrato exposto aos handlers e à CLI.
type Runner interface {
	Run(ctx context.Context, campaignID string) (*domain.RunReport, error)
	RunAll(ctx context.Context) ([]*domain.RunReport, error)
	GetStatus() map[string]interface{}
}

type runFunc func(ctx context.Context, campaignID string) (*domain.RunReport, error)

type campaignLister func(ctx context.Context) ([]string, error)

// cronRunner agenda uma execução por campanha e guarda o estado da última
// rodada para o endpoint de status.
type cronRunner struct {
	name         string
	scheduler    *gocron.Scheduler
	cronSchedule string
	enabled      bool
	campaignIDs  []string
	listActive   campaignLister
	run          runFunc

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReports         []*domain.RunReport
}

func newCronRunner(name, cronSchedule string, enabled bool, campaignIDs []string, listActive campaignLister) *cronRunner {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": cronSchedule,
		"enabled":       enabled,
		"campaigns":     len(campaignIDs),
	}).Infof("Configuração do agendador de %s carregada", name)

	return &cronRunner{
		name:         name,
		scheduler:    gocron.NewScheduler(time.UTC),
		cronSchedule: cronSchedule,
		enabled:      enabled,
		campaignIDs:  campaignIDs,
		listActive:   listActive,
	}
}

func (c *cronRunner) Start(ctx context.Context) error {
	if !c.enabled {
		logrus.Infof("Cron de %s desabilitada por configuração", c.name)
		return nil
	}

	logrus.WithField("cron", c.cronSchedule).Infof("Iniciando cron de %s", c.name)

	_, err := c.scheduler.Cron(c.cronSchedule).Do(func() {
		if _, err := c.RunAll(ctx); err != nil {
			logrus.WithError(err).Errorf("Erro na execução de %s", c.name)
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar %s: %w", c.name, err)
	}

	c.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Infof("Parando cron de %s", c.name)
		c.scheduler.Stop()
	}()

	return nil
}

// RunAll executa cada campanha em sequência. Um erro em uma campanha não
// impede as demais; o primeiro erro é devolvido ao final.
func (c *cronRunner) RunAll(ctx context.Context) ([]*domain.RunReport, error) {
	c.syncMutex.Lock()
	if c.syncRunning {
		c.syncMutex.Unlock()
		logrus.Warnf("Execução de %s já está em andamento", c.name)
		return nil, nil
	}
	c.syncRunning = true
	c.lastSyncStartedAt = time.Now()
	c.syncMutex.Unlock()

	reports := make([]*domain.RunReport, 0)
	defer func() {
		c.syncMutex.Lock()
		c.syncRunning = false
		c.lastSyncCompletedAt = time.Now()
		c.lastReports = reports
		c.syncMutex.Unlock()
	}()

	campaignIDs, err := c.resolveCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar campanhas: %w", err)
	}

	if len(campaignIDs) == 0 {
		logrus.Infof("Nenhuma campanha para %s", c.name)
		return reports, nil
	}

	var firstErr error
	for _, campaignID := range campaignIDs {
		if ctx.Err() != nil {
			break
		}

		report, err := c.run(ctx, campaignID)
		if report != nil {
			reports = append(reports, report)
		}
		if err != nil {
			logrus.WithError(err).WithField("campaign_id", campaignID).Errorf("Erro na execução de %s", c.name)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return reports, firstErr
}

func (c *cronRunner) resolveCampaigns(ctx context.Context) ([]string, error) {
	if len(c.campaignIDs) > 0 {
		return c.campaignIDs, nil
	}
	return c.listActive(ctx)
}

func (c *cronRunner) GetStatus() map[string]interface{} {
	c.syncMutex.Lock()
	defer c.syncMutex.Unlock()

	status := map[string]interface{}{
		"sync_enabled":      c.enabled,
		"sync_running":      c.syncRunning,
		"cron_schedule":     c.cronSchedule,
		"configured_scopes": c.campaignIDs,
	}

	if !c.lastSyncStartedAt.IsZero() {
		status["last_sync_started_at"] = c.lastSyncStartedAt.Format(time.RFC3339)
	}
	if !c.lastSyncCompletedAt.IsZero() {
		status["last_sync_completed_at"] = c.lastSyncCompletedAt.Format(time.RFC3339)
		status["last_reports"] = c.lastReports
	}

	return status
}

// newReport abre o relatório de uma execução com um ID curto para os logs.
func newReport(campaignID string, kind domain.RunKind, now time.Time, newID func() (string, error)) *domain.RunReport {
	runID, err := newID()
	if err != nil {
		runID = fmt.Sprintf("%s-%d", kind, now.UnixNano())
	}

	return &domain.RunReport{
		RunID:      runID,
		CampaignID: campaignID,
		Kind:       kind,
		StartedAt:  now,
	}
}
