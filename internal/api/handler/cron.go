package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creator-campaign-api/internal/domain"
	"github.com/vfg2006/creator-campaign-api/internal/scheduler"
	"github.com/vfg2006/creator-campaign-api/pkg/apiErrors"
	"github.com/vfg2006/creator-campaign-api/pkg/middleware"
)

const (
	CronJobTypeDiscovery = "discovery"
	CronJobTypeHydration = "hydration"
	CronJobTypeAll       = "all"
)

// CronJobServices contém os schedulers que podem ser disparados manualmente
type CronJobServices struct {
	Discovery scheduler.Runner
	Hydration scheduler.Runner
}

type cronRunResponse struct {
	Type    string              `json:"type"`
	Reports []*domain.RunReport `json:"reports"`
	Error   string              `json:"error,omitempty"`
}

// RunCronJob executa a rodada de forma síncrona e devolve os relatórios.
// Com campaign_id roda só aquela campanha; sem ele, todas as configuradas.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		campaignID := r.URL.Query().Get("campaign_id")

		logger := logrus.WithFields(logrus.Fields{
			"type":        cronType,
			"campaign_id": campaignID,
		})
		if claims, ok := middleware.TriggerFromContext(r.Context()); ok {
			logger = logger.WithField("issuer", claims.Issuer)
		}

		var runners []scheduler.Runner
		switch cronType {
		case CronJobTypeDiscovery:
			runners = []scheduler.Runner{services.Discovery}
		case CronJobTypeHydration:
			runners = []scheduler.Runner{services.Hydration}
		case CronJobTypeAll:
			runners = []scheduler.Runner{services.Discovery, services.Hydration}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: discovery, hydration, all", nil)
			return
		}

		logger.Info("Disparo manual de cron")

		response := cronRunResponse{Type: cronType, Reports: make([]*domain.RunReport, 0)}
		for _, runner := range runners {
			if runner == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de cron não disponível", nil)
				return
			}

			reports, err := run(r.Context(), runner, campaignID)
			response.Reports = append(response.Reports, reports...)
			if err != nil {
				logger.WithError(err).Error("Erro no disparo manual de cron")
				response.Error = err.Error()
				writeJSON(w, http.StatusInternalServerError, response)
				return
			}
		}

		if campaignID != "" && campaignNotFound(response.Reports) {
			apiErrors.WriteError(w, apiErrors.ErrCampaignNotFound, "Campanha não encontrada", response.Reports)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

func campaignNotFound(reports []*domain.RunReport) bool {
	for _, report := range reports {
		if report.SkipReason == domain.SkipCampaignNotFound {
			return true
		}
	}
	return false
}

func run(ctx context.Context, runner scheduler.Runner, campaignID string) ([]*domain.RunReport, error) {
	if campaignID == "" {
		return runner.RunAll(ctx)
	}

	report, err := runner.Run(ctx, campaignID)
	if report == nil {
		return nil, err
	}
	return []*domain.RunReport{report}, err
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.Discovery != nil {
			status[CronJobTypeDiscovery] = services.Discovery.GetStatus()
		}
		if services.Hydration != nil {
			status[CronJobTypeHydration] = services.Hydration.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
