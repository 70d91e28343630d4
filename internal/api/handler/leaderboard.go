package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creator-campaign-api/internal/usecases/leaderboard"
	"github.com/vfg2006/creator-campaign-api/pkg/apiErrors"
)

// GetCampaignLeaderboard retorna o placar público da campanha. O parâmetro
// opcional limit corta as primeiras posições.
func GetCampaignLeaderboard(service leaderboard.LeaderboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não informado", nil)
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um inteiro positivo", nil)
				return
			}
			limit = parsed
		}

		snapshot, err := service.GetLeaderboardSnapshot(r.Context(), campaignID)
		if err != nil {
			logrus.WithError(err).WithField("campaign_id", campaignID).Error("Erro ao buscar leaderboard")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar leaderboard", nil)
			return
		}

		if limit > 0 && len(snapshot.Leaderboard) > limit {
			snapshot.Leaderboard = snapshot.Leaderboard[:limit]
		}

		w.Header().Set("Cache-Control", "public, max-age=15")
		writeJSON(w, http.StatusOK, snapshot)
	}
}
