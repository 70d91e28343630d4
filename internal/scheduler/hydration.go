package scheduler

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/vfg2006/creator-campaign-api/infrastructure/integrator/x"
	"github.com/vfg2006/creator-campaign-api/infrastructure/lock"
	"github.com/vfg2006/creator-campaign-api/infrastructure/repository"
	"github.com/vfg2006/creator-campaign-api/internal/config"
	"github.com/vfg2006/creator-campaign-api/internal/domain"
	"github.com/vfg2006/creator-campaign-api/internal/scoring"
	"github.com/vfg2006/creator-campaign-api/internal/usecases/leaderboard"
	"github.com/vfg2006/creator-campaign-api/pkg/log"
	"github.com/vfg2006/creator-campaign-api/pkg/utils"
)

// reserva mínima antes de buscar mais um lote de métricas
const hydrationChunkReserve = 300 * time.Millisecond

type HydrationConfig struct {
	CronSchedule string
	SyncEnabled  bool
	SoftBudget   time.Duration
	BatchSize    int
	FetchChunk   int
}

// HydrationService remede os posts rastreados seguindo a escada de
// reidratação e credita ao autor apenas o crescimento da pontuação.
type HydrationService struct {
	*cronRunner

	postRepo   repository.TrackedPostRepository
	source     x.XIntegrator
	aggregator leaderboard.Aggregator
	locker     lock.Locker
	engine     *scoring.Engine
	config     HydrationConfig
	ladder     Ladder
	now        func() time.Time
	newID      func() (string, error)
}

func NewHydrationService(
	postRepo repository.TrackedPostRepository,
	source x.XIntegrator,
	aggregator leaderboard.Aggregator,
	locker lock.Locker,
	engine *scoring.Engine,
	cfg *config.Config,
) *HydrationService {
	hydrationConfig := HydrationConfig{
		CronSchedule: cfg.Hydration.CronSchedule,
		SyncEnabled:  cfg.Hydration.Enabled,
		SoftBudget:   cfg.Hydration.SoftBudget,
		BatchSize:    cfg.Hydration.BatchSize,
		FetchChunk:   cfg.Hydration.FetchChunk,
	}

	s := &HydrationService{
		postRepo:   postRepo,
		source:     source,
		aggregator: aggregator,
		locker:     locker,
		engine:     engine,
		config:     hydrationConfig,
		ladder:     Ladder(cfg.Hydration.Ladder),
		now:        time.Now,
		newID:      utils.GenerateID,
	}

	// campanhas encerradas continuam sendo reidratadas até o fim da escada
	s.cronRunner = newCronRunner("reidratação", hydrationConfig.CronSchedule, hydrationConfig.SyncEnabled, cfg.Campaigns.IDs, s.campaignsWithDuePosts)
	s.cronRunner.run = s.Run

	return s
}

func (s *HydrationService) campaignsWithDuePosts(ctx context.Context) ([]string, error) {
	return s.postRepo.ListCampaignsWithDuePosts(ctx, s.now(), s.ladder.Terminal())
}

// Run reidrata os posts vencidos da campanha em lotes, parando entre lotes
// quando o orçamento acaba.
func (s *HydrationService) Run(ctx context.Context, campaignID string) (*domain.RunReport, error) {
	report := newReport(campaignID, domain.RunKindHydration, s.now(), s.newID)
	ctx = log.WithRun(ctx, report.RunID, campaignID)
	logger := log.ForContext(ctx).WithField("kind", report.Kind)
	budget := NewBudget(s.config.SoftBudget, s.now)

	defer func() {
		report.FinishedAt = s.now()
		logger.WithFields(log.Fields{
			"skip_reason":      report.SkipReason,
			"posts_refreshed":  report.PostsRefreshed,
			"posts_frozen":     report.PostsFrozen,
			"authors_credited": report.AuthorsCredited,
			"fetch_failures":   report.FetchFailures,
			"budget_exhausted": report.BudgetExhausted,
			"duration_ms":      report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
		}).Info("Reidratação finalizada")
	}()

	if !s.source.Configured() {
		report.SkipReason = domain.SkipMissingCredential
		return report, nil
	}

	unlock, err := s.locker.Acquire(ctx, "hydration:"+campaignID)
	if errors.Is(err, lock.ErrNotAcquired) {
		report.SkipReason = domain.SkipRunInProgress
		return report, nil
	}
	if err != nil {
		logger.WithError(err).Warn("Lock indisponível, seguindo sem exclusão mútua")
	} else {
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				logger.WithError(err).Warn("Erro ao liberar lock de reidratação")
			}
		}()
	}

	due, err := s.postRepo.ListDueForRefresh(ctx, campaignID, s.now(), s.ladder.Terminal(), s.config.BatchSize)
	if err != nil {
		return report, err
	}
	if len(due) == 0 {
		report.SkipReason = domain.SkipNoDuePosts
		return report, nil
	}

	deltas := newDeltaAccumulator()
	chunk := max(s.config.FetchChunk, 1)

	for start := 0; start < len(due); start += chunk {
		if ctx.Err() != nil || !budget.Allows(hydrationChunkReserve) {
			report.BudgetExhausted = true
			break
		}

		batch := due[start:min(start+chunk, len(due))]
		ids := make([]string, 0, len(batch))
		for _, post := range batch {
			ids = append(ids, post.PostID)
		}

		live, err := s.source.FetchPostsByID(ctx, ids)
		if err != nil {
			// os posts continuam vencidos e voltam na próxima rodada
			report.FetchFailures++
			logger.WithError(err).WithField("posts", len(ids)).Warn("Erro ao buscar métricas do lote")
			continue
		}

		for _, post := range batch {
			s.refreshPost(ctx, post, live, deltas, report)
		}
	}

	report.AuthorsCredited = deltas.Len()
	report.DeltaTotal = deltas.Total()

	if deltas.Len() > 0 {
		if _, err := s.aggregator.Merge(context.WithoutCancel(ctx), campaignID, deltas.Rows()); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (s *HydrationService) refreshPost(
	ctx context.Context,
	post *domain.TrackedPost,
	live map[string]domain.SocialPost,
	deltas *deltaAccumulator,
	report *domain.RunReport,
) {
	logger := log.ForContext(ctx).WithField("post_id", post.PostID)

	current, ok := live[post.PostID]
	if !ok || current.Metrics == nil {
		// apagado, privado ou sem métricas: nunca mais é consultado
		if err := s.postRepo.Freeze(ctx, post.CampaignID, post.PostID, s.ladder.Terminal()); err != nil {
			logger.WithError(err).Error("Erro ao congelar post")
			return
		}
		report.PostsFrozen++
		return
	}

	text := current.Text
	if text == "" {
		text = post.Text
	}

	now := s.now()
	newScore := s.engine.Score(text, *current.Metrics, post.AuthorReach)
	delta := math.Max(0, newScore-post.LastScore)
	nextStage, nextAt := s.ladder.Advance(post.RefreshStage, now)

	updated := *post
	updated.Text = text
	updated.Engagement = *current.Metrics
	updated.LastScore = newScore
	updated.CurrentScore = newScore
	updated.RefreshStage = nextStage
	updated.NextRefreshAt = nextAt

	saved, err := s.postRepo.SaveMeasurement(ctx, &updated, post.RefreshStage, post.LastScore)
	if err != nil {
		logger.WithError(err).Error("Erro ao salvar medição")
		return
	}
	if !saved {
		logger.Debug("Post já avançado por outra execução")
		return
	}

	report.PostsRefreshed++
	deltas.Add(domain.ScoreDelta{
		AuthorID:    post.AuthorID,
		Handle:      post.AuthorHandle,
		DisplayName: post.AuthorDisplayName,
		AvatarURL:   post.AuthorAvatarURL,
		Delta:       delta,
	})
}
