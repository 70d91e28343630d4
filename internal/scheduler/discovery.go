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
	"github.com/vfg2006/creator-campaign-api/internal/keyword"
	"github.com/vfg2006/creator-campaign-api/internal/scoring"
	"github.com/vfg2006/creator-campaign-api/internal/usecases/leaderboard"
	"github.com/vfg2006/creator-campaign-api/pkg/log"
	"github.com/vfg2006/creator-campaign-api/pkg/utils"
)

type DiscoveryConfig struct {
	CronSchedule     string
	SyncEnabled      bool
	SoftBudget       time.Duration
	MaxAuthors       int
	MaxResults       int
	Lookback         time.Duration
	ActiveBackoff    time.Duration
	QuietBackoff     time.Duration
	FailureBackoff   time.Duration
	AuthorReserve    time.Duration
	UseAuthorReach   bool
	DefaultAvatarURL string
}

// DiscoveryService consulta a timeline recente dos autores do roster e
// passa a rastrear os posts que citam as palavras-chave da campanha.
type DiscoveryService struct {
	*cronRunner

	campaignRepo repository.CampaignRepository
	authorRepo   repository.TrackedAuthorRepository
	postRepo     repository.TrackedPostRepository
	source       x.XIntegrator
	aggregator   leaderboard.Aggregator
	locker       lock.Locker
	engine       *scoring.Engine
	config       DiscoveryConfig
	ladder       Ladder
	now          func() time.Time
	newID        func() (string, error)
}

func NewDiscoveryService(
	campaignRepo repository.CampaignRepository,
	authorRepo repository.TrackedAuthorRepository,
	postRepo repository.TrackedPostRepository,
	source x.XIntegrator,
	aggregator leaderboard.Aggregator,
	locker lock.Locker,
	engine *scoring.Engine,
	cfg *config.Config,
) *DiscoveryService {
	discoveryConfig := DiscoveryConfig{
		CronSchedule:     cfg.Discovery.CronSchedule,
		SyncEnabled:      cfg.Discovery.Enabled,
		SoftBudget:       cfg.Discovery.SoftBudget,
		MaxAuthors:       cfg.Discovery.MaxAuthors,
		MaxResults:       cfg.Discovery.MaxResults,
		Lookback:         cfg.Discovery.Lookback,
		ActiveBackoff:    cfg.Discovery.ActiveBackoff,
		QuietBackoff:     cfg.Discovery.QuietBackoff,
		FailureBackoff:   cfg.Discovery.FailureBackoff,
		AuthorReserve:    cfg.Discovery.AuthorReserve,
		UseAuthorReach:   cfg.Scoring.UseAuthorReach,
		DefaultAvatarURL: cfg.Campaigns.DefaultAvatarURL,
	}

	s := &DiscoveryService{
		campaignRepo: campaignRepo,
		authorRepo:   authorRepo,
		postRepo:     postRepo,
		source:       source,
		aggregator:   aggregator,
		locker:       locker,
		engine:       engine,
		config:       discoveryConfig,
		ladder:       Ladder(cfg.Hydration.Ladder),
		now:          time.Now,
		newID:        utils.GenerateID,
	}

	s.cronRunner = newCronRunner("descoberta", discoveryConfig.CronSchedule, discoveryConfig.SyncEnabled, cfg.Campaigns.IDs, campaignRepo.ListActiveCampaignIDs)
	s.cronRunner.run = s.Run

	return s
}

// Run executa uma rodada de descoberta limitada pelo orçamento. Condições
// esperadas (campanha encerrada, nada a fazer, lock ocupado) retornam um
// relatório com SkipReason e erro nil.
func (s *DiscoveryService) Run(ctx context.Context, campaignID string) (*domain.RunReport, error) {
	report := newReport(campaignID, domain.RunKindDiscovery, s.now(), s.newID)
	ctx = log.WithRun(ctx, report.RunID, campaignID)
	logger := log.ForContext(ctx).WithField("kind", report.Kind)
	budget := NewBudget(s.config.SoftBudget, s.now)

	defer func() {
		report.FinishedAt = s.now()
		logger.WithFields(log.Fields{
			"skip_reason":      report.SkipReason,
			"authors_polled":   report.AuthorsPolled,
			"posts_matched":    report.PostsMatched,
			"authors_credited": report.AuthorsCredited,
			"fetch_failures":   report.FetchFailures,
			"budget_exhausted": report.BudgetExhausted,
			"duration_ms":      report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
		}).Info("Descoberta finalizada")
	}()

	if !s.source.Configured() {
		report.SkipReason = domain.SkipMissingCredential
		return report, nil
	}

	campaign, err := s.campaignRepo.GetCampaign(ctx, campaignID)
	if err != nil {
		return report, err
	}
	if campaign == nil {
		report.SkipReason = domain.SkipCampaignNotFound
		return report, nil
	}
	if campaign.IsEnded() {
		report.SkipReason = domain.SkipCampaignEnded
		return report, nil
	}

	matcher := keyword.Compile(campaign.Keywords)
	if matcher.Empty() {
		report.SkipReason = domain.SkipNoKeywords
		return report, nil
	}

	unlock, err := s.locker.Acquire(ctx, "discovery:"+campaignID)
	if errors.Is(err, lock.ErrNotAcquired) {
		report.SkipReason = domain.SkipRunInProgress
		return report, nil
	}
	if err != nil {
		logger.WithError(err).Warn("Lock indisponível, seguindo sem exclusão mútua")
	} else {
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				logger.WithError(err).Warn("Erro ao liberar lock de descoberta")
			}
		}()
	}

	authors, err := s.authorRepo.ListDueAuthors(ctx, campaignID, s.now(), s.config.MaxAuthors)
	if err != nil {
		return report, err
	}
	if len(authors) == 0 {
		report.SkipReason = domain.SkipNoDueAuthors
		return report, nil
	}

	deltas := newDeltaAccumulator()
	for _, author := range authors {
		if ctx.Err() != nil || !budget.Allows(s.config.AuthorReserve) {
			report.BudgetExhausted = true
			break
		}
		s.pollAuthor(ctx, campaign, matcher, author, deltas, report)
	}

	report.AuthorsCredited = deltas.Len()
	report.DeltaTotal = deltas.Total()

	if deltas.Len() > 0 {
		// os posts já foram gravados: o merge não pode ser abandonado por cancelamento
		if _, err := s.aggregator.Merge(context.WithoutCancel(ctx), campaignID, deltas.Rows()); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (s *DiscoveryService) pollAuthor(
	ctx context.Context,
	campaign *domain.Campaign,
	matcher *keyword.Matcher,
	author *domain.TrackedAuthor,
	deltas *deltaAccumulator,
	report *domain.RunReport,
) {
	logger := log.ForContext(ctx).WithField("author_id", author.ID)
	polledAt := s.now()

	posts, err := s.source.FetchRecentPosts(ctx, author.ID, domain.TimelineQuery{
		SinceID:    author.SinceID,
		StartTime:  polledAt.Add(-s.config.Lookback),
		MaxResults: s.config.MaxResults,
	})
	report.AuthorsPolled++
	if err != nil {
		report.FetchFailures++
		logger.WithError(err).Warn("Erro ao buscar timeline do autor")
		s.saveCursor(ctx, campaign.ID, author.ID, author.SinceID, polledAt, s.config.FailureBackoff)
		return
	}

	newest := author.SinceID
	matched := 0
	persistFailed := false

	for _, post := range posts {
		newest = maxPostID(newest, post.ID)

		if post.Text == "" || post.Metrics == nil {
			continue
		}
		if !matcher.Matches(post.Text) {
			continue
		}

		delta, err := s.trackPost(ctx, campaign.ID, author, post, polledAt)
		if err != nil {
			persistFailed = true
			logger.WithError(err).WithField("post_id", post.ID).Error("Erro ao salvar post rastreado")
			continue
		}

		matched++
		report.PostsMatched++
		deltas.Add(domain.ScoreDelta{
			AuthorID:    author.ID,
			Handle:      author.Handle,
			DisplayName: author.DisplayName,
			AvatarURL:   s.avatarFor(author),
			Delta:       delta,
		})
	}

	backoff := s.config.QuietBackoff
	if matched > 0 {
		backoff = s.config.ActiveBackoff
	}

	// sem avançar o cursor, o post que falhou volta na próxima rodada
	if persistFailed {
		newest = author.SinceID
		backoff = s.config.FailureBackoff
	}

	s.saveCursor(ctx, campaign.ID, author.ID, newest, polledAt, backoff)
}

// trackPost grava o post e devolve o delta ainda não creditado ao autor.
func (s *DiscoveryService) trackPost(ctx context.Context, campaignID string, author *domain.TrackedAuthor, post domain.SocialPost, now time.Time) (float64, error) {
	var reach int64
	if s.config.UseAuthorReach {
		reach = author.Followers
	}

	score := s.engine.Score(post.Text, *post.Metrics, reach)

	tracked := &domain.TrackedPost{
		CampaignID:        campaignID,
		PostID:            post.ID,
		AuthorID:          author.ID,
		AuthorHandle:      author.Handle,
		AuthorDisplayName: author.DisplayName,
		AuthorAvatarURL:   s.avatarFor(author),
		AuthorReach:       reach,
		Text:              post.Text,
		Engagement:        *post.Metrics,
		LastScore:         score,
		CurrentScore:      score,
		RefreshStage:      0,
		NextRefreshAt:     s.ladder.First(now),
	}
	if !post.CreatedAt.IsZero() {
		postedAt := post.CreatedAt
		tracked.PostedAt = &postedAt
	}

	result, err := s.postRepo.UpsertDiscovered(ctx, tracked)
	if err != nil {
		return 0, err
	}

	return math.Max(0, score-result.PreviousScore), nil
}

func (s *DiscoveryService) saveCursor(ctx context.Context, campaignID, authorID, sinceID string, polledAt time.Time, backoff time.Duration) {
	err := s.authorRepo.UpdateAuthorCursor(ctx, domain.AuthorCursor{
		CampaignID:   campaignID,
		AuthorID:     authorID,
		SinceID:      sinceID,
		LastPolledAt: polledAt,
		NextPollAt:   polledAt.Add(backoff),
	})
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("author_id", authorID).Error("Erro ao atualizar cursor do autor")
	}
}

func (s *DiscoveryService) avatarFor(author *domain.TrackedAuthor) string {
	if author.AvatarURL != "" {
		return author.AvatarURL
	}
	return s.config.DefaultAvatarURL
}
