package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vfg2006/creator-campaign-api/infrastructure/repository"
	"github.com/vfg2006/creator-campaign-api/internal/config"
	"github.com/vfg2006/creator-campaign-api/internal/domain"
)

var baseTime = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: baseTime}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Discovery = config.Discovery{
		CronSchedule:   "*/2 * * * *",
		SoftBudget:     20 * time.Second,
		MaxAuthors:     10,
		MaxResults:     25,
		Lookback:       24 * time.Hour,
		ActiveBackoff:  2 * time.Minute,
		QuietBackoff:   10 * time.Minute,
		FailureBackoff: 5 * time.Minute,
		AuthorReserve:  2 * time.Second,
	}
	cfg.Hydration = config.Hydration{
		CronSchedule: "*/5 * * * *",
		SoftBudget:   20 * time.Second,
		BatchSize:    50,
		FetchChunk:   100,
		Ladder:       []time.Duration{15 * time.Minute, 2 * time.Hour, 12 * time.Hour, 48 * time.Hour, 72 * time.Hour},
	}
	cfg.Campaigns = config.Campaigns{DefaultAvatarURL: "/avatar1.png"}
	return cfg
}

// memoryStore reproduz em memória a semântica das queries dos repositórios.
type memoryStore struct {
	mu         sync.Mutex
	campaigns  map[string]*domain.Campaign
	authors    []*domain.TrackedAuthor
	cursors    map[string]domain.AuthorCursor
	posts      map[string]*domain.TrackedPost
	boards     map[string]*domain.Leaderboard
	failUpsert map[string]bool
	merges     int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		campaigns:  make(map[string]*domain.Campaign),
		cursors:    make(map[string]domain.AuthorCursor),
		posts:      make(map[string]*domain.TrackedPost),
		boards:     make(map[string]*domain.Leaderboard),
		failUpsert: make(map[string]bool),
	}
}

func key(a, b string) string {
	return a + "|" + b
}

func (m *memoryStore) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	campaign, ok := m.campaigns[id]
	if !ok {
		return nil, nil
	}
	copied := *campaign
	return &copied, nil
}

func (m *memoryStore) ListActiveCampaignIDs(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0)
	for id, campaign := range m.campaigns {
		if !campaign.IsEnded() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *memoryStore) ListDueAuthors(_ context.Context, campaignID string, now time.Time, limit int) ([]*domain.TrackedAuthor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	due := make([]*domain.TrackedAuthor, 0)
	for _, author := range m.authors {
		if !author.Enabled {
			continue
		}
		copied := *author
		if cursor, ok := m.cursors[key(campaignID, author.ID)]; ok {
			if cursor.NextPollAt.After(now) {
				continue
			}
			lastPolledAt, nextPollAt := cursor.LastPolledAt, cursor.NextPollAt
			copied.SinceID = cursor.SinceID
			copied.LastPolledAt = &lastPolledAt
			copied.NextPollAt = &nextPollAt
		}
		due = append(due, &copied)
	}

	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i].LastPolledAt, due[j].LastPolledAt
		if a == nil || b == nil {
			if a == nil && b != nil {
				return true
			}
			if a != nil && b == nil {
				return false
			}
			return due[i].ID < due[j].ID
		}
		if !a.Equal(*b) {
			return a.Before(*b)
		}
		return due[i].ID < due[j].ID
	})

	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (m *memoryStore) UpdateAuthorCursor(_ context.Context, cursor domain.AuthorCursor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(cursor.CampaignID, cursor.AuthorID)
	if existing, ok := m.cursors[k]; ok && !newerPostID(cursor.SinceID, existing.SinceID) {
		cursor.SinceID = existing.SinceID
	}
	m.cursors[k] = cursor
	return nil
}

func (m *memoryStore) SaveOrUpdateAuthor(_ context.Context, author *domain.TrackedAuthor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.authors {
		if existing.ID == author.ID {
			m.authors[i] = author
			return nil
		}
	}
	m.authors = append(m.authors, author)
	return nil
}

func (m *memoryStore) UpsertDiscovered(_ context.Context, post *domain.TrackedPost) (*repository.UpsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failUpsert[post.PostID] {
		return nil, context.DeadlineExceeded
	}

	k := key(post.CampaignID, post.PostID)
	existing, ok := m.posts[k]
	if !ok {
		copied := *post
		m.posts[k] = &copied
		return &repository.UpsertResult{PreviousScore: 0, Inserted: true}, nil
	}

	previous := existing.LastScore
	existing.Text = post.Text
	existing.Engagement = post.Engagement
	existing.CurrentScore = post.CurrentScore
	existing.LastScore = post.LastScore
	return &repository.UpsertResult{PreviousScore: previous, Inserted: false}, nil
}

func (m *memoryStore) ListDueForRefresh(_ context.Context, campaignID string, now time.Time, terminalStage, limit int) ([]*domain.TrackedPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	due := make([]*domain.TrackedPost, 0)
	for _, post := range m.posts {
		if post.CampaignID != campaignID || post.NextRefreshAt == nil {
			continue
		}
		if post.NextRefreshAt.After(now) || post.RefreshStage >= terminalStage {
			continue
		}
		copied := *post
		due = append(due, &copied)
	}

	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextRefreshAt.Equal(*due[j].NextRefreshAt) {
			return due[i].NextRefreshAt.Before(*due[j].NextRefreshAt)
		}
		return due[i].PostID < due[j].PostID
	})

	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (m *memoryStore) SaveMeasurement(_ context.Context, post *domain.TrackedPost, expectedStage int, expectedScore float64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.posts[key(post.CampaignID, post.PostID)]
	if !ok || existing.RefreshStage != expectedStage || existing.LastScore != expectedScore {
		return false, nil
	}

	existing.Text = post.Text
	existing.Engagement = post.Engagement
	existing.CurrentScore = post.CurrentScore
	existing.LastScore = post.LastScore
	existing.RefreshStage = post.RefreshStage
	existing.NextRefreshAt = post.NextRefreshAt
	return true, nil
}

func (m *memoryStore) Freeze(_ context.Context, campaignID, postID string, terminalStage int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.posts[key(campaignID, postID)]; ok {
		existing.RefreshStage = terminalStage
		existing.NextRefreshAt = nil
	}
	return nil
}

func (m *memoryStore) ListCampaignsWithDuePosts(_ context.Context, now time.Time, terminalStage int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, post := range m.posts {
		if post.NextRefreshAt == nil || post.NextRefreshAt.After(now) || post.RefreshStage >= terminalStage {
			continue
		}
		if !seen[post.CampaignID] {
			seen[post.CampaignID] = true
			ids = append(ids, post.CampaignID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *memoryStore) GetLeaderboard(_ context.Context, campaignID string) (*domain.Leaderboard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	board, ok := m.boards[campaignID]
	if !ok {
		return nil, nil
	}
	copied := *board
	return &copied, nil
}

func (m *memoryStore) UpdateLeaderboard(_ context.Context, campaignID string, mutate repository.LeaderboardMutation) (*domain.Leaderboard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var current []domain.LeaderboardRow
	if board, ok := m.boards[campaignID]; ok {
		current = board.Rows
	}

	rows, err := mutate(current)
	if err != nil {
		return nil, err
	}

	m.merges++
	m.boards[campaignID] = &domain.Leaderboard{CampaignID: campaignID, Rows: rows, UpdatedAt: baseTime}
	return m.boards[campaignID], nil
}

func (m *memoryStore) post(campaignID, postID string) *domain.TrackedPost {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.posts[key(campaignID, postID)]
}

func (m *memoryStore) cursor(campaignID, authorID string) (domain.AuthorCursor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cursor, ok := m.cursors[key(campaignID, authorID)]
	return cursor, ok
}

func (m *memoryStore) score(campaignID, authorID string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	board, ok := m.boards[campaignID]
	if !ok {
		return 0
	}
	for _, row := range board.Rows {
		if row.AuthorID == authorID {
			return row.Score
		}
	}
	return 0
}

// fakeSource simula a API social: a timeline respeita o since_id e a
// consulta por ID omite posts removidos.
type fakeSource struct {
	mu          sync.Mutex
	configured  bool
	timelines   map[string][]domain.SocialPost
	live        map[string]domain.SocialPost
	timelineErr map[string]error
	lookupErr   error
	onFetch     func()
	queries     map[string]domain.TimelineQuery
	lookups     [][]string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		configured:  true,
		timelines:   make(map[string][]domain.SocialPost),
		live:        make(map[string]domain.SocialPost),
		timelineErr: make(map[string]error),
		queries:     make(map[string]domain.TimelineQuery),
	}
}

func (f *fakeSource) Configured() bool {
	return f.configured
}

func (f *fakeSource) FetchRecentPosts(_ context.Context, authorID string, query domain.TimelineQuery) ([]domain.SocialPost, error) {
	if f.onFetch != nil {
		f.onFetch()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries[authorID] = query
	if err := f.timelineErr[authorID]; err != nil {
		return nil, err
	}

	posts := make([]domain.SocialPost, 0)
	for _, post := range f.timelines[authorID] {
		if query.SinceID == "" || newerPostID(post.ID, query.SinceID) {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (f *fakeSource) FetchPostsByID(_ context.Context, ids []string) (map[string]domain.SocialPost, error) {
	if f.onFetch != nil {
		f.onFetch()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.lookups = append(f.lookups, ids)
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}

	found := make(map[string]domain.SocialPost, len(ids))
	for _, id := range ids {
		if post, ok := f.live[id]; ok {
			found[id] = post
		}
	}
	return found, nil
}

// publish coloca o post na timeline do autor e na consulta por ID.
func (f *fakeSource) publish(post domain.SocialPost) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timelines[post.AuthorID] = append(f.timelines[post.AuthorID], post)
	f.live[post.ID] = post
}

func (f *fakeSource) setMetrics(postID string, metrics domain.Engagement) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post := f.live[postID]
	post.Metrics = &metrics
	f.live[postID] = post
	for authorID, posts := range f.timelines {
		for i := range posts {
			if posts[i].ID == postID {
				f.timelines[authorID][i].Metrics = &metrics
			}
		}
	}
}

func (f *fakeSource) remove(postID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.live, postID)
}

func fixedID(id string) func() (string, error) {
	return func() (string, error) {
		return id, nil
	}
}
