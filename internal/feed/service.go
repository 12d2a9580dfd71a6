package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/travelo-app/travelo/internal/hive"
	"github.com/travelo-app/travelo/internal/models"
	"github.com/travelo-app/travelo/internal/store"
	"github.com/travelo-app/travelo/pkg/config"
	"github.com/travelo-app/travelo/pkg/logging"
	"github.com/travelo-app/travelo/pkg/telemetry"
)

// Status describes the feed cache state machine:
// Empty -> Loading -> {Fresh, Error}; Fresh -> Stale after the TTL.
type Status string

const (
	StatusEmpty   Status = "empty"
	StatusLoading Status = "loading"
	StatusFresh   Status = "fresh"
	StatusStale   Status = "stale"
	StatusError   Status = "error"
)

// Service owns the single cached feed slot. One feed, one TTL; there
// is no per-key invalidation because the only cached resource is the
// current feed.
type Service struct {
	gateway hive.Gateway
	state   *store.State
	cfg     config.FeedConfig
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	status  Status
	lastErr error
}

// NewService creates the feed service
func NewService(gateway hive.Gateway, state *store.State, cfg config.FeedConfig) *Service {
	return &Service{
		gateway: gateway,
		state:   state,
		cfg:     cfg,
		logger:  logging.GetLogger().With(zap.String("component", "feed")),
		now:     time.Now,
		status:  StatusEmpty,
	}
}

// GetPosts returns the feed, serving the cached snapshot while it is
// fresh. A stale or missing snapshot triggers a network fetch; a failed
// fetch falls back to the last-known snapshot when one exists and only
// surfaces the error when there is nothing to fall back to. Posts
// without a metadata image are filtered out.
func (s *Service) GetPosts(ctx context.Context, forceRefresh bool) ([]models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.get_posts")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	snap, err := s.state.FeedSnapshot(ctx)
	if err != nil {
		s.logger.Warn("Failed to read cached feed", zap.Error(err))
		snap = nil
	}

	if !forceRefresh && snap.Fresh(now, s.cfg.CacheTTL) {
		s.status = StatusFresh
		return snap.Posts, nil
	}
	if snap != nil {
		s.status = StatusStale
	}

	s.status = StatusLoading
	posts, err := s.gateway.GetDiscussionsByCreated(ctx, s.cfg.Tag, s.cfg.Limit)
	if err != nil {
		s.status = StatusError
		s.lastErr = err
		if snap != nil {
			s.logger.Warn("Feed fetch failed, serving cached snapshot",
				zap.Error(err),
				zap.Time("fetched_at", snap.FetchedAt))
			return snap.Posts, nil
		}
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	filtered := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		if post.HasImage() {
			filtered = append(filtered, post)
		}
	}

	if err := s.state.SetFeedSnapshot(ctx, models.FeedSnapshot{Posts: filtered, FetchedAt: now}); err != nil {
		s.logger.Warn("Failed to cache feed snapshot", zap.Error(err))
	}

	s.status = StatusFresh
	s.lastErr = nil
	return filtered, nil
}

// ProfilePosts fetches an account's own blog posts. Profile views are
// not cached; they are small and rarely revisited.
func (s *Service) ProfilePosts(ctx context.Context, account string, limit int) ([]models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.profile_posts")
	defer span.End()

	return s.gateway.GetDiscussionsByBlog(ctx, account, limit)
}

// Status returns the current cache state
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LastError returns the most recent fetch error, if any
func (s *Service) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
