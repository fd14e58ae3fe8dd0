package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dfryer1193/bghfeed/feed/domain"
	"github.com/dfryer1193/bghfeed/internal/metrics"
	"github.com/rs/zerolog/log"
)

// ErrRefreshFailed marks a stream whose remote refresh did not produce a new
// cache generation. The consumer is left with the stale cache snapshot.
var ErrRefreshFailed = errors.New("refresh failed")

// Origin tells where a snapshot came from.
type Origin string

const (
	OriginCache  Origin = "cache"
	OriginRemote Origin = "remote"
)

// Snapshot is the full post list at one point in time.
type Snapshot struct {
	Posts  []*domain.Post
	Origin Origin
}

// PostSynchronizer reconciles the local post cache with the remote source.
// Category views are always live and never cached.
type PostSynchronizer struct {
	repo   domain.PostRepository
	source domain.RemoteSource
	cfg    *FeedConfig

	// refreshMu keeps a replace and its re-read on the same generation.
	refreshMu sync.Mutex
}

func NewPostSynchronizer(repo domain.PostRepository, source domain.RemoteSource, cfg *FeedConfig) *PostSynchronizer {
	return &PostSynchronizer{
		repo:   repo,
		source: source,
		cfg:    cfg,
	}
}

// StreamPosts returns a lazy stream of at most two snapshots: the current
// cache contents, then (when preload is set) the refreshed cache. Nothing is
// read or fetched until Next is called.
func (s *PostSynchronizer) StreamPosts(ctx context.Context, preload bool) *PostStream {
	return &PostStream{
		ctx:     ctx,
		sync:    s,
		preload: preload,
	}
}

// FetchByCategory fetches a category's posts from the remote source without
// touching the cache. On failure the returned slice is empty, never nil.
func (s *PostSynchronizer) FetchByCategory(ctx context.Context, categoryID int) ([]*domain.Post, error) {
	remote, err := s.source.FetchPostsByCategory(ctx, categoryID, s.cfg.CategoryPageSize)
	if err != nil {
		log.Warn().Err(err).Int("categoryID", categoryID).Msg("Failed to fetch category posts")
		return []*domain.Post{}, err
	}
	return toCachedPosts(remote), nil
}

// refresh fetches the general feed, replaces the cache and returns the new
// generation as stored.
func (s *PostSynchronizer) refresh(ctx context.Context) (posts []*domain.Post, err error) {
	start := time.Now()
	status := metrics.StatusSuccess
	defer func() {
		metrics.RefreshTotal.WithLabelValues(status).Inc()
		metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	}()

	remote, err := s.source.FetchPosts(ctx, s.cfg.FeedPageSize)
	if err != nil {
		status = metrics.StatusRemoteError
		log.Warn().Err(err).Msg("Failed to fetch posts, keeping cached feed")
		return nil, err
	}

	mapped := toCachedPosts(remote)

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if err := s.repo.ReplaceAll(ctx, mapped); err != nil {
		status = metrics.StatusCacheError
		log.Error().Err(err).Int("posts", len(mapped)).Msg("Failed to replace cached posts")
		return nil, err
	}

	posts, err = s.repo.GetAll(ctx)
	if err != nil {
		status = metrics.StatusCacheError
		log.Error().Err(err).Msg("Failed to read refreshed cache")
		return nil, err
	}

	metrics.CachedPosts.Set(float64(len(posts)))
	log.Info().Int("posts", len(posts)).Dur("took", time.Since(start)).Msg("Refreshed post cache")
	return posts, nil
}

type streamStage int

const (
	stageCache streamStage = iota
	stageRemote
	stageDone
)

// PostStream iterates the snapshots of one StreamPosts call. It is not
// restartable and not safe for concurrent use.
//
//	stream := synchronizer.StreamPosts(ctx, true)
//	for stream.Next() {
//		render(stream.Snapshot())
//	}
//	if err := stream.Err(); err != nil { ... }
type PostStream struct {
	ctx     context.Context
	sync    *PostSynchronizer
	preload bool

	stage   streamStage
	current Snapshot
	errs    []error
}

// Next advances to the next snapshot, reporting whether there is one.
func (s *PostStream) Next() bool {
	switch s.stage {
	case stageCache:
		s.stage = stageRemote
		posts, err := s.sync.repo.GetAll(s.ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to read cached posts")
			s.errs = append(s.errs, err)
			posts = []*domain.Post{}
		}
		s.current = Snapshot{Posts: posts, Origin: OriginCache}
		return true

	case stageRemote:
		s.stage = stageDone
		if !s.preload {
			return false
		}
		if err := s.ctx.Err(); err != nil {
			s.errs = append(s.errs, fmt.Errorf("%w: %w", ErrRefreshFailed, err))
			return false
		}
		posts, err := s.sync.refresh(s.ctx)
		if err != nil {
			s.errs = append(s.errs, fmt.Errorf("%w: %w", ErrRefreshFailed, err))
			return false
		}
		s.current = Snapshot{Posts: posts, Origin: OriginRemote}
		return true
	}

	return false
}

// Snapshot returns the snapshot produced by the last successful Next.
func (s *PostStream) Snapshot() Snapshot {
	return s.current
}

// Err reports what went wrong while producing the stream. A non-nil error
// matching ErrRefreshFailed means the last snapshot is stale.
func (s *PostStream) Err() error {
	return errors.Join(s.errs...)
}

// Collect drains the stream.
func (s *PostStream) Collect() ([]Snapshot, error) {
	snapshots := make([]Snapshot, 0, 2)
	for s.Next() {
		snapshots = append(snapshots, s.Snapshot())
	}
	return snapshots, s.Err()
}
