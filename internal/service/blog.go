package service

import (
	"context"
	"errors"

	"github.com/code2244/bloglist/internal/lib/stats"
	"github.com/code2244/bloglist/internal/model"
	"github.com/code2244/bloglist/internal/repository"
	"github.com/rs/zerolog"
)

// StatsCache stores the computed stats summary.
//
// Invalidate advances the write generation. SetIfGeneration must refuse to
// store a summary once the generation has moved past gen.
type StatsCache interface {
	Get(ctx context.Context) (*stats.Summary, error)
	Generation(ctx context.Context) (int64, error)
	SetIfGeneration(ctx context.Context, gen int64, summary *stats.Summary) (bool, error)
	Invalidate(ctx context.Context) error
}

// StatsEnqueuer schedules a background stats refresh.
type StatsEnqueuer interface {
	EnqueueStatsRefresh(ctx context.Context, reason string) error
}

// BlogService implements the blog operations on top of a BlogRepository.
//
// The stats cache and job queue are optional. A failure in either is
// logged and never fails the request that triggered it.
type BlogService struct {
	repo   repository.BlogRepository
	cache  StatsCache
	jobs   StatsEnqueuer
	logger *zerolog.Logger
}

func NewBlogService(repo repository.BlogRepository, logger *zerolog.Logger) *BlogService {
	return &BlogService{
		repo:   repo,
		logger: logger,
	}
}

// WithStatsCache enables stats caching.
func (s *BlogService) WithStatsCache(cache StatsCache) *BlogService {
	s.cache = cache
	return s
}

// WithStatsJobs enables background stats refreshes after writes.
func (s *BlogService) WithStatsJobs(jobs StatsEnqueuer) *BlogService {
	s.jobs = jobs
	return s
}

func (s *BlogService) List(ctx context.Context) ([]model.Blog, error) {
	return s.repo.FindAll(ctx)
}

func (s *BlogService) Create(ctx context.Context, fields model.BlogFields) (*model.Blog, error) {
	blog, err := s.repo.Insert(ctx, fields)
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, "blog created")
	return blog, nil
}

// Update replaces every mutable field of the blog. A missing blog yields
// repository.ErrNotFound; it is never created.
func (s *BlogService) Update(ctx context.Context, id string, fields model.BlogFields) (*model.Blog, error) {
	blog, err := s.repo.ReplaceByID(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, "blog updated")
	return blog, nil
}

// Delete removes the blog. Unknown and malformed ids are a no-op.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	err := s.repo.DeleteByID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrInvalidID), errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	}

	s.afterWrite(ctx, "blog deleted")
	return nil
}

// Stats returns the stats summary, served from the cache when possible.
func (s *BlogService) Stats(ctx context.Context) (*stats.Summary, error) {
	if s.cache != nil {
		summary, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to read cached stats")
		} else if summary != nil {
			return summary, nil
		}
	}

	summary, _, err := s.computeAndCache(ctx)
	if summary == nil {
		return nil, err
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache stats")
	}
	return summary, nil
}

// RefreshStats recomputes the summary and stores it in the cache. A write
// that lands during the recompute wins; the stale summary is dropped.
func (s *BlogService) RefreshStats(ctx context.Context) error {
	summary, stored, err := s.computeAndCache(ctx)
	if err != nil {
		return err
	}
	if !stored && s.cache != nil {
		s.logger.Debug().Int("total_likes", summary.TotalLikes).Msg("stats changed during refresh, not cached")
	}
	return nil
}

// computeAndCache reads the write generation before the blogs so the
// summary is only cached if no write happened in between. A nil summary
// means the store failed; a summary with an error means only caching did.
func (s *BlogService) computeAndCache(ctx context.Context) (*stats.Summary, bool, error) {
	var gen int64
	cacheable := s.cache != nil
	if cacheable {
		var err error
		if gen, err = s.cache.Generation(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("failed to read stats generation")
			cacheable = false
		}
	}

	summary, err := s.computeStats(ctx)
	if err != nil {
		return nil, false, err
	}

	if !cacheable {
		return summary, false, nil
	}

	stored, err := s.cache.SetIfGeneration(ctx, gen, summary)
	return summary, stored, err
}

func (s *BlogService) computeStats(ctx context.Context) (*stats.Summary, error) {
	blogs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Summarize(blogs), nil
}

// afterWrite drops the cached summary and schedules a refresh.
func (s *BlogService) afterWrite(ctx context.Context, reason string) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn().Err(err).Str("reason", reason).Msg("failed to invalidate cached stats")
		}
	}

	if s.jobs != nil {
		if err := s.jobs.EnqueueStatsRefresh(ctx, reason); err != nil {
			s.logger.Warn().Err(err).Str("reason", reason).Msg("failed to enqueue stats refresh")
		}
	}
}
