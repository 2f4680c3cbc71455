package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/code2244/bloglist/internal/lib/cache"
	"github.com/code2244/bloglist/internal/lib/stats"
	"github.com/code2244/bloglist/internal/model"
	"github.com/code2244/bloglist/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCache struct {
	summary     *stats.Summary
	gen         int64
	getErr      error
	setErr      error
	sets        int
	invalidated int
}

func (f *fakeCache) Get(context.Context) (*stats.Summary, error) {
	return f.summary, f.getErr
}

func (f *fakeCache) Generation(context.Context) (int64, error) {
	return f.gen, f.getErr
}

func (f *fakeCache) SetIfGeneration(_ context.Context, gen int64, s *stats.Summary) (bool, error) {
	f.sets++
	if f.setErr != nil {
		return false, f.setErr
	}
	if gen != f.gen {
		return false, nil
	}
	f.summary = s
	return true, nil
}

func (f *fakeCache) Invalidate(context.Context) error {
	f.invalidated++
	f.gen++
	f.summary = nil
	return nil
}

// pausingRepo holds the next FindAll after it has read the blogs, until
// resume is closed.
type pausingRepo struct {
	repository.BlogRepository
	pauseNext atomic.Bool
	paused    chan struct{}
	resume    chan struct{}
}

func newPausingRepo(inner repository.BlogRepository) *pausingRepo {
	r := &pausingRepo{
		BlogRepository: inner,
		paused:         make(chan struct{}),
		resume:         make(chan struct{}),
	}
	r.pauseNext.Store(true)
	return r
}

func (r *pausingRepo) FindAll(ctx context.Context) ([]model.Blog, error) {
	blogs, err := r.BlogRepository.FindAll(ctx)
	if r.pauseNext.CompareAndSwap(true, false) {
		close(r.paused)
		<-r.resume
	}
	return blogs, err
}

func newRedisStatsCache(t *testing.T) *cache.StatsCache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewStatsCache(client, 5*time.Minute)
}

type fakeJobs struct {
	reasons []string
	err     error
}

func (f *fakeJobs) EnqueueStatsRefresh(_ context.Context, reason string) error {
	f.reasons = append(f.reasons, reason)
	return f.err
}

func newTestService(seed ...model.Blog) (*BlogService, *repository.MemoryBlogRepository) {
	logger := zerolog.Nop()
	repo := repository.NewMemoryBlogRepository(seed...)
	return NewBlogService(repo, &logger), repo
}

var initialBlogs = []model.Blog{
	{Title: "HTML is easy", Author: "Ada", URL: "http://a.example", Likes: 5},
	{Title: "Browser can execute only JavaScript", Author: "Grace", URL: "http://b.example", Likes: 6},
}

func TestBlogService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(initialBlogs...)

	blogs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, blogs, 2)

	created, err := svc.Create(ctx, model.BlogFields{Title: "t", URL: "u"})
	require.NoError(t, err)
	assert.Equal(t, 0, created.Likes)

	updated, err := svc.Update(ctx, created.ID, model.BlogFields{Title: "t2", URL: "u2", Likes: 100})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 100, updated.Likes)

	require.NoError(t, svc.Delete(ctx, created.ID))
	blogs, _ = svc.List(ctx)
	assert.Len(t, blogs, 2)
}

func TestBlogService_UpdateMissing(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), model.BlogFields{Title: "t", URL: "u"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	blogs, _ := svc.List(context.Background())
	assert.Empty(t, blogs, "update must not create a blog")
}

func TestBlogService_DeleteIsIdempotent(t *testing.T) {
	svc, _ := newTestService(initialBlogs...)
	jobs := &fakeJobs{}
	fc := &fakeCache{}
	svc.WithStatsJobs(jobs).WithStatsCache(fc)

	assert.NoError(t, svc.Delete(context.Background(), primitive.NewObjectID().Hex()))
	assert.NoError(t, svc.Delete(context.Background(), "malformed"))
	assert.Empty(t, jobs.reasons, "nothing was deleted")
	assert.Zero(t, fc.invalidated)

	blogs, _ := svc.List(context.Background())
	assert.Len(t, blogs, 2)
}

func TestBlogService_Stats(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(initialBlogs...)

	summary, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, summary.TotalLikes)
	assert.Equal(t, "Browser can execute only JavaScript", summary.FavoriteBlog.Title)
	assert.Equal(t, &stats.AuthorBlogs{Author: "Ada", Blogs: 1}, summary.MostBlogs)
	assert.Equal(t, &stats.AuthorLikes{Author: "Grace", Likes: 6}, summary.MostLikes)
}

func TestBlogService_StatsCache(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(initialBlogs...)
	fc := &fakeCache{}
	svc.WithStatsCache(fc)

	_, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fc.sets)

	// A hit is served without recomputing.
	fc.summary = &stats.Summary{TotalLikes: 999}
	summary, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 999, summary.TotalLikes)
	assert.Equal(t, 1, fc.sets)

	_, err = svc.Create(ctx, model.BlogFields{Title: "t", URL: "u", Likes: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, fc.invalidated)

	summary, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, summary.TotalLikes)
}

func TestBlogService_CacheFailuresDoNotFailRequests(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(initialBlogs...)
	svc.WithStatsCache(&fakeCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")})
	svc.WithStatsJobs(&fakeJobs{err: errors.New("redis down")})

	summary, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, summary.TotalLikes)

	_, err = svc.Create(ctx, model.BlogFields{Title: "t", URL: "u"})
	assert.NoError(t, err)
}

func TestBlogService_WritesEnqueueRefresh(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	jobs := &fakeJobs{}
	svc.WithStatsJobs(jobs)

	created, err := svc.Create(ctx, model.BlogFields{Title: "t", URL: "u"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, created.ID, model.BlogFields{Title: "t", URL: "u"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	assert.Equal(t, []string{"blog created", "blog updated", "blog deleted"}, jobs.reasons)
}

func TestBlogService_RefreshStats(t *testing.T) {
	ctx := context.Background()

	svc, _ := newTestService(initialBlogs...)
	statsCache := newRedisStatsCache(t)
	svc.WithStatsCache(statsCache)

	require.NoError(t, svc.RefreshStats(ctx))

	cached, err := statsCache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 11, cached.TotalLikes)
}

func TestBlogService_RefreshStatsWithoutCache(t *testing.T) {
	svc, _ := newTestService(initialBlogs...)
	assert.NoError(t, svc.RefreshStats(context.Background()))
}

func TestBlogService_StatsReadBeforeWriteIsNotCached(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	repo := newPausingRepo(repository.NewMemoryBlogRepository(initialBlogs...))
	statsCache := newRedisStatsCache(t)
	svc := NewBlogService(repo, &logger).WithStatsCache(statsCache)

	inFlight := make(chan *stats.Summary, 1)
	go func() {
		summary, err := svc.Stats(ctx)
		assert.NoError(t, err)
		inFlight <- summary
	}()

	<-repo.paused
	_, err := svc.Create(ctx, model.BlogFields{Title: "t", URL: "u", Likes: 100})
	require.NoError(t, err)
	close(repo.resume)

	// The in-flight request read the blogs before the write.
	stale := <-inFlight
	require.NotNil(t, stale)
	assert.Equal(t, 11, stale.TotalLikes)

	cached, err := statsCache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, cached)

	summary, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 111, summary.TotalLikes)
}

func TestBlogService_RefreshReadBeforeWriteIsNotCached(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	repo := newPausingRepo(repository.NewMemoryBlogRepository(initialBlogs...))
	statsCache := newRedisStatsCache(t)
	svc := NewBlogService(repo, &logger).WithStatsCache(statsCache)

	refreshed := make(chan error, 1)
	go func() {
		refreshed <- svc.RefreshStats(ctx)
	}()

	<-repo.paused
	_, err := svc.Create(ctx, model.BlogFields{Title: "t", URL: "u", Likes: 100})
	require.NoError(t, err)
	close(repo.resume)
	require.NoError(t, <-refreshed)

	cached, err := statsCache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, cached)

	require.NoError(t, svc.RefreshStats(ctx))
	cached, err = statsCache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 111, cached.TotalLikes)
}
