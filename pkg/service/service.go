// Package service composes the analysis engine, the repository and the local
// caches into the operations the HTTP layer and CLI expose.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/huynhanx03/codelens/pkg/analysis"
	"github.com/huynhanx03/codelens/pkg/common/cache"
	"github.com/huynhanx03/codelens/pkg/common/cache/ttl"
	"github.com/huynhanx03/codelens/pkg/dashboard"
	"github.com/huynhanx03/codelens/pkg/events"
	"github.com/huynhanx03/codelens/pkg/repository"
	"github.com/huynhanx03/codelens/pkg/settings"
	"github.com/huynhanx03/codelens/pkg/timer"
)

const serviceName = "analysis"

// NamedCache is a local cache that can report its own stats.
type NamedCache[V any] interface {
	cache.LocalCache[V]
	Name() string
	Stats() ttl.Stats
}

// Deps are the collaborators of a Service. Remote and Publisher are optional.
type Deps struct {
	Repo       repository.Repository
	Projects   repository.ProjectRepository
	IDs        analysis.IDGenerator
	Reports    NamedCache[analysis.Report]
	Listings   NamedCache[repository.Page]
	Dashboards NamedCache[dashboard.Stats]
	Remote     cache.CacheEngine
	Publisher  events.Publisher
	Clock      timer.Timer
	Logger     *zap.Logger
	Cache      settings.Cache
}

type Service struct {
	repo       repository.Repository
	projects   repository.ProjectRepository
	ids        analysis.IDGenerator
	analyzer   *analysis.Analyzer
	reports    NamedCache[analysis.Report]
	listings   NamedCache[repository.Page]
	dashboards NamedCache[dashboard.Stats]
	remote     cache.CacheEngine
	publisher  events.Publisher
	clock      timer.Timer
	logger     *zap.Logger

	reportTTL    time.Duration
	listingTTL   time.Duration
	dashboardTTL time.Duration
}

func New(d Deps) *Service {
	if d.Clock == nil {
		d.Clock = timer.System()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Publisher == nil {
		d.Publisher = events.NoopPublisher{}
	}

	return &Service{
		repo:         d.Repo,
		projects:     d.Projects,
		ids:          d.IDs,
		analyzer:     analysis.NewAnalyzer(d.IDs, d.Clock),
		reports:      d.Reports,
		listings:     d.Listings,
		dashboards:   d.Dashboards,
		remote:       d.Remote,
		publisher:    d.Publisher,
		clock:        d.Clock,
		logger:       d.Logger,
		reportTTL:    orDefault(d.Cache.ReportTTL, 10*time.Minute),
		listingTTL:   orDefault(d.Cache.ListingTTL, 2*time.Minute),
		dashboardTTL: orDefault(d.Cache.DashboardTTL, 5*time.Minute),
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d == 0 {
		return def
	}
	return d
}

// CacheStats reports every local cache by name.
func (s *Service) CacheStats() map[string]ttl.Stats {
	return map[string]ttl.Stats{
		s.reports.Name():    s.reports.Stats(),
		s.listings.Name():   s.listings.Stats(),
		s.dashboards.Name(): s.dashboards.Stats(),
	}
}

// throughRemote runs compute behind the remote cache when one is configured.
func throughRemote[V any](ctx context.Context, s *Service, key string, ttl time.Duration, compute func() (V, error)) (V, error) {
	if s.remote == nil {
		return compute()
	}
	return cache.GetOrSetRemote(ctx, s.remote, key, ttl, compute, func(err error) {
		s.logger.Warn("remote cache write failed", zap.String("key", key), zap.Error(err))
	})
}

// invalidateUser drops every cached view derived from the user's records,
// locally and in the remote cache. Remote failures are logged only; the
// remote entries then expire on their TTL.
func (s *Service) invalidateUser(ctx context.Context, userID int64) {
	keys := cache.UserKeys(userID)
	prefix := cache.UserAnalysesPrefix(userID)

	for _, key := range keys {
		s.dashboards.Delete(key)
	}
	s.listings.DeletePrefix(prefix)

	if s.remote == nil {
		return
	}
	if err := s.remote.DeleteBulk(ctx, keys); err != nil {
		s.logger.Warn("remote cache delete failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	if err := s.remote.InvalidatePrefix(ctx, prefix); err != nil {
		s.logger.Warn("remote cache invalidate failed", zap.String("prefix", prefix), zap.Error(err))
	}
}
