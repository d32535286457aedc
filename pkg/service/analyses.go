package service

import (
	"context"
	"math"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/codelens/pkg/analysis"
	"github.com/huynhanx03/codelens/pkg/common/apperr"
	"github.com/huynhanx03/codelens/pkg/common/cache"
	"github.com/huynhanx03/codelens/pkg/dashboard"
	"github.com/huynhanx03/codelens/pkg/events"
	"github.com/huynhanx03/codelens/pkg/repository"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type SaveInput struct {
	ProjectID int64            `json:"projectId" validate:"required,gt=0"`
	Filename  string           `json:"filename" validate:"required,max=255"`
	Language  string           `json:"language" validate:"required"`
	Score     *int             `json:"score" validate:"required,gte=0,lte=100"`
	Result    *analysis.Result `json:"analysisData" validate:"required"`
}

type ListInput struct {
	ProjectID int64  `form:"projectId" validate:"gte=0"`
	Language  string `form:"language" validate:"omitempty,max=32"`
	Limit     int    `form:"limit" validate:"gte=0"`
	Offset    int    `form:"offset" validate:"gte=0"`
}

// Save stores a record under one of the user's projects and drops the user's
// cached views. The record takes the project's current name.
func (s *Service) Save(ctx context.Context, userID int64, in SaveInput) (*repository.Record, error) {
	lang, ok := analysis.ParseLanguage(in.Language)
	if !ok {
		return nil, apperr.InvalidParam("unsupported language "+in.Language, nil)
	}
	if in.Score == nil {
		return nil, apperr.InvalidParam("score is required", nil)
	}

	project, err := s.projects.GetProject(ctx, userID, in.ProjectID)
	if err != nil {
		return nil, s.mapProjectErr(err, apperr.MsgCreateFailed)
	}

	rec := &repository.Record{
		ID:          s.ids.Next(),
		UserID:      userID,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Filename:    in.Filename,
		Language:    lang,
		Score:       *in.Score,
		Result:      in.Result,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, apperr.MapError(serviceName, err, apperr.CodeInternal, apperr.MsgCreateFailed, http.StatusInternalServerError)
	}

	s.invalidateUser(ctx, userID)
	s.publish(ctx, events.Event{
		Type:       events.AnalysisSaved,
		UserID:     userID,
		AnalysisID: rec.ID,
		ProjectID:  rec.ProjectID,
		Language:   string(rec.Language),
		Score:      rec.Score,
	})
	return rec, nil
}

// List returns one page of the user's records, cached per filter.
func (s *Service) List(ctx context.Context, userID int64, in ListInput) (repository.Page, error) {
	limit := in.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)

	f := repository.Filter{
		UserID:    userID,
		ProjectID: in.ProjectID,
		Language:  in.Language,
		Limit:     limit,
		Offset:    in.Offset,
	}
	key := cache.UserAnalysesQueryKey(userID, f.ProjectID, f.Language, f.Limit, f.Offset)

	page, err := s.listings.GetOrSetWithTTL(key, s.listingTTL, func() (repository.Page, error) {
		return throughRemote(ctx, s, key, s.listingTTL, func() (repository.Page, error) {
			p, err := s.repo.Find(ctx, f)
			if err != nil {
				return repository.Page{}, err
			}
			if err := s.relabel(ctx, userID, p.Analyses); err != nil {
				return repository.Page{}, err
			}
			return *p, nil
		})
	})
	if err != nil {
		return repository.Page{}, apperr.MapError(serviceName, err, apperr.CodeInternal, apperr.MsgListFailed, http.StatusInternalServerError)
	}
	return page, nil
}

func (s *Service) Get(ctx context.Context, userID int64, id string) (*repository.Record, error) {
	rec, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, s.mapRepoErr(err, apperr.MsgGetFailed)
	}
	if p, err := s.projects.GetProject(ctx, userID, rec.ProjectID); err == nil {
		rec.ProjectName = p.Name
	}
	return rec, nil
}

// Delete removes the user's record and drops the user's cached views.
func (s *Service) Delete(ctx context.Context, userID int64, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return s.mapRepoErr(err, apperr.MsgDeleteFailed)
	}

	s.invalidateUser(ctx, userID)
	s.publish(ctx, events.Event{Type: events.AnalysisDeleted, UserID: userID, AnalysisID: id})
	return nil
}

// Dashboard returns the user's aggregate stats, cached per user.
func (s *Service) Dashboard(ctx context.Context, userID int64) (dashboard.Stats, error) {
	key := cache.DashboardKey(userID)
	stats, err := s.dashboards.GetOrSetWithTTL(key, s.dashboardTTL, func() (dashboard.Stats, error) {
		return throughRemote(ctx, s, key, s.dashboardTTL, func() (dashboard.Stats, error) {
			records, err := s.repo.All(ctx, userID)
			if err != nil {
				return dashboard.Stats{}, err
			}
			if err := s.relabel(ctx, userID, records); err != nil {
				return dashboard.Stats{}, err
			}
			return dashboard.Compute(records, s.clock.Now()), nil
		})
	})
	if err != nil {
		s.logger.Warn("dashboard compute failed", zap.Int64("user_id", userID), zap.Error(err))
		return dashboard.Stats{}, apperr.MapError("dashboard", err, apperr.CodeInternal, apperr.MsgComputeFailed, http.StatusInternalServerError)
	}
	return stats, nil
}

// relabel replaces the name stored with each record by the project's current
// name. Records of a project that no longer exists keep the stored name.
func (s *Service) relabel(ctx context.Context, userID int64, records []repository.Record) error {
	if len(records) == 0 {
		return nil
	}
	page, err := s.projects.ListProjects(ctx, userID, math.MaxInt, 0)
	if err != nil {
		return err
	}

	names := make(map[int64]string, len(page.Projects))
	for _, p := range page.Projects {
		names[p.ID] = p.Name
	}
	for i := range records {
		if name, ok := names[records[i].ProjectID]; ok {
			records[i].ProjectName = name
		}
	}
	return nil
}

func (s *Service) mapRepoErr(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(serviceName, err)
	}
	return apperr.MapError(serviceName, err, apperr.CodeInternal, msg, http.StatusInternalServerError)
}

// publish is best effort: a failed event never fails the request.
func (s *Service) publish(ctx context.Context, e events.Event) {
	e.OccurredAt = s.clock.Now()
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn("publish event failed",
			zap.String("type", string(e.Type)),
			zap.String("analysis_id", e.AnalysisID),
			zap.Error(err),
		)
	}
}
