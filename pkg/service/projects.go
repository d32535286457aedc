package service

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/codelens/pkg/common/apperr"
	"github.com/huynhanx03/codelens/pkg/events"
	"github.com/huynhanx03/codelens/pkg/repository"
)

const (
	projectServiceName = "project"

	// RecentAnalysesLimit bounds the analyses embedded in a project detail.
	RecentAnalysesLimit = 10
)

type ProjectInput struct {
	Name        string `json:"name" validate:"required,max=128"`
	Description string `json:"description" validate:"max=1024"`
}

type ProjectListInput struct {
	Limit  int `form:"limit" validate:"gte=0"`
	Offset int `form:"offset" validate:"gte=0"`
}

// ProjectView is a project with the number of analyses saved under it.
type ProjectView struct {
	repository.Project
	AnalysisCount int `json:"analysisCount"`
}

type ProjectPage struct {
	Projects   []ProjectView         `json:"projects"`
	Pagination repository.Pagination `json:"pagination"`
}

// ProjectDetail adds the most recent analyses of the project.
type ProjectDetail struct {
	ProjectView
	Analyses []repository.Record `json:"analyses"`
}

// DeleteProjectResult reports how many analyses went with the project.
type DeleteProjectResult struct {
	DeletedAnalyses int `json:"deletedAnalyses"`
}

func (s *Service) CreateProject(ctx context.Context, userID int64, in ProjectInput) (*ProjectView, error) {
	now := s.clock.Now()
	p := &repository.Project{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.CreateProject(ctx, p); err != nil {
		return nil, apperr.MapError(projectServiceName, err, apperr.CodeInternal, apperr.MsgCreateFailed, http.StatusInternalServerError)
	}
	return &ProjectView{Project: *p}, nil
}

// ListProjects returns one page of the user's projects, newest first.
func (s *Service) ListProjects(ctx context.Context, userID int64, in ProjectListInput) (*ProjectPage, error) {
	limit := in.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)

	page, err := s.projects.ListProjects(ctx, userID, limit, in.Offset)
	if err != nil {
		return nil, apperr.MapError(projectServiceName, err, apperr.CodeInternal, apperr.MsgListFailed, http.StatusInternalServerError)
	}
	records, err := s.repo.All(ctx, userID)
	if err != nil {
		return nil, apperr.MapError(projectServiceName, err, apperr.CodeInternal, apperr.MsgListFailed, http.StatusInternalServerError)
	}

	counts := make(map[int64]int)
	for _, r := range records {
		counts[r.ProjectID]++
	}

	out := &ProjectPage{
		Projects:   make([]ProjectView, len(page.Projects)),
		Pagination: page.Pagination,
	}
	for i, p := range page.Projects {
		out.Projects[i] = ProjectView{Project: p, AnalysisCount: counts[p.ID]}
	}
	return out, nil
}

func (s *Service) GetProject(ctx context.Context, userID, id int64) (*ProjectDetail, error) {
	p, err := s.projects.GetProject(ctx, userID, id)
	if err != nil {
		return nil, s.mapProjectErr(err, apperr.MsgGetFailed)
	}

	recent, err := s.repo.Find(ctx, repository.Filter{UserID: userID, ProjectID: id, Limit: RecentAnalysesLimit})
	if err != nil {
		return nil, apperr.MapError(projectServiceName, err, apperr.CodeInternal, apperr.MsgGetFailed, http.StatusInternalServerError)
	}
	for i := range recent.Analyses {
		recent.Analyses[i].ProjectName = p.Name
		recent.Analyses[i].Result = nil
	}

	return &ProjectDetail{
		ProjectView: ProjectView{Project: *p, AnalysisCount: recent.Pagination.Total},
		Analyses:    recent.Analyses,
	}, nil
}

// UpdateProject renames or redescribes a project. Cached views carry project
// names, so the user's views are dropped.
func (s *Service) UpdateProject(ctx context.Context, userID, id int64, in ProjectInput) (*repository.Project, error) {
	p := &repository.Project{
		ID:          id,
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		UpdatedAt:   s.clock.Now(),
	}
	if err := s.projects.UpdateProject(ctx, p); err != nil {
		return nil, s.mapProjectErr(err, apperr.MsgUpdateFailed)
	}

	s.invalidateUser(ctx, userID)
	return p, nil
}

// DeleteProject removes the project and every analysis saved under it.
func (s *Service) DeleteProject(ctx context.Context, userID, id int64) (*DeleteProjectResult, error) {
	if _, err := s.projects.GetProject(ctx, userID, id); err != nil {
		return nil, s.mapProjectErr(err, apperr.MsgDeleteFailed)
	}

	n, err := s.repo.DeleteByProject(ctx, userID, id)
	if err != nil {
		return nil, apperr.MapError(projectServiceName, err, apperr.CodeInternal, apperr.MsgDeleteFailed, http.StatusInternalServerError)
	}
	if err := s.projects.DeleteProject(ctx, userID, id); err != nil {
		return nil, s.mapProjectErr(err, apperr.MsgDeleteFailed)
	}

	s.logger.Info("project deleted",
		zap.Int64("user_id", userID),
		zap.Int64("project_id", id),
		zap.Int("deleted_analyses", n),
	)
	s.invalidateUser(ctx, userID)
	s.publish(ctx, events.Event{Type: events.ProjectDeleted, UserID: userID, ProjectID: id})
	return &DeleteProjectResult{DeletedAnalyses: n}, nil
}

func (s *Service) mapProjectErr(err error, msg string) error {
	if errors.Is(err, repository.ErrProjectNotFound) {
		return apperr.NotFound(projectServiceName, err)
	}
	return apperr.MapError(projectServiceName, err, apperr.CodeInternal, msg, http.StatusInternalServerError)
}
