package server

import (
	"context"

	"github.com/huynhanx03/codelens/pkg/analysis"
	"github.com/huynhanx03/codelens/pkg/common/apperr"
	"github.com/huynhanx03/codelens/pkg/common/cache/ttl"
	"github.com/huynhanx03/codelens/pkg/common/http/handler"
	"github.com/huynhanx03/codelens/pkg/common/http/middleware"
	"github.com/huynhanx03/codelens/pkg/dashboard"
	"github.com/huynhanx03/codelens/pkg/repository"
	"github.com/huynhanx03/codelens/pkg/service"
)

type idRequest struct {
	ID string `uri:"id" validate:"required,max=64"`
}

type deleted struct {
	ID string `json:"id"`
}

type analysisHandler struct {
	svc *service.Service
}

func userID(ctx context.Context) (int64, error) {
	id, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, apperr.Unauthorized("user not authenticated")
	}
	return id, nil
}

func (h *analysisHandler) analyze(ctx context.Context, req *service.AnalyzeInput) (analysis.Result, error) {
	return h.svc.Analyze(ctx, *req)
}

func (h *analysisHandler) save(ctx context.Context, req *service.SaveInput) (*repository.Record, error) {
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}
	return h.svc.Save(ctx, uid, *req)
}

func (h *analysisHandler) list(ctx context.Context, req *service.ListInput) (repository.Page, error) {
	uid, err := userID(ctx)
	if err != nil {
		return repository.Page{}, err
	}
	return h.svc.List(ctx, uid, *req)
}

func (h *analysisHandler) get(ctx context.Context, req *idRequest) (*repository.Record, error) {
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}
	return h.svc.Get(ctx, uid, req.ID)
}

func (h *analysisHandler) delete(ctx context.Context, req *idRequest) (deleted, error) {
	uid, err := userID(ctx)
	if err != nil {
		return deleted{}, err
	}
	if err := h.svc.Delete(ctx, uid, req.ID); err != nil {
		return deleted{}, err
	}
	return deleted{ID: req.ID}, nil
}

func (h *analysisHandler) dashboard(ctx context.Context, _ *handler.Empty) (dashboard.Stats, error) {
	uid, err := userID(ctx)
	if err != nil {
		return dashboard.Stats{}, err
	}
	return h.svc.Dashboard(ctx, uid)
}

func (h *analysisHandler) cacheStats(context.Context, *handler.Empty) (map[string]ttl.Stats, error) {
	return h.svc.CacheStats(), nil
}

type projectIDRequest struct {
	ID int64 `uri:"id" validate:"required,gt=0"`
}

type updateProjectRequest struct {
	ID int64 `uri:"id" json:"-" validate:"required,gt=0"`
	service.ProjectInput
}

type projectHandler struct {
	svc *service.Service
}

func (h *projectHandler) create(ctx context.Context, req *service.ProjectInput) (*service.ProjectView, error) {
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}
	return h.svc.CreateProject(ctx, uid, *req)
}

func (h *projectHandler) list(ctx context.Context, req *service.ProjectListInput) (*service.ProjectPage, error) {
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}
	return h.svc.ListProjects(ctx, uid, *req)
}

func (h *projectHandler) get(ctx context.Context, req *projectIDRequest) (*service.ProjectDetail, error) {
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}
	return h.svc.GetProject(ctx, uid, req.ID)
}

func (h *projectHandler) update(ctx context.Context, req *updateProjectRequest) (*repository.Project, error) {
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}
	return h.svc.UpdateProject(ctx, uid, req.ID, req.ProjectInput)
}

func (h *projectHandler) delete(ctx context.Context, req *projectIDRequest) (*service.DeleteProjectResult, error) {
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}
	return h.svc.DeleteProject(ctx, uid, req.ID)
}
