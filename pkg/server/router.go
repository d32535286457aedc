package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/huynhanx03/codelens/pkg/common/http/handler"
	"github.com/huynhanx03/codelens/pkg/common/http/middleware"
	"github.com/huynhanx03/codelens/pkg/metrics"
	"github.com/huynhanx03/codelens/pkg/service"
)

// RouterDeps are what the router wires into handlers and middleware.
type RouterDeps struct {
	Service     *service.Service
	Logger      *zap.Logger
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
}

func NewRouter(d RouterDeps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Logger(d.Logger), middleware.Recovery(d.Logger))
	if d.HTTPMetrics != nil {
		r.Use(middleware.Metrics(d.HTTPMetrics))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	h := &analysisHandler{svc: d.Service}

	api := r.Group("/api")
	api.POST("/analyze", handler.Wrap(h.analyze))
	api.GET("/cache/stats", handler.Wrap(h.cacheStats))

	analyses := api.Group("/analyses", middleware.Identity())
	analyses.POST("", handler.WrapStatus(http.StatusCreated, h.save))
	analyses.GET("", handler.Wrap(h.list))
	analyses.GET("/stats/dashboard", handler.Wrap(h.dashboard))
	analyses.GET("/:id", handler.Wrap(h.get))
	analyses.DELETE("/:id", handler.Wrap(h.delete))

	ph := &projectHandler{svc: d.Service}

	projects := api.Group("/projects", middleware.Identity())
	projects.POST("", handler.WrapStatus(http.StatusCreated, ph.create))
	projects.GET("", handler.Wrap(ph.list))
	projects.GET("/:id", handler.Wrap(ph.get))
	projects.PUT("/:id", handler.Wrap(ph.update))
	projects.DELETE("/:id", handler.Wrap(ph.delete))

	return r
}
