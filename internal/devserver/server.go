// Package devserver is an in-memory stand-in for the chat backend. It serves
// the attachment upload routes and the anonymous chat API that the widget
// client talks to, so the CLI can be exercised without the real service.
package devserver

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	hzServer "github.com/cloudwego/hertz/pkg/app/server"
	hzConfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	monitorprom "github.com/hertz-contrib/monitor-prometheus"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tgifai/chatwidget/internal/config"
	"github.com/tgifai/chatwidget/internal/pkg/logs"
	"github.com/tgifai/chatwidget/pkg/widget"
)

type Server struct {
	cfg        config.ServerConfig
	store      *Store
	httpServer *hzServer.Hertz
}

// New builds the server and registers its routes. When reg is non-nil a
// Prometheus tracer records per-route metrics into it; the tracer also serves
// /metrics on cfg.MetricsBind when that is set.
func New(cfg config.ServerConfig, reg *prometheus.Registry) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	hlog.SetLogger(logs.NewHlogLogger(logs.DefaultLogger()))

	timeout := cfg.Timeout()
	opts := []hzConfig.Option{
		hzServer.WithHostPorts(cfg.Bind),
		hzServer.WithReadTimeout(timeout),
		hzServer.WithWriteTimeout(timeout),
		hzServer.WithExitWaitTime(3 * time.Second),
		hzServer.WithMaxRequestBodySize((cfg.MaxUploadMiB + 1) << 20),
	}
	if reg != nil {
		opts = append(opts, hzServer.WithTracer(monitorprom.NewServerTracer(
			cfg.MetricsBind, "/metrics",
			monitorprom.WithRegistry(reg),
			monitorprom.WithDisableServer(cfg.MetricsBind == ""),
		)))
	}

	s := &Server{
		cfg:        cfg,
		store:      NewStore(cfg.PublicURL),
		httpServer: hzServer.Default(opts...),
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) Store() *Store { return s.store }

func (s *Server) registerRoutes() {
	s.httpServer.Use(logIDMiddleware)

	s.httpServer.GET("/health", func(ctx context.Context, c *app.RequestContext) {
		c.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	files := s.httpServer.Group("/api/attachments")
	files.POST("/upload", s.handleUpload)
	files.GET("/download/:fileId", s.handleDownload)
	files.GET("/metadata/:fileId", s.handleMetadata)
	files.GET("/list/:chatbotId", s.handleListFiles)
	files.DELETE("/:fileId", s.handleDeleteFile)

	api := s.httpServer.Group(s.cfg.APIPrefix)
	api.POST("/anonymous/chat", s.handleChat)
	api.GET("/attachments/:chatbotId", s.handleList)
	api.DELETE("/attachments/:chatbotId/:vectorId", s.handleDelete)
}

// Start serves in the background until Stop is called.
func (s *Server) Start(ctx context.Context) error {
	logs.CtxInfo(ctx, "[devserver] listening on %s (api prefix %s)", s.cfg.Bind, s.cfg.APIPrefix)
	if s.cfg.MetricsBind != "" {
		logs.CtxInfo(ctx, "[devserver] metrics on %s/metrics", s.cfg.MetricsBind)
	}
	go func() {
		if err := s.httpServer.Run(); err != nil {
			logs.CtxError(ctx, "[devserver] http server exited: %v", err)
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logs.CtxWarn(ctx, "[devserver] shutdown http server error: %v", err)
		return err
	}
	logs.CtxInfo(ctx, "[devserver] stopped")
	return nil
}

// logIDMiddleware reuses the caller's log id when present so client and
// server log lines share it.
func logIDMiddleware(ctx context.Context, c *app.RequestContext) {
	logID := string(c.GetHeader(widget.HeaderLogID))
	if logID == "" {
		logID = logs.NewLogID()
	}
	c.Response.Header.Set(widget.HeaderLogID, logID)
	c.Next(logs.SetLogID(ctx, logID))
}
