// Copyright (c) 2026 Lodex. All rights reserved.
// Author: duy.phamquoc.vn@gmail.com

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phamduy/lodex/internal/core/metric"
	"github.com/phamduy/lodex/internal/core/search"
	"github.com/phamduy/lodex/internal/platform/respond"
)

// AdminHandler exposes operational endpoints for the reference-data
// snapshots. All routes require the admin role; the role check is applied
// by the router, not here.
type AdminHandler struct {
	engine  *search.Engine
	metrics *metric.Service
	logger  *slog.Logger
}

func NewAdminHandler(engine *search.Engine, metrics *metric.Service, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{engine: engine, metrics: metrics, logger: logger}
}

func (handler *AdminHandler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/reload", handler.reload)
	router.Get("/snapshot", handler.snapshot)
	return router
}

// reload handles POST /admin/reload — rebuilds the search snapshot and the
// coefficient table from the store. A failed rebuild leaves the previous
// state serving and reports the failure.
func (handler *AdminHandler) reload(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	if err := handler.engine.Reload(ctx); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := handler.metrics.Reload(ctx); err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := handler.engine.Snapshot()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.logger.InfoContext(ctx, "admin_reload_completed")
	respond.Accepted(writer, snapshot.Stats())
}

// snapshot handles GET /admin/snapshot — the current index stats.
func (handler *AdminHandler) snapshot(writer http.ResponseWriter, request *http.Request) {
	snapshot, err := handler.engine.Snapshot()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	table, err := handler.metrics.Table()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"search":        snapshot.Stats(),
		"metric_levels": len(table.Levels()),
	})
}
