package search

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phamduy/lodex/internal/core/catalog"
	"github.com/phamduy/lodex/internal/platform/apperr"
	"github.com/phamduy/lodex/internal/platform/respond"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.search)
	return router
}

// search handles GET /search?q=&lang=&domain=
//
// An empty query returns an empty result list, not the whole catalog.
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	language := request.URL.Query().Get("lang")
	if language == "" {
		language = "en"
	}

	var domain catalog.Domain
	if raw := request.URL.Query().Get("domain"); raw != "" {
		domain = catalog.Domain(raw)
		if !domain.Valid() {
			respond.Error(writer, request, apperr.ValidationError("Unknown domain: "+raw))
			return
		}
	}

	results, err := handler.engine.Search(request.Context(), request.URL.Query().Get("q"), language, domain)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, results)
}
