package metric

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phamduy/lodex/internal/platform/apperr"
	"github.com/phamduy/lodex/internal/platform/respond"
	"github.com/phamduy/lodex/pkg/convert"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/levels", handler.listLevels)
	router.Get("/{id}", handler.computeMetric)
	return router
}

// computeMetric handles GET /metrics/{id}?level=&iv_attack=&iv_defense=&iv_stamina=
func (handler *Handler) computeMetric(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(request, "id"), 10, 64)
	if err != nil || id < 1 {
		respond.Error(writer, request, apperr.ValidationError("Entity ID must be a positive integer"))
		return
	}

	levelRaw := request.URL.Query().Get("level")
	if levelRaw == "" {
		respond.Error(writer, request, apperr.ValidationError("Missing required parameter: level"))
		return
	}
	level, err := strconv.ParseFloat(levelRaw, 64)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Parameter level must be a number"))
		return
	}

	iv := IndividualValues{
		Attack:  convert.ToInt(request.URL.Query().Get("iv_attack")),
		Defense: convert.ToInt(request.URL.Query().Get("iv_defense")),
		Stamina: convert.ToInt(request.URL.Query().Get("iv_stamina")),
	}

	rating, err := handler.service.ComputeForEntity(request.Context(), id, level, iv)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"entity_id": id,
		"level":     level,
		"rating":    rating,
	})
}

// listLevels handles GET /metrics/levels — the supported level grid.
func (handler *Handler) listLevels(writer http.ResponseWriter, request *http.Request) {
	table, err := handler.service.Table()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, table.Levels())
}
