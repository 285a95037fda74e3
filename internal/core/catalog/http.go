package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phamduy/lodex/internal/platform/apperr"
	"github.com/phamduy/lodex/internal/platform/respond"
	"github.com/phamduy/lodex/pkg/pagination"
	"github.com/phamduy/lodex/pkg/query"
)

// defaultListDomain keeps the bare list endpoint useful without a filter.
const defaultListDomain = DomainCreature

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listEntities)
	router.Get("/{id}", handler.getEntity)
	router.Get("/{id}/name", handler.getDisplayName)
	router.Get("/{id}/translations", handler.listTranslations)
	return router
}

func (handler *Handler) listEntities(writer http.ResponseWriter, request *http.Request) {
	// Batch lookup: ?ids=1,2,3 (or repeated ids params) bypasses paging.
	if rawIDs := request.URL.Query()["ids"]; len(rawIDs) > 0 {
		handler.getEntityBatch(writer, request, rawIDs)
		return
	}

	domain := Domain(request.URL.Query().Get("domain"))
	if domain == "" {
		domain = defaultListDomain
	}

	params := pagination.FromRequest(request)

	entities, total, err := handler.service.ListEntities(request.Context(), domain, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entities, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getEntityBatch(writer http.ResponseWriter, request *http.Request, rawIDs []string) {
	var values []string
	for _, raw := range rawIDs {
		values = append(values, query.StringSlice(raw)...)
	}

	ids := make([]int64, 0, len(values))
	for _, parsed := range query.IntSlice(values) {
		ids = append(ids, int64(parsed))
	}

	entities, err := handler.service.GetEntitiesByIDs(request.Context(), ids, requestLanguage(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entities)
}

func (handler *Handler) getEntity(writer http.ResponseWriter, request *http.Request) {
	id, err := parseEntityID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.GetEntity(request.Context(), id, requestLanguage(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}

func (handler *Handler) getDisplayName(writer http.ResponseWriter, request *http.Request) {
	id, err := parseEntityID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	name, err := handler.service.DisplayName(request.Context(), id, requestLanguage(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"name": name})
}

func (handler *Handler) listTranslations(writer http.ResponseWriter, request *http.Request) {
	id, err := parseEntityID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	translations, err := handler.service.ListTranslations(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, translations)
}

// parseEntityID extracts and validates the {id} URL parameter.
func parseEntityID(request *http.Request) (int64, error) {
	raw := chi.URLParam(request, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.ValidationError("Entity ID must be a positive integer")
	}
	return id, nil
}

// requestLanguage reads the ?lang= parameter, defaulting to English.
func requestLanguage(request *http.Request) string {
	if lang := request.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	return "en"
}
