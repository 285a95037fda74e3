package language

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phamduy/lodex/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listLanguages)
	router.Get("/{code}", handler.getLanguage)
	return router
}

func (handler *Handler) listLanguages(writer http.ResponseWriter, request *http.Request) {
	langs, err := handler.service.ListLanguages(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, langs)
}

func (handler *Handler) getLanguage(writer http.ResponseWriter, request *http.Request) {
	code := chi.URLParam(request, "code")

	lang, err := handler.service.GetLanguage(request.Context(), code)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lang)
}
