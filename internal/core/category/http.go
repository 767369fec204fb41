package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/critiq-app/critiq/internal/platform/middleware"
	requestutil "github.com/critiq-app/critiq/internal/platform/request"
	"github.com/critiq-app/critiq/internal/platform/respond"
	"github.com/critiq-app/critiq/internal/platform/sec"
	"github.com/critiq-app/critiq/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for /categories.
//
// Categories are list+create+delete only: no single-item retrieve and no
// update, so the slug is a stable identifier for its whole lifetime.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.With(middleware.RequirePermission(sec.ActionCreate, sec.ResourceCategory)).
		Post("/", handler.create)
	router.With(middleware.RequirePermission(sec.ActionDelete, sec.ResourceCategory)).
		Delete("/{slug}", handler.delete)

	return router
}

type createRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	categories, total, err := handler.service.List(request.Context(), search, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	categorySlug := requestutil.Param(request, "slug")

	if err := handler.service.Delete(request.Context(), categorySlug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
