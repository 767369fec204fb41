package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/critiq-app/critiq/internal/platform/middleware"
	requestutil "github.com/critiq-app/critiq/internal/platform/request"
	"github.com/critiq-app/critiq/internal/platform/respond"
	"github.com/critiq-app/critiq/internal/platform/sec"
	"github.com/critiq-app/critiq/pkg/convert"
	"github.com/critiq-app/critiq/pkg/pagination"
	"github.com/critiq-app/critiq/pkg/pointer"
	"github.com/critiq-app/critiq/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for /titles. Reads are public, writes are
// admin-only, and updates are PATCH only. The reviews router, when given,
// is nested under each title.
func (handler *Handler) Routes(reviews chi.Router) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.With(middleware.RequirePermission(sec.ActionCreate, sec.ResourceTitle)).
		Post("/", handler.create)

	router.Route("/{titleID}", func(router chi.Router) {
		router.Get("/", handler.get)
		router.With(middleware.RequirePermission(sec.ActionUpdate, sec.ResourceTitle)).
			Patch("/", handler.patch)
		router.With(middleware.RequirePermission(sec.ActionDelete, sec.ResourceTitle)).
			Delete("/", handler.delete)

		if reviews != nil {
			router.Mount("/reviews", reviews)
		}
	})

	return router
}

type createRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genres      []string `json:"genres"`
}

type patchRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genres      *[]string `json:"genres"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	queryValues := request.URL.Query()

	filter := ListFilter{
		Name:         queryValues.Get("name"),
		CategorySlug: queryValues.Get("category"),
		GenreSlugs:   query.StringSlice(queryValues.Get("genre")),
	}
	if raw := queryValues.Get("year"); raw != "" {
		filter.Year = pointer.To(convert.ToInt(raw))
	}

	titles, total, err := handler.service.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), CreateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genres,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler) patch(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input patchRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Patch(request.Context(), id, PatchInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genres,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
