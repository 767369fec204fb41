package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/critiq-app/critiq/internal/platform/apperr"
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

// Routes returns the router mounted at /titles/{titleID}/reviews. The
// comments router, when given, is nested under each review.
func (handler *Handler) Routes(comments chi.Router) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.With(middleware.RequirePermission(sec.ActionCreate, sec.ResourceReview)).
		Post("/", handler.create)

	router.Route("/{reviewID}", func(router chi.Router) {
		router.Get("/", handler.get)
		router.Patch("/", handler.patch)
		router.Delete("/", handler.delete)

		if comments != nil {
			router.Mount("/comments", comments)
		}
	})

	return router
}

type createRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type patchRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	reviews, total, err := handler.service.List(request.Context(), titleID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.Get(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	authorID, err := uuid.Parse(claims.UserID)
	if err != nil {
		respond.Error(writer, request, apperr.Unauthorized("Invalid token subject"))
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), titleID, authorID, claims.Username, CreateInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler) patch(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input patchRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Patch(request.Context(), titleID, reviewID,
		requestutil.Actor(request), actorID(request), PatchInput{
			Text:  input.Text,
			Score: input.Score,
		})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.Delete(request.Context(), titleID, reviewID,
		requestutil.Actor(request), actorID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func pathIDs(request *http.Request) (titleID, reviewID int64, err error) {
	titleID, err = requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = requestutil.IntParam(request, "reviewID", "Review")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

// actorID resolves the authenticated user's id, or uuid.Nil for anonymous
// requests. A nil id never matches an author, so ownership checks fail closed.
func actorID(request *http.Request) uuid.UUID {
	claims := requestutil.Claims(request)
	if claims == nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil
	}
	return id
}
