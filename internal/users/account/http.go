// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/critiq-app/critiq/internal/platform/middleware"
	requestutil "github.com/critiq-app/critiq/internal/platform/request"
	"github.com/critiq-app/critiq/internal/platform/respond"
	"github.com/critiq-app/critiq/internal/platform/sec"
	"github.com/critiq-app/critiq/pkg/pagination"
)

// Handler implements the /users HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] for /users.
//
// # Endpoints
//   - GET    /            : List accounts (admin).
//   - POST   /            : Provision an account (admin).
//   - GET    /me          : Own profile (any authenticated member).
//   - PATCH  /me          : Edit own profile (role read-only for non-admins).
//   - GET    /{username}  : Retrieve an account (admin).
//   - PATCH  /{username}  : Edit an account (admin).
//   - DELETE /{username}  : Remove an account (admin).
//
// The literal "me" segment is reserved at signup, so it can never shadow a
// real username.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.RequirePermission(sec.ActionRead, sec.ResourceUser)).
		Get("/", handler.list)
	router.With(middleware.RequirePermission(sec.ActionCreate, sec.ResourceUser)).
		Post("/", handler.create)

	router.Route("/me", func(router chi.Router) {
		router.Use(middleware.RequireAuth)
		router.Get("/", handler.getSelf)
		router.Patch("/", handler.patchSelf)
	})

	router.Route("/{username}", func(router chi.Router) {
		router.With(middleware.RequirePermission(sec.ActionRead, sec.ResourceUser)).
			Get("/", handler.get)
		router.With(middleware.RequirePermission(sec.ActionUpdate, sec.ResourceUser)).
			Patch("/", handler.patch)
		router.With(middleware.RequirePermission(sec.ActionDelete, sec.ResourceUser)).
			Delete("/", handler.delete)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

type patchRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

func (input patchRequest) toInput() PatchInput {
	return PatchInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	}
}

// # Administration Handlers

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	users, total, err := handler.accountService.List(request.Context(), search, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.accountService.Create(request.Context(), CreateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	user, err := handler.accountService.GetByUsername(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) patch(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	var input patchRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.accountService.Patch(request.Context(), username, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.accountService.Delete(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Self-Profile Handlers

func (handler *Handler) getSelf(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetSelf(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) patchSelf(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input patchRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.accountService.PatchSelf(request.Context(), claims.UserID,
		requestutil.Actor(request), input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}
