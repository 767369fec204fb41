// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

/*
Package auth provides the HTTP delivery layer for the passwordless signup
and token-exchange endpoints.

This layer is strictly responsible for transport concerns (status codes,
headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/critiq-app/critiq/internal/platform/request"
	"github.com/critiq-app/critiq/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the authentication HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with the authentication routes.
//
// # Endpoints
//   - POST /signup : Registers an account and mails a confirmation code.
//   - POST /token  : Exchanges username + code for a JWT.
//
// Both endpoints are public.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signUp)
	router.Post("/token", handler.issueToken)

	return router
}

// # Request / Response Payloads

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type signUpResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

/*
signUp handles account enrollment.

POST /api/v1/auth/signup

Description: Registers the username+email pair (or refreshes the code for an
existing pair) and triggers the confirmation mail. The response deliberately
echoes only what the client sent — never the code.
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var input signUpRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.SignUp(request.Context(), SignUpInput{
		Username: input.Username,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, signUpResponse{
		Username: user.Username,
		Email:    user.Email,
	})
}

/*
issueToken handles the confirmation-code exchange.

POST /api/v1/auth/token

Description: Verifies the single-use code and returns a signed access token.
*/
func (handler *Handler) issueToken(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.IssueToken(request.Context(), input.Username, input.ConfirmationCode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tokenResponse{Token: token})
}
