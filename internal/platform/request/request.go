// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/critiq-app/critiq/internal/platform/apperr"
	"github.com/critiq-app/critiq/internal/platform/ctxutil"
	"github.com/critiq-app/critiq/internal/platform/sec"
	"github.com/critiq-app/critiq/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
//
// # Returns
//   - error: validate.ErrInvalidJSON if decoding fails, otherwise nil.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// IntParam retrieves a named URL parameter and parses it as a positive int64.
//
// A malformed or non-positive identifier can never address an existing row,
// so it reports NotFound rather than a validation failure.
func IntParam(request *http.Request, name, resource string) (int64, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.NotFound(resource)
	}
	return id, nil
}

// Claims extracts the authenticated user claims from the request context.
//
// Returns nil if the request is not authenticated.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims ensures the request is authenticated and returns the user claims.
//
// # Returns
//   - *sec.AuthClaims: The authenticated user claims
//   - error: apperr.Unauthorized if the request is not authenticated
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

// Actor resolves the policy actor for the request (anonymous when no claims).
func Actor(request *http.Request) sec.Actor {
	return sec.ActorFromClaims(ctxutil.GetAuthUser(request.Context()))
}
