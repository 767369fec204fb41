// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

package dberr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critiq-app/critiq/internal/platform/apperr"
	"github.com/critiq-app/critiq/internal/platform/dberr"
)

/*
TestWrap_Classification verifies the SQLSTATE to AppError mapping.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no_rows", pgx.ErrNoRows, http.StatusNotFound},
		{"wrapped_no_rows", errors.Join(errors.New("query"), pgx.ErrNoRows), http.StatusNotFound},
		{"unique_violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, http.StatusConflict},
		{"foreign_key_violation", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, http.StatusNotFound},
		{"other_pg_error", &pgconn.PgError{Code: pgerrcode.SerializationFailure}, http.StatusInternalServerError},
		{"plain_error", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_action")
			require.Error(t, wrapped)

			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
		})
	}
}

/*
TestWrap_Nil verifies that a nil error passes through untouched.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
}

/*
TestWrap_InternalKeepsCause verifies that internal errors preserve the
action and cause for server-side logs without leaking them to clients.
*/
func TestWrap_InternalKeepsCause(t *testing.T) {
	cause := errors.New("tcp reset")
	wrapped := dberr.Wrap(cause, "list_titles")

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "An unexpected error occurred", ae.Message)
	assert.ErrorIs(t, ae.Cause, cause)
	assert.Contains(t, ae.Cause.Error(), "list_titles")
}
