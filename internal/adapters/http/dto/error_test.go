package dto_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-service/internal/domain"
)

func TestErrorStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &domain.ValidationError{Fields: map[string]string{"title": domain.MsgRequired}}, http.StatusBadRequest},
		{"storage", &domain.StorageError{Op: "list todos", Err: errors.New("boom")}, http.StatusInternalServerError},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"too large", fmt.Errorf("decoding: %w", &http.MaxBytesError{Limit: 1}), http.StatusRequestEntityTooLarge},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, dto.ErrorStatus(tt.err))
		})
	}
}

func TestWriteErrorResponse_StorageDetailCarriesErrorText(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/todos", nil)

	dto.WriteErrorResponse(rec, req, &domain.StorageError{Op: "insert todo", Err: errors.New("connection refused")})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, dto.ContentTypeProblem, rec.Header().Get("Content-Type"))

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "failed to insert todo: connection refused", body.Detail)
	assert.Equal(t, "/todos", body.Instance)
	assert.Equal(t, http.StatusInternalServerError, body.Status)
}

func TestWriteErrorResponse_ValidationDetailsSorted(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/todos", nil)

	dto.WriteErrorResponse(rec, req, &domain.ValidationError{Fields: map[string]string{
		"title":       domain.MsgRequired,
		"description": domain.MsgRequired,
	}})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "body.description", body.Errors[0].Location)
	assert.Equal(t, "body.title", body.Errors[1].Location)
}
