package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"bad request", fmt.Errorf("%w: content is required", ErrBadRequest), http.StatusBadRequest},
		{"unauthorized", fmt.Errorf("%w: token expired", ErrUnauthorized), http.StatusUnauthorized},
		{"reference", &ReferenceNotFoundError{Reference: "solution", ID: "s-1"}, http.StatusNotFound},
		{"conflict", ErrConflict, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestReferenceNotFoundError(t *testing.T) {
	err := fmt.Errorf("create feedback: %w", &ReferenceNotFoundError{Reference: "user", ID: "u-1"})

	var refErr *ReferenceNotFoundError
	assert.True(t, errors.As(err, &refErr))
	assert.Equal(t, "user", refErr.Reference)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), `user "u-1" not found`)
}
