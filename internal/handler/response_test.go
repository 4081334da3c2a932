package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/medilink/records-api/pkg/errors"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.NewValidation("missing field"), http.StatusBadRequest},
		{"duplicate", apperrors.NewDuplicate("patient record", "unique ID", nil), http.StatusConflict},
		{"not found", apperrors.NewNotFound("patient record", nil), http.StatusNotFound},
		{"unauthorized", apperrors.Unauthorized(nil), http.StatusUnauthorized},
		{"forbidden", apperrors.Forbidden("role mismatch"), http.StatusForbidden},
		{"plain error", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}

func TestBindingErrorMessage(t *testing.T) {
	type loginForm struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}

	v := validator.New()
	err := v.Struct(loginForm{Email: "not-an-email", Password: "short"})
	msg := BindingErrorMessage(err)

	assert.Contains(t, msg, "Email must be a valid email")
	assert.Contains(t, msg, "Password must be at least 8 characters")
}

func TestBindingErrorMessagePassthrough(t *testing.T) {
	err := errors.New("unexpected EOF")
	assert.Equal(t, "unexpected EOF", BindingErrorMessage(err))
}
