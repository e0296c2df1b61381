package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	cause := errors.New("connection refused")
	inner := Wrap(cause, CodeUnavailable, "authorization service unavailable")
	outer := Wrap(inner, CodeInternal, "approve failed")

	assert.True(t, HasCode(outer, CodeInternal))
	assert.True(t, HasCode(outer, CodeUnavailable))
	assert.False(t, HasCode(outer, CodeNotFound))
	assert.True(t, errors.Is(outer, cause))
}

func TestIs_OnlyMatchesOutermost(t *testing.T) {
	err := Wrap(New(CodeNotFound, "view not found"), CodeInternal, "load view")
	assert.True(t, Is(err, CodeInternal))
	assert.False(t, Is(err, CodeNotFound))
	assert.True(t, Is(fmt.Errorf("context: %w", New(CodeConflict, "x")), CodeConflict))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(CodeValidation))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatus(CodeInvalidState))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(CodeUnavailable))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Code("other")))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "bad", New(CodeBadRequest, "bad").Error())
	assert.Equal(t, "load: boom", Wrap(errors.New("boom"), CodeInternal, "load").Error())
}
