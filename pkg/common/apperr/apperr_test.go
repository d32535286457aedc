package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStore = errors.New("store unavailable")

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeInternal, "x", http.StatusInternalServerError))

	err := Wrap(errStore, CodeUnavailable, "analyses", http.StatusServiceUnavailable)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, errStore))
	assert.Equal(t, "analyses: store unavailable", err.Error())
	assert.Equal(t, http.StatusServiceUnavailable, err.HTTPStatus)
}

func TestFrom(t *testing.T) {
	nf := NotFound("analysis", nil)
	wrapped := fmt.Errorf("handler: %w", nf)

	got := From(wrapped)
	assert.Same(t, nf, got)
	assert.Equal(t, "analysis not found", got.Error())

	plain := From(errStore)
	assert.Equal(t, CodeInternal, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.HTTPStatus)
}

func TestMapError(t *testing.T) {
	assert.Nil(t, MapError("dashboard", nil, CodeInternal, MsgComputeFailed, http.StatusInternalServerError))

	err := MapError("dashboard", errStore, CodeInternal, MsgComputeFailed, http.StatusInternalServerError)
	assert.Equal(t, "dashboard failed to compute: store unavailable", err.Error())

	ne := NewError("analysis", CodeNotFound, MsgNotFound, http.StatusNotFound, nil)
	assert.Equal(t, "analysis not found", ne.Error())
}
