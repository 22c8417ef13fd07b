package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		err := New(KindTooOld, "too old")
		assert.Equal(t, KindTooOld, KindOf(err))
	})

	t.Run("wrapped with fmt", func(t *testing.T) {
		err := fmt.Errorf("delete: %w", New(KindPreconditionFailed, "createdAt is required"))
		assert.Equal(t, KindPreconditionFailed, KindOf(err))
		assert.True(t, Is(err, KindPreconditionFailed))
	})

	t.Run("plain error is internal", func(t *testing.T) {
		assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	})

	t.Run("nil is not any kind", func(t *testing.T) {
		assert.False(t, Is(nil, KindInternal))
	})
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("comment text cannot be empty")
	err := Wrap(cause, KindContentPolicy, cause.Error())

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindContentPolicy, err.Kind())
	assert.Equal(t, "comment text cannot be empty", err.Error())
}

func TestWithFieldCopies(t *testing.T) {
	base := New(KindFieldValidation, "author is required")
	withField := base.WithField("author")

	assert.Equal(t, "author", withField.Field())
	assert.Empty(t, base.Field())
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindFieldValidation:    http.StatusBadRequest,
		KindContentPolicy:      http.StatusBadRequest,
		KindPreconditionFailed: http.StatusBadRequest,
		KindTooOld:             http.StatusBadRequest,
		KindNotFound:           http.StatusNotFound,
		KindUnauthorized:       http.StatusUnauthorized,
		KindForbidden:          http.StatusForbidden,
		KindConflict:           http.StatusConflict,
		KindInternal:           http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(kind), kind.String())
	}
}
