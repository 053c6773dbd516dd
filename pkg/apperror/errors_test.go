package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad")))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("create: %w", Conflict("dup"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindInternal))
	assert.True(t, Is(NotFound("x"), KindNotFound))
}

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:   http.StatusBadRequest,
		KindUnauthorized: http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindNotFound:     http.StatusNotFound,
		KindConflict:     http.StatusConflict,
		KindInternal:     http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.HTTPStatus(), kind.String())
	}
}

func TestTranslate(t *testing.T) {
	assert.Nil(t, Translate(nil))

	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	got := Translate(unique)
	assert.Equal(t, KindConflict, got.Kind)
	assert.Equal(t, "Resource already exists", got.Message)
	assert.True(t, IsUniqueViolation(unique))

	fk := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, KindValidation, Translate(fk).Kind)

	forbidden := Forbidden("nope")
	assert.Same(t, forbidden, Translate(forbidden))

	internal := Translate(errors.New("connection reset"))
	assert.Equal(t, KindInternal, internal.Kind)
	assert.Equal(t, "Internal server error", internal.Message)
	assert.EqualError(t, internal.Unwrap(), "connection reset")
}
