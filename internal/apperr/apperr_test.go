package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusUnprocessableEntity},
		{KindBadRequest, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindTransactionFailed, http.StatusInternalServerError},
		{KindUnavailable, http.StatusServiceUnavailable},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.HTTPStatus())
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("service: %w", NotFound("Customer not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, Is(err, KindNotFound))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindInternal))
}

func TestPublicHidesCause(t *testing.T) {
	cause := errors.New("connection reset by peer")

	tx := TransactionFailed(cause)
	assert.Equal(t, "Database transaction failed", tx.Public())
	assert.ErrorIs(t, tx, cause)

	internal := Internal("list customers", cause)
	assert.Equal(t, "Internal server error", internal.Public())

	assert.Equal(t, "Phone already exists", Conflict("Phone already exists").Public())
}

func TestFromDB(t *testing.T) {
	assert.NoError(t, FromDB(nil, "x", "y"))

	err := FromDB(pgx.ErrNoRows, "Customer not found", "")
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Customer not found", As(err).Message)

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "customers_phone_live_key"}
	err = FromDB(fmt.Errorf("insert: %w", dup), "", "Phone already exists")
	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, IsUniqueViolation(err))

	err = FromDB(errors.New("syntax error"), "", "")
	assert.Equal(t, KindInternal, KindOf(err))

	already := BadRequest("No fields to update")
	assert.Same(t, already, FromDB(already, "", ""))
}
