package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assay-backend/internal/apperr"
)

func TestError_MapsKinds(t *testing.T) {
	tests := []struct {
		err    error
		status int
		body   string
	}{
		{apperr.NotFound("Customer not found"), http.StatusNotFound, `{"detail":"Customer not found"}`},
		{apperr.Validation("Amount: must be greater than 0"), http.StatusUnprocessableEntity, `{"detail":"Amount: must be greater than 0"}`},
		{apperr.TransactionFailed(errors.New("deadlock")), http.StatusInternalServerError, `{"detail":"Database transaction failed"}`},
		{errors.New("pq: password authentication failed"), http.StatusInternalServerError, `{"detail":"Internal server error"}`},
	}
	for _, tt := range tests {
		log, _ := test.NewNullLogger()
		rec := httptest.NewRecorder()
		Error(rec, log, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
		assert.Equal(t, tt.status, rec.Code)
		assert.JSONEq(t, tt.body, rec.Body.String())
	}
}

func TestError_LogsServerFailuresOnly(t *testing.T) {
	log, hook := test.NewNullLogger()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/credithistory", nil)

	Error(httptest.NewRecorder(), log, req, apperr.NotFound("x"))
	assert.Empty(t, hook.Entries)

	Error(httptest.NewRecorder(), log, req, apperr.TransactionFailed(errors.New("deadlock")))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "transaction_failed", hook.LastEntry().Data["kind"])
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"Name"`
		Age  int    `json:"Age"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(DecodeJSON(req, &dst)))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"Age":"old"}`))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(DecodeJSON(req, &dst)))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"Name":"Ravi","Extra":1}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "Ravi", dst.Name)
}

func TestPageRequest(t *testing.T) {
	p, err := PageRequest(httptest.NewRequest(http.MethodGet, "/?page=0&limit=500", nil))
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.Limit)

	p, err = PageRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 20, p.Limit)

	_, err = PageRequest(httptest.NewRequest(http.MethodGet, "/?limit=ten", nil))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
