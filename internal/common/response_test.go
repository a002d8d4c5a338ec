package common_test

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"hotel_hub/internal/common"

	"github.com/stretchr/testify/assert"
)

func TestRespondFromErrorPassesDomainErrorsThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	common.RespondFromError(rec, common.Errorf("room 101 not found: %w", common.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "room 101 not found")
}

func TestRespondFromErrorHidesInternalDetail(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	rec := httptest.NewRecorder()
	common.RespondFromError(rec, common.Errorf(`relation "users" does not exist (SQLSTATE 42P01)`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), common.ErrInternalServer.Error())
	assert.NotContains(t, rec.Body.String(), "SQLSTATE")
	assert.Contains(t, logs.String(), "SQLSTATE 42P01")
}
