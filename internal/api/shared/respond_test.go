package shared_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meandevstar/atlas-backend/internal/api/shared"
	"github.com/meandevstar/atlas-backend/internal/domain"
)

func TestRespond(t *testing.T) {
	t.Parallel()

	t.Run("nil result is an empty 200", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)

		shared.Respond(rec, req, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("result is serialized as json", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)

		shared.Respond(rec, req, map[string]string{"message": "ok"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["message"])
	})
}

func TestRespondError(t *testing.T) {
	t.Parallel()

	t.Run("typed errors keep status and shape", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/trips/x", nil)

		shared.RespondError(rec, req, domain.NotFound("Trip not found"))

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "NotFound", body["name"])
		assert.Equal(t, "Trip not found", body["message"])
		assert.Len(t, body, 2, "status is carried by the response line only")
	})

	t.Run("unknown errors become a generic 500", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)

		shared.RespondError(rec, req, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Error", body["name"])
		assert.Equal(t, "An error occurred", body["message"])
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}
