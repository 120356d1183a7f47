package utils_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chrisdamba/delaycompanion/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestRenderResponse(t *testing.T) {
	t.Run("defaults to json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		utils.RenderResponse(req, rec, http.StatusOK, map[string]string{"ok": "yes"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"ok":"yes"}`, rec.Body.String())
	})

	t.Run("honours xml accept header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "application/xml")
		rec := httptest.NewRecorder()

		utils.RenderResponse(req, rec, http.StatusOK, struct{ Name string }{"F100"})

		assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "<response>")
	})

	t.Run("renders api errors with their status", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		ae := utils.NewNotFound("flight not found")
		utils.RenderResponse(req, rec, ae.StatusCode, ae)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "flight not found")
	})
}

func TestAllowedContentTypes(t *testing.T) {
	handler := utils.AllowedContentTypes(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, "application/json")

	t.Run("accepted media type passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		rec := httptest.NewRecorder()

		handler(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unsupported media type is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("<xml/>"))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()

		handler(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestJsonDecodeBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"new_flight_id":"F200"}`))

	var dst struct {
		NewFlightID string `json:"new_flight_id"`
	}
	assert.NoError(t, utils.JsonDecodeBody(req, &dst))
	assert.Equal(t, "F200", dst.NewFlightID)
}
