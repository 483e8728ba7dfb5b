package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/api/handlers"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/application/services"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

func TestViewHandler(t *testing.T) {
	handler := handlers.NewViewHandler(services.NewViewController(services.NewTaskRegistry()))

	w := httptest.NewRecorder()
	handler.GetView(w, httptest.NewRequest(http.MethodGet, "/api/view", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		View     entities.View   `json:"view"`
		Previous entities.View   `json:"previous"`
		Views    []entities.View `json:"views"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, entities.ViewDashboard, body.View)
	assert.Len(t, body.Views, 6)

	w = httptest.NewRecorder()
	handler.SetView(w, jsonRequest(t, http.MethodPut, "/api/view", map[string]string{"view": "search"}))
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &body)
	assert.Equal(t, entities.ViewSearch, body.View)
	assert.Equal(t, entities.ViewDashboard, body.Previous)

	w = httptest.NewRecorder()
	handler.SetView(w, jsonRequest(t, http.MethodPut, "/api/view", map[string]string{"view": "settings"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
