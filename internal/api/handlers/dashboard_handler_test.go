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

func TestDashboardHandler_GetDashboard(t *testing.T) {
	handler := handlers.NewDashboardHandler(services.NewDashboardService(newRecords(t)))

	w := httptest.NewRecorder()
	handler.GetDashboard(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var summary entities.DashboardSummary
	decodeBody(t, w, &summary)
	assert.Equal(t, 8, summary.TotalPatients)
	assert.Equal(t, 2, summary.TodayCount)
	require.Len(t, summary.GenderDistribution, 3)
	assert.Equal(t, "50.0%", summary.GenderDistribution[0].Label)
	assert.Equal(t, "50.0%", summary.GenderDistribution[1].Label)
	assert.Equal(t, "0.0%", summary.GenderDistribution[2].Label)
	assert.Len(t, summary.TopConditions, 5)
}
