package handlers

import (
	"net/http"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/api/response"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/service"
)

// SystemHandler handles system level requests.
type SystemHandler struct {
	system *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(system *service.SystemService) *SystemHandler {
	return &SystemHandler{system: system}
}

// Health handles GET requests for the service health check.
//
// Endpoint: GET /api/system/health
// Response: 200 OK when the database responds, 503 otherwise
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.system.CheckHealth(); err != nil {
		response.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
		})
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
