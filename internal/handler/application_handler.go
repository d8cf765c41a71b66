// internal/handler/application_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/unclebandit/loanchat-backend/internal/service"
)

// ApplicationHandler exposes decided loan applications
type ApplicationHandler struct {
	Service *service.LoanService
}

// ListApplicationsHandler returns a paginated list of loan applications
func (h *ApplicationHandler) ListApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	pageStr := r.URL.Query().Get("page")
	pageSizeStr := r.URL.Query().Get("page_size")
	page := 1
	pageSize := 20

	if pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if pageSizeStr != "" {
		if ps, err := strconv.Atoi(pageSizeStr); err == nil && ps > 0 {
			pageSize = ps
		}
	}

	status := r.URL.Query().Get("status")

	apps, pagination, err := h.Service.ListApplications(page, pageSize, status)
	if err != nil {
		http.Error(w, "failed to fetch applications: "+err.Error(), http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"data":       apps,
		"pagination": pagination,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
