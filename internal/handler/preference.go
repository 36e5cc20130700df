package handler

import (
	"net/http"

	"github.com/taskdesk/taskdesk-go/internal/model"
	"github.com/taskdesk/taskdesk-go/internal/service"
)

// PreferenceHandler handles HTTP requests for display preferences.
type PreferenceHandler struct {
	service *service.PreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(svc *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{service: svc}
}

// HandleGet handles GET /api/v1/preferences requests.
func (h *PreferenceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.service.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// HandleSetTheme handles PUT /api/v1/preferences/theme requests.
func (h *PreferenceHandler) HandleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req model.ThemeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	theme, err := h.service.SetTheme(r.Context(), req.Theme)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ThemeRequest{Theme: string(theme)})
}

// HandleSetFilter handles PUT /api/v1/preferences/filter requests.
func (h *PreferenceHandler) HandleSetFilter(w http.ResponseWriter, r *http.Request) {
	var req model.FilterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	filter, err := h.service.SetFilter(r.Context(), req.Filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.FilterRequest{Filter: string(filter)})
}
