package handlers

import (
	"encoding/json"
	"net/http"

	"birthdayreminder/internal/domain/entity"
	"birthdayreminder/internal/domain/service"
)

type settingsRequest struct {
	NotificationDays []int   `json:"notificationDays"`
	EmailEnabled     *bool   `json:"emailEnabled"`
	EmailTemplate    *string `json:"emailTemplate"`
	NotificationTime *string `json:"notificationTime"`
}

type settingsResponse struct {
	NotificationDays []int  `json:"notificationDays"`
	EmailEnabled     bool   `json:"emailEnabled"`
	EmailTemplate    string `json:"emailTemplate"`
	NotificationTime string `json:"notificationTime"`
}

func toSettingsResponse(s *entity.NotificationSettings) settingsResponse {
	return settingsResponse{
		NotificationDays: s.LeadDays,
		EmailEnabled:     s.EmailEnabled,
		EmailTemplate:    s.EmailTemplate,
		NotificationTime: s.NotificationTime,
	}
}

// GetSettings returns the user's notification settings, lazily creating
// defaults on first access.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.services.Settings.Get(userIDFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toSettingsResponse(settings))
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	settings, err := h.services.Settings.Update(userIDFrom(r), service.UpdateSettingsInput{
		LeadDays:         req.NotificationDays,
		EmailEnabled:     req.EmailEnabled,
		EmailTemplate:    req.EmailTemplate,
		NotificationTime: req.NotificationTime,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toSettingsResponse(settings))
}
