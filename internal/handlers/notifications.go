package handlers

import (
	"net/http"
	"time"
)

// TriggerNotifications runs one scheduling pass synchronously. Semantics are
// identical to the hourly tick; intended for operational testing.
func (h *Handler) TriggerNotifications(w http.ResponseWriter, r *http.Request) {
	summary := h.services.Scheduler.RunPass(time.Now())

	respondJSON(w, http.StatusOK, map[string]int{
		"sent":             summary.Sent,
		"failed":           summary.Failed,
		"skippedWrongHour": summary.SkippedWrongHour,
		"skippedDisabled":  summary.SkippedDisabled,
	})
}

// TestNotification sends a fixed verification email to the authenticated
// user, bypassing matching entirely.
func (h *Handler) TestNotification(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Scheduler.SendTestNotification(userIDFrom(r)); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "test notification sent"})
}
