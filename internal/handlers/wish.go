package handlers

import (
	"net/http"
	"strconv"
	"time"
)

type toneResponse struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

func (h *Handler) SuggestWishes(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	count := 5
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid count"})
			return
		}
		count = n
	}
	tone := r.URL.Query().Get("tone")

	wishes, err := h.services.Wish.Suggest(id, userIDFrom(r), count, tone, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, wishes)
}

func (h *Handler) WishTones(w http.ResponseWriter, r *http.Request) {
	tones := h.services.Wish.Tones()

	out := make([]toneResponse, 0, len(tones))
	for _, tone := range tones {
		out = append(out, toneResponse(tone))
	}
	respondJSON(w, http.StatusOK, out)
}
