package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"birthdayreminder/internal/domain"
	"birthdayreminder/internal/domain/entity"
	"birthdayreminder/internal/domain/service"
)

const dateLayout = "2006-01-02"

type birthdayRequest struct {
	FriendName  string `json:"friendName"`
	BirthDate   string `json:"birthDate"`
	FriendEmail string `json:"friendEmail"`
	Notes       string `json:"notes"`
	CategoryID  *int64 `json:"categoryId"`
	IsActive    *bool  `json:"isActive"`
}

type birthdayResponse struct {
	ID           int64  `json:"id"`
	FriendName   string `json:"friendName"`
	BirthDate    string `json:"birthDate"`
	FriendEmail  string `json:"friendEmail,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CategoryID   *int64 `json:"categoryId,omitempty"`
	IsActive     bool   `json:"isActive"`
	DaysUntil    int    `json:"daysUntil"`
	NextBirthday string `json:"nextBirthday"`
	TurningAge   int    `json:"turningAge"`
}

func toBirthdayResponse(b *entity.Birthday, ref time.Time) birthdayResponse {
	return birthdayResponse{
		ID:           b.ID,
		FriendName:   b.FriendName,
		BirthDate:    b.BirthDate.Format(dateLayout),
		FriendEmail:  b.FriendEmail,
		Notes:        b.Notes,
		CategoryID:   b.CategoryID,
		IsActive:     b.IsActive,
		DaysUntil:    domain.DaysUntil(b.BirthDate, ref),
		NextBirthday: domain.NextOccurrence(b.BirthDate, ref).Format(dateLayout),
		TurningAge:   domain.CurrentAge(b.BirthDate, ref) + 1,
	}
}

func toBirthdayResponses(birthdays []*entity.Birthday, ref time.Time) []birthdayResponse {
	out := make([]birthdayResponse, 0, len(birthdays))
	for _, b := range birthdays {
		out = append(out, toBirthdayResponse(b, ref))
	}
	return out
}

func (h *Handler) ListBirthdays(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)

	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid categoryId"})
			return
		}
		birthdays, err := h.services.Birthday.ListByCategory(userID, categoryID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, toBirthdayResponses(birthdays, time.Now()))
		return
	}

	birthdays, err := h.services.Birthday.List(userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toBirthdayResponses(birthdays, time.Now()))
}

func (h *Handler) GetBirthday(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	birthday, err := h.services.Birthday.Get(id, userIDFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toBirthdayResponse(birthday, time.Now()))
}

func (h *Handler) CreateBirthday(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeBirthdayInput(w, r)
	if !ok {
		return
	}

	birthday, err := h.services.Birthday.Create(userIDFrom(r), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toBirthdayResponse(birthday, time.Now()))
}

func (h *Handler) UpdateBirthday(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	input, ok := decodeBirthdayInput(w, r)
	if !ok {
		return
	}

	birthday, err := h.services.Birthday.Update(id, userIDFrom(r), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toBirthdayResponse(birthday, time.Now()))
}

func (h *Handler) DeleteBirthday(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.services.Birthday.Delete(id, userIDFrom(r)); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) UpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid days"})
			return
		}
		days = n
	}

	now := time.Now()
	upcoming, err := h.services.Birthday.Upcoming(userIDFrom(r), days, now)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]birthdayResponse, 0, len(upcoming))
	for _, u := range upcoming {
		out = append(out, toBirthdayResponse(u.Birthday, now))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) SearchBirthdays(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "name query parameter is required"})
		return
	}

	birthdays, err := h.services.Birthday.Search(userIDFrom(r), name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toBirthdayResponses(birthdays, time.Now()))
}

func (h *Handler) ImportBirthdays(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "file form field is required"})
		return
	}
	defer file.Close()

	result, err := h.services.Birthday.ImportCSV(userIDFrom(r), file)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"imported":      toBirthdayResponses(result.Imported, time.Now()),
		"importedCount": len(result.Imported),
		"errors":        result.Errors,
		"errorCount":    len(result.Errors),
	})
}

type monthCountResponse struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type ageBucketResponse struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type analyticsResponse struct {
	TotalBirthdays       int64                `json:"totalBirthdays"`
	ActiveBirthdays      int                  `json:"activeBirthdays"`
	UpcomingIn7Days      int                  `json:"upcomingIn7Days"`
	UpcomingIn30Days     int                  `json:"upcomingIn30Days"`
	UpcomingIn90Days     int                  `json:"upcomingIn90Days"`
	MonthlyDistribution  []monthCountResponse `json:"monthlyDistribution"`
	CategoryDistribution map[string]int       `json:"categoryDistribution"`
	AgeDistribution      []ageBucketResponse  `json:"ageDistribution"`
}

func (h *Handler) BirthdayAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.services.Birthday.Analytics(userIDFrom(r), time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	out := analyticsResponse{
		TotalBirthdays:       analytics.TotalBirthdays,
		ActiveBirthdays:      analytics.ActiveBirthdays,
		UpcomingIn7Days:      analytics.UpcomingIn7Days,
		UpcomingIn30Days:     analytics.UpcomingIn30Days,
		UpcomingIn90Days:     analytics.UpcomingIn90Days,
		CategoryDistribution: analytics.CategoryDistribution,
	}
	for _, m := range analytics.MonthlyDistribution {
		out.MonthlyDistribution = append(out.MonthlyDistribution, monthCountResponse(m))
	}
	for _, b := range analytics.AgeDistribution {
		out.AgeDistribution = append(out.AgeDistribution, ageBucketResponse(b))
	}

	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) ExportICal(w http.ResponseWriter, r *http.Request) {
	ical, err := h.services.Birthday.ExportICal(userIDFrom(r), time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="birthdays.ics"`)
	_, _ = w.Write([]byte(ical))
}

func decodeBirthdayInput(w http.ResponseWriter, r *http.Request) (service.BirthdayInput, bool) {
	var req birthdayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return service.BirthdayInput{}, false
	}

	birthDate, err := time.Parse(dateLayout, req.BirthDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "birthDate must be in YYYY-MM-DD format"})
		return service.BirthdayInput{}, false
	}

	return service.BirthdayInput{
		FriendName:  req.FriendName,
		BirthDate:   birthDate,
		FriendEmail: req.FriendEmail,
		Notes:       req.Notes,
		CategoryID:  req.CategoryID,
		IsActive:    req.IsActive,
	}, true
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}
