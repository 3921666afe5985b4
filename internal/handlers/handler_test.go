package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"birthdayreminder/internal/config"
	"birthdayreminder/internal/database"
	"birthdayreminder/internal/domain/service"
	"birthdayreminder/mocks"
)

type testServer struct {
	server *httptest.Server
	mailer *mocks.MockMailer
	token  string
}

// setupTestServer wires the full stack against an in-memory database, with
// only the SMTP transport mocked out.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	db := database.SetupTestDB(t)
	t.Cleanup(func() { database.CleanupTestDB(t, db) })

	ctrl := gomock.NewController(t)
	mailer := mocks.NewMockMailer(ctrl)

	services := service.New(database.NewInstance(db), mailer, zerolog.Nop(), service.AuthConfig{
		JWTSecret: []byte("test-secret"),
		TokenTTL:  time.Hour,
	})

	h := New(services, zerolog.Nop())
	router := h.Router(&config.Config{CORSAllowOrigins: []string{"*"}})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testServer{server: server, mailer: mailer}
}

func (ts *testServer) request(t *testing.T, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if ts.token != "" {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return resp, raw
}

func (ts *testServer) registerUser(t *testing.T, email string) {
	t.Helper()

	resp, raw := ts.request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(raw, &auth))
	require.NotEmpty(t, auth.Token)
	ts.token = auth.Token
}

func TestHealth(t *testing.T) {
	ts := setupTestServer(t)

	resp, raw := ts.request(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))
}

func TestAuthFlow(t *testing.T) {
	ts := setupTestServer(t)

	t.Run("should register and return a token", func(t *testing.T) {
		ts.registerUser(t, "alice@example.com")
	})

	t.Run("should reject a duplicate registration", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPost, "/api/auth/register", map[string]string{
			"name":     "Alice Again",
			"email":    "alice@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("should reject a short password", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPost, "/api/auth/register", map[string]string{
			"name":     "Bob",
			"email":    "bob@example.com",
			"password": "123",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("should log in with valid credentials", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "ALICE@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("should reject requests without a token", func(t *testing.T) {
		anon := &testServer{server: ts.server}
		resp, _ := anon.request(t, http.MethodGet, "/api/birthdays", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("should reject a garbage token", func(t *testing.T) {
		bad := &testServer{server: ts.server, token: "not.a.token"}
		resp, _ := bad.request(t, http.MethodGet, "/api/birthdays", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestBirthdayCRUD(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerUser(t, "alice@example.com")

	var created struct {
		ID         int64  `json:"id"`
		FriendName string `json:"friendName"`
		BirthDate  string `json:"birthDate"`
		TurningAge int    `json:"turningAge"`
		IsActive   bool   `json:"isActive"`
	}

	t.Run("should create a birthday", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodPost, "/api/birthdays", map[string]string{
			"friendName": "Bob",
			"birthDate":  "1990-03-04",
			"notes":      "college friend",
		})

		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
		require.NoError(t, json.Unmarshal(raw, &created))
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Bob", created.FriendName)
		assert.Equal(t, "1990-03-04", created.BirthDate)
		assert.True(t, created.IsActive)
		assert.Positive(t, created.TurningAge)
	})

	t.Run("should reject a malformed birth date", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPost, "/api/birthdays", map[string]string{
			"friendName": "Carol",
			"birthDate":  "03/04/1990",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("should get the birthday", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodGet, fmt.Sprintf("/api/birthdays/%d", created.ID), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(raw), `"friendName":"Bob"`)
	})

	t.Run("should update the birthday", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodPut, fmt.Sprintf("/api/birthdays/%d", created.ID), map[string]string{
			"friendName": "Robert",
			"birthDate":  "1990-03-04",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(raw), `"friendName":"Robert"`)
	})

	t.Run("should search by name", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodGet, "/api/birthdays/search?name=robe", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(raw), `"friendName":"Robert"`)
	})

	t.Run("should delete the birthday", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodDelete, fmt.Sprintf("/api/birthdays/%d", created.ID), nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, _ = ts.request(t, http.MethodGet, fmt.Sprintf("/api/birthdays/%d", created.ID), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestBirthdayIsolationBetweenUsers(t *testing.T) {
	ts := setupTestServer(t)

	ts.registerUser(t, "alice@example.com")
	resp, raw := ts.request(t, http.MethodPost, "/api/birthdays", map[string]string{
		"friendName": "Bob",
		"birthDate":  "1990-03-04",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))

	// Second user must not see or touch the first user's data.
	ts.registerUser(t, "mallory@example.com")

	resp, _ = ts.request(t, http.MethodGet, fmt.Sprintf("/api/birthdays/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = ts.request(t, http.MethodDelete, fmt.Sprintf("/api/birthdays/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSettingsEndpoints(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerUser(t, "alice@example.com")

	t.Run("should return default settings", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodGet, "/api/settings", nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var settings struct {
			NotificationDays []int  `json:"notificationDays"`
			EmailEnabled     bool   `json:"emailEnabled"`
			NotificationTime string `json:"notificationTime"`
		}
		require.NoError(t, json.Unmarshal(raw, &settings))
		assert.Equal(t, []int{1, 3, 7}, settings.NotificationDays)
		assert.True(t, settings.EmailEnabled)
		assert.Equal(t, "08:00", settings.NotificationTime)
	})

	t.Run("should canonicalize updated notification days", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodPut, "/api/settings", map[string]interface{}{
			"notificationDays": []int{14, 0, 14, 7},
			"notificationTime": "19:00",
		})

		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

		var settings struct {
			NotificationDays []int  `json:"notificationDays"`
			NotificationTime string `json:"notificationTime"`
		}
		require.NoError(t, json.Unmarshal(raw, &settings))
		assert.Equal(t, []int{0, 7, 14}, settings.NotificationDays)
		assert.Equal(t, "19:00", settings.NotificationTime)
	})

	t.Run("should reject out-of-range notification days", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPut, "/api/settings", map[string]interface{}{
			"notificationDays": []int{45},
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCategoryEndpoints(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerUser(t, "alice@example.com")

	t.Run("should have default categories after registration", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodGet, "/api/categories", nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var categories []struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(raw, &categories))
		require.Len(t, categories, 4)

		names := make([]string, 0, len(categories))
		for _, c := range categories {
			names = append(names, c.Name)
		}
		assert.ElementsMatch(t, []string{"Family", "Friends", "Work", "Other"}, names)
	})

	t.Run("should reject a duplicate category name", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPost, "/api/categories", map[string]string{
			"name":  "Friends",
			"color": "#000000",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("should create a new category", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodPost, "/api/categories", map[string]string{
			"name":  "Colleagues",
			"color": "#10b981",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	})

	t.Run("should get a category by id", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodGet, "/api/categories", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var categories []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(raw, &categories))
		require.NotEmpty(t, categories)

		resp, raw = ts.request(t, http.MethodGet, fmt.Sprintf("/api/categories/%d", categories[0].ID), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(raw), fmt.Sprintf(`"name":"%s"`, categories[0].Name))
	})

	t.Run("should return not found for an unknown category id", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodGet, "/api/categories/9999", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAnalyticsEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerUser(t, "alice@example.com")

	for _, b := range []map[string]string{
		{"friendName": "Bob", "birthDate": "1990-03-04"},
		{"friendName": "Carol", "birthDate": "1985-03-20"},
	} {
		resp, raw := ts.request(t, http.MethodPost, "/api/birthdays", b)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	}

	resp, raw := ts.request(t, http.MethodGet, "/api/birthdays/analytics", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var analytics struct {
		TotalBirthdays  int64 `json:"totalBirthdays"`
		ActiveBirthdays int   `json:"activeBirthdays"`
		Monthly         []struct {
			Month string `json:"month"`
			Count int    `json:"count"`
		} `json:"monthlyDistribution"`
		Categories map[string]int `json:"categoryDistribution"`
		Ages       []struct {
			Range string `json:"range"`
			Count int    `json:"count"`
		} `json:"ageDistribution"`
	}
	require.NoError(t, json.Unmarshal(raw, &analytics))

	assert.Equal(t, int64(2), analytics.TotalBirthdays)
	assert.Equal(t, 2, analytics.ActiveBirthdays)

	require.Len(t, analytics.Monthly, 12)
	assert.Equal(t, "Jan", analytics.Monthly[0].Month)
	assert.Equal(t, 2, analytics.Monthly[2].Count, "both birthdays fall in March")

	assert.Equal(t, 2, analytics.Categories["Uncategorized"])
	require.Len(t, analytics.Ages, 5)
}

func TestWishEndpoints(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerUser(t, "alice@example.com")

	resp, raw := ts.request(t, http.MethodPost, "/api/birthdays", map[string]string{
		"friendName": "Bob Smith",
		"birthDate":  "1990-03-04",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))

	t.Run("should list the tone options", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodGet, "/api/wishes/tones", nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var tones []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		}
		require.NoError(t, json.Unmarshal(raw, &tones))
		require.Len(t, tones, 4)
		assert.Equal(t, "heartfelt", tones[0].Value)
	})

	t.Run("should suggest personalized wishes", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodGet, fmt.Sprintf("/api/wishes/%d?count=3&tone=funny", created.ID), nil)

		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

		var wishes []string
		require.NoError(t, json.Unmarshal(raw, &wishes))
		require.Len(t, wishes, 3)
		for _, wish := range wishes {
			assert.Contains(t, wish, "Bob")
			assert.NotContains(t, wish, "{name}")
		}
	})

	t.Run("should reject a non-numeric count", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodGet, fmt.Sprintf("/api/wishes/%d?count=lots", created.ID), nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("should return not found for an unknown birthday", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodGet, "/api/wishes/9999", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestNotificationEndpoints(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerUser(t, "alice@example.com")

	t.Run("should send a test notification", func(t *testing.T) {
		ts.mailer.EXPECT().SendTest(gomock.Any()).Return(nil).Times(1)

		resp, _ := ts.request(t, http.MethodPost, "/api/notifications/test", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("should run a pass and report counters", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodPost, "/api/notifications/trigger", nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var summary struct {
			Sent             int `json:"sent"`
			Failed           int `json:"failed"`
			SkippedWrongHour int `json:"skippedWrongHour"`
			SkippedDisabled  int `json:"skippedDisabled"`
		}
		require.NoError(t, json.Unmarshal(raw, &summary))
		// With no due birthdays the pass only skips or does nothing; it must
		// never report sends.
		assert.Zero(t, summary.Sent)
		assert.Zero(t, summary.Failed)
	})
}

func TestImportAndExport(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerUser(t, "alice@example.com")

	t.Run("should import a CSV file", func(t *testing.T) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("file", "birthdays.csv")
		require.NoError(t, err)
		_, err = part.Write([]byte("name,date\nBob,1990-03-04\nCarol,1985-05-12\nbad-line\n"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req, err := http.NewRequest(http.MethodPost, ts.server.URL+"/api/birthdays/import", &buf)
		require.NoError(t, err)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+ts.token)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

		var result struct {
			ImportedCount int      `json:"importedCount"`
			ErrorCount    int      `json:"errorCount"`
			Errors        []string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(raw, &result))
		assert.Equal(t, 2, result.ImportedCount)
		assert.Equal(t, 1, result.ErrorCount)
	})

	t.Run("should export an iCal document", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodGet, "/api/birthdays/export/ical", nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/calendar; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.True(t, strings.HasPrefix(string(raw), "BEGIN:VCALENDAR"))
		assert.Contains(t, string(raw), "SUMMARY:Bob's Birthday")
		assert.Contains(t, string(raw), "SUMMARY:Carol's Birthday")
	})
}
