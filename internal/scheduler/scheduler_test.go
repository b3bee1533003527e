package scheduler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"real-estate-crm/internal/calendar"
	"real-estate-crm/internal/config"
	"real-estate-crm/internal/models"
	"real-estate-crm/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestParseDailyTime(t *testing.T) {
	assert.Equal(t, "30 6 * * *", parseDailyTime("06:30"))
	assert.Equal(t, "0 0 * * *", parseDailyTime("00:00"))
	assert.Equal(t, "59 23 * * *", parseDailyTime("23:59"))
}

func TestParseDailyTimeFallback(t *testing.T) {
	for _, input := range []string{"", "noon", "25:00", "06:99", "6", "-1:30"} {
		assert.Equal(t, "0 6 * * *", parseDailyTime(input), "input %q", input)
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Agent{}, &models.AgentSettings{}, &models.Task{}, &models.Activity{},
	))
	return db
}

// newFakeCalendarAPI serves a token endpoint and a one-event calendar
func newFakeCalendarAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"fresh-access","refresh_token":"fresh-refresh","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/calendars/primary/events", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				{
					"id":      "evt-1",
					"summary": "Open house",
					"start":   map[string]interface{}{"dateTime": time.Now().Add(24 * time.Hour).Format(time.RFC3339)},
				},
			},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRunCalendarSyncIsolatesFailures(t *testing.T) {
	db := newTestDB(t)
	srv := newFakeCalendarAPI(t)

	cal := calendar.NewServiceWithOptions(db, config.GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/api/calendar/callback",
	}, calendar.Options{
		AuthEndpoint: oauth2.Endpoint{
			AuthURL:  srv.URL + "/auth",
			TokenURL: srv.URL + "/token",
		},
		APIOptions: []option.ClientOption{option.WithEndpoint(srv.URL + "/")},
	})

	// Healthy agent with a valid stored token
	healthy := models.Agent{ID: uuid.NewString(), Email: "ok@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&healthy).Error)
	require.NoError(t, services.NewAgentService(db).SaveGoogleToken(
		healthy.ID, "stored-access", "stored-refresh", time.Now().Add(time.Hour)))

	// Broken agent: flagged connected but its credential is gone
	broken := models.Agent{ID: uuid.NewString(), Email: "broken@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&broken).Error)
	require.NoError(t, db.Create(&models.AgentSettings{
		ID:                      uuid.NewString(),
		AgentID:                 broken.ID,
		GoogleCalendarConnected: true,
	}).Error)

	s := NewScheduler(db, cal, config.DefaultConfig())
	err := s.RunCalendarSync()

	// The broken agent is reported but does not stop the run
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")

	task, err := services.NewTaskService(db).FindByCalendarEventID("evt-1", healthy.ID)
	require.NoError(t, err)
	assert.Equal(t, "Open house", task.Title)
}
