package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uktrade/export-wins-mi/internal/config"
	"github.com/uktrade/export-wins-mi/internal/database"
	"github.com/uktrade/export-wins-mi/internal/events"
	"github.com/uktrade/export-wins-mi/internal/modules/hierarchy"
	"github.com/uktrade/export-wins-mi/internal/modules/mi"
	"github.com/uktrade/export-wins-mi/internal/modules/wins"
)

func setupServer(t *testing.T) *Server {
	db, err := database.New(filepath.Join(t.TempDir(), "mi.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	log := zerolog.Nop()
	winsRepo := wins.NewRepository(db.Conn(), log)
	hierRepo := hierarchy.NewRepository(db.Conn(), log)
	cache := mi.NewReportCache(db.Conn(), 30*time.Minute, log)

	return New(Config{
		Port:    0,
		Log:     log,
		DB:      db,
		Config:  &config.Config{Port: 0},
		DevMode: true,
		MI:      mi.NewHandler(winsRepo, hierRepo, cache, log),
		Events:  events.NewManager(log),
	})
}

func TestHealthRoute(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "export-wins-mi", body["service"])
}

func TestMetricsRoute(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMIRoutesMounted(t *testing.T) {
	srv := setupServer(t)

	// Empty database still serves the list endpoints
	for _, url := range []string{
		"/api/mi/sector_teams/",
		"/api/mi/hvc_groups/",
		"/api/mi/os_regions/",
		"/api/mi/countries/",
		"/api/mi/parent_sectors/",
		"/api/mi/avg_time_to_confirm/",
	} {
		req := httptest.NewRequest("GET", url, nil)
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, url)
	}
}

func TestUnknownScopeReturnsErrorShape(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest("GET", "/api/mi/sector_teams/42/", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "sector team not found", body["error"])
}

func TestSystemStatusRoute(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest("GET", "/api/system/status", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var status SystemStatusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	assert.Equal(t, "running", status.Status)
	assert.Greater(t, status.Goroutines, 0)
}
