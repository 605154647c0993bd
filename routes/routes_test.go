package routes

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/skullking/handlers"
	"github.com/Dosada05/skullking/ledger"
	"github.com/Dosada05/skullking/metrics"
	"github.com/Dosada05/skullking/repositories"
	"github.com/Dosada05/skullking/services"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	stats := services.NewStatsService(repositories.NewMemoryUserStatsRepository(), quartz.NewMock(t), m, logger)
	games := services.NewGameService(
		repositories.NewMemoryGameRepository(), stats, nil, ledger.Ledger{}, quartz.NewMock(t), m, logger,
	)

	router := chi.NewRouter()
	SetupRoutes(router, handlers.NewGameHandler(games), handlers.NewUserHandler(stats), Options{
		AllowedOrigins: []string{"https://scores.example"},
		Logger:         logger,
		Gatherer:       reg,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestRoutes_GameLifecycleAndMetrics(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Post(srv.URL+"/api/games", "application/json", strings.NewReader(`{"players":["A","B"]}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var game struct {
		ID string `json:"game_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&game))
	require.NotEmpty(t, game.ID)

	get, err := http.Get(srv.URL + "/api/games/" + game.ID)
	require.NoError(t, err)
	get.Body.Close()
	assert.Equal(t, http.StatusOK, get.StatusCode)

	m, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer m.Body.Close()
	body, err := io.ReadAll(m.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "skullking_games_created_total 1")
}

func TestRoutes_OpenAPI(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/swagger/openapi.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
}

func TestRoutes_CORS(t *testing.T) {
	srv := newServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/games/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://scores.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://scores.example", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://elsewhere.example")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRoutes_Health(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
