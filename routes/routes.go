package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Dosada05/skullking/docs"
	"github.com/Dosada05/skullking/handlers"
	"github.com/Dosada05/skullking/middleware"
)

type Options struct {
	AllowedOrigins []string
	// Logger receives one line per request; slog.Default() when nil.
	Logger *slog.Logger
	// Gatherer backs /metrics; the endpoint is not mounted when nil.
	Gatherer prometheus.Gatherer
}

func SetupRoutes(
	router *chi.Mux,
	gameHandler *handlers.GameHandler,
	userHandler *handlers.UserHandler,
	opts Options,
) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/", handlers.Welcome)
	router.Get("/health", handlers.Health)

	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Get("/swagger/openapi.json", serveOpenAPI)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/openapi.json")))

	router.Route("/api", func(r chi.Router) {
		r.Route("/games", func(r chi.Router) {
			r.Post("/", gameHandler.CreateGame)
			r.Get("/", gameHandler.ListGames)

			r.Route("/{gameID}", func(r chi.Router) {
				r.Get("/", gameHandler.GetGame)
				r.Get("/scoreboard", gameHandler.GetScoreboard)

				r.Route("/rounds/{roundNum}", func(r chi.Router) {
					r.Post("/start", gameHandler.StartRound)
					r.Post("/bids", gameHandler.SubmitBids)
					r.Post("/results", gameHandler.SubmitResults)
				})
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/leaderboard", userHandler.Leaderboard)
			r.Get("/{username}/stats", userHandler.GetUserStats)
		})
	})
}

func serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(docs.OpenAPI)
}
