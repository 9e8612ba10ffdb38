package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/lans/llm-answer-watcher/internal/auth/session"
	"github.com/lans/llm-answer-watcher/internal/auth/token"
	"github.com/lans/llm-answer-watcher/internal/config"
	"github.com/lans/llm-answer-watcher/internal/db"
	"github.com/lans/llm-answer-watcher/internal/server/handlers"
	"github.com/lans/llm-answer-watcher/internal/server/middleware"
	"github.com/lans/llm-answer-watcher/internal/util"
	"github.com/lans/llm-answer-watcher/internal/version"
	"github.com/lans/llm-answer-watcher/internal/watcher/runner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	database, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	tokenService, err := token.NewService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	users := db.NewUserStore(database)
	gateway := session.NewGateway(users, tokenService, cfg.TokenTTL)
	jobs := runner.NewRecordingRunner(database)

	log.Printf("🔐 Token signing secret loaded: %s", util.MaskSecret(cfg.JWTSecret))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Public routes
	r.Get("/", handlers.RootHandler())
	r.Post("/token", handlers.TokenHandler(gateway))
	r.Post("/register", handlers.RegisterHandler(gateway))
	r.Post("/run_watcher", handlers.RunWatcherHandler(jobs))
	r.Get("/results/{runID}", handlers.ResultsHandler(jobs))

	// Routes requiring a bearer token
	r.Route("/users/me", func(r chi.Router) {
		r.Use(middleware.RequireUser(gateway))
		r.Get("/", handlers.MeHandler())
		r.Post("/api_keys", handlers.UpdateAPIKeysHandler(gateway))
	})

	log.Printf("🚀 LLM Answer Watcher API %s starting on http://%s", version.Version, cfg.Addr())

	if err := http.ListenAndServe(cfg.Addr(), r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
