package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/taiwoajasa245/daily-verse-api/internal/verse"
	"github.com/taiwoajasa245/daily-verse-api/pkg/response"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Get home route
	r.Get("/", s.ServerIsWorking)

	// Liveness only; no selection logic behind this route
	r.Get("/health", s.HealthHandler)

	s.loadVerseRoutes(r)

	return r
}

func (s *Server) ServerIsWorking(w http.ResponseWriter, r *http.Request) {
	resp := make(map[string]string)
	resp["message"] = "Welcome to Daily verse api"
	response.Success(w, resp, "Success")
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.db.Health(), "ok")
}

func (s *Server) loadVerseRoutes(router chi.Router) {
	verseHandler := verse.NewVerseHandler(s.selector)

	router.Group(
		func(r chi.Router) {
			r.Get("/verse/today", verseHandler.GetDailyVerseHandler)
			r.Get("/verse/random", verseHandler.GetRandomVerseHandler)
		},
	)
}
