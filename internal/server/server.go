package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/taiwoajasa245/daily-verse-api/internal/database"
	"github.com/taiwoajasa245/daily-verse-api/internal/verse"
	"github.com/taiwoajasa245/daily-verse-api/pkg/config"
)

type Server struct {
	port     string
	db       database.Service
	handler  http.Handler
	cfg      *config.Config
	selector *verse.Selector
	cancel   context.CancelFunc
}

// NewServer constructs the app server with all dependencies injected.
func NewServer(db database.Service, cfg *config.Config) *Server {
	stats := db.Health()

	fmt.Println("Database Health:", stats)

	if stats["status"] != "up" {
		log.Fatal("Database connection failed")
		return &Server{}
	} else {
		log.Println("Database connection successful")
	}

	verseRepo := verse.NewRepository(db)
	selector := verse.NewSelector(verseRepo, cfg.SelectorSeed)

	s := &Server{
		port:     cfg.Port,
		db:       db,
		cfg:      cfg,
		selector: selector,
	}

	s.handler = s.RegisterRoutes()
	return s
}

// HTTPServer returns the actual *http.Server instance
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", s.port),
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// StartBackgroundJobs runs scheduled jobs
func (s *Server) StartBackgroundJobs() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	// Keep today's selection warm across the midnight rollover
	go s.selector.StartScheduler(ctx)
	log.Println("DailyVerse scheduler started")
}

func (s *Server) StopBackgroundJobs() {
	if s.cancel != nil {
		s.cancel()
		log.Println("Background jobs stopped gracefully")
	}
}
