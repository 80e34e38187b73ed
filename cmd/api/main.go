package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/taiwoajasa245/daily-verse-api/internal/database"
	"github.com/taiwoajasa245/daily-verse-api/internal/server"
	"github.com/taiwoajasa245/daily-verse-api/pkg/config"
)

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("shutting down gracefully, press Ctrl+C again to force")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")
	done <- true
}

func main() {
	cfg := config.LoadConfig()

	db := database.New(cfg)
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Migrate(migrateCtx); err != nil {
		log.Fatalf("schema migration failed: %v", err)
	}

	srv := server.NewServer(db, cfg)
	httpServer := srv.HTTPServer()

	srv.StartBackgroundJobs()
	defer srv.StopBackgroundJobs()

	done := make(chan bool, 1)
	go gracefulShutdown(httpServer, done)

	log.Printf("Listening on %s", httpServer.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server error: %v", err)
	}

	<-done
	log.Println("Graceful shutdown complete.")
}
