package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mfenwick/rota/internal/database"
	"github.com/mfenwick/rota/internal/logging"
	"github.com/mfenwick/rota/internal/server"
)

func main() {
	// Optional .env beside the binary; real environment wins.
	godotenv.Load()

	port := os.Getenv("ROTA_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("ROTA_DB_PATH")
	if dbPath == "" {
		dbPath = "rota.db"
	}

	logger := logging.Setup(os.Getenv("ROTA_LOG_LEVEL"), os.Getenv("ROTA_LOG_FORMAT"))

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("failed to open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := server.New(db, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Rota running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
