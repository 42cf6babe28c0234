package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/habitflow/internal/ai"
	"github.com/example/habitflow/internal/database"
	"github.com/example/habitflow/internal/notify"
	"github.com/example/habitflow/internal/progress"
	"github.com/example/habitflow/internal/scheduler"
	"github.com/example/habitflow/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	chatGPT, err := ai.New()
	if err != nil {
		log.Fatalf("Failed to create AI client: %v", err)
	}

	service := progress.New(chatGPT)

	var notifier scheduler.Notifier
	if os.Getenv("TELEGRAM_BOT_TOKEN") != "" {
		telegram, err := notify.NewTelegram()
		if err != nil {
			log.Fatalf("Failed to create Telegram notifier: %v", err)
		}
		notifier = telegram
	} else {
		log.Println("TELEGRAM_BOT_TOKEN not set, notifications disabled")
	}

	var jobs *scheduler.Scheduler
	if os.Getenv("ENABLE_SCHEDULER") != "false" {
		jobs = scheduler.New(service, notifier)
		jobs.Start()
		defer jobs.Stop()
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: server.New(service).Routes(),
	}

	done := make(chan struct{})
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
		close(done)
	}()

	log.Printf("HabitFlow listening on %s. Press Ctrl+C to stop.", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	<-done
	log.Println("Server stopped successfully")
}
