package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pollhub/pollhub_api/config"
	"github.com/pollhub/pollhub_api/internal/deps"
	api "github.com/pollhub/pollhub_api/internal/http/rest"
)

const (
	allowConnectionsAfterShutdown = 1 * time.Second
)

func main() {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalln("invalid configuration:", err)
	}

	deps := deps.New(cfg)

	a := &api.API{
		Config: cfg,
		Deps:   deps,
		DB:     deps.Pool(),
	}
	go deps.WebSocket.Run()
	go func() {
		log.Printf("Server running on port %v ...", cfg.Port)
		log.Fatal(a.Serve())
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stopChan

	log.Println("Request to shutdown server. Waiting", allowConnectionsAfterShutdown)
	waitTimer := time.NewTimer(allowConnectionsAfterShutdown)
	<-waitTimer.C

	log.Println("Shutting down server...")
	if err := a.Shutdown(); err != nil {
		log.Println("error shutting down server:", err)
	}

	deps.DB.Close()
	log.Println("Database connections closed.")
}
