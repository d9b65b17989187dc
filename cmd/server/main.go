package main

import (
	"log"

	"crewpay/internal/config"
	"crewpay/internal/logging"
	"crewpay/internal/server"
)

func main() {
	// Load configuration
	cfg := config.New()

	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Create and run server
	srv, err := server.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer srv.Close()

	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
