package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/api"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/db"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device/schema"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/esp32"

	_ "github.com/useful-esp8266-lib/Esp32TCPLightController/docs"
)

// @title           Esplight API
// @version         1.0
// @description     REST API for controlling ESP32-attached lights over the device's TCP text protocol

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

func main() {
	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/esplight/esplight.db)")
	autoConnect := flag.Bool("connect", false, "Connect to the default device on startup")
	flag.Parse()

	ctx := context.Background()

	// Open database
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	// Run migrations
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Bootstrap if needed (first run)
	needsBootstrap, err := database.NeedsBootstrap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check bootstrap status")
	}
	if needsBootstrap {
		log.Info().Msg("First run detected, bootstrapping database...")
		if err := database.Bootstrap(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap database")
		}
		log.Info().Msg("Database bootstrapped successfully")
	}

	// Load configuration
	cfg, err := database.ActiveConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().
		Str("profile", cfg.Profile.Name).
		Str("api_address", cfg.APIAddress()).
		Dur("refresh_interval", cfg.RefreshInterval()).
		Int("lights", len(cfg.Lights)).
		Msg("Configuration loaded")

	session := esp32.NewSession(cfg.Lights)

	if *autoConnect && cfg.Device != nil {
		var welcome string
		if cfg.Device.Transport == db.TransportSerial {
			welcome, err = session.ConnectSerial(ctx, cfg.Device.SerialPort, cfg.Device.BaudRate)
		} else {
			welcome, err = session.Connect(ctx, cfg.Device.Host, cfg.Device.Port)
		}
		if err != nil {
			log.Warn().Err(err).Msg("Initial connect failed, continuing disconnected")
		} else {
			log.Info().Str("endpoint", session.Endpoint()).Str("welcome", welcome).Msg("Connected to device")
		}
	}

	validator := schema.NewValidator()

	// Create the API router
	router := api.NewRouter(session, session, validator, database, cfg.Profile.ID)

	// Keep the state table fresh
	pollCtx, cancelPoller := context.WithCancel(ctx)
	poller := api.NewPoller(session, cfg.RefreshInterval())
	go poller.Run(pollCtx)

	// Handle shutdown gracefully
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down...")
		cancelPoller()
		session.Disconnect()
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
		os.Exit(0)
	}()

	// Start server
	addr := cfg.APIAddress()
	log.Info().Str("address", addr).Msg("Starting API server")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
