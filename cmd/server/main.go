package main

import (
	"context"
	"os"

	"github.com/agenthands/lineage/internal/config"
	"github.com/agenthands/lineage/internal/logging"
	"github.com/agenthands/lineage/internal/server"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfgPath).Msg("failed to load configuration")
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Setup(logging.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	srv, err := server.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	defer srv.Close(context.Background())

	r := srv.SetupRouter()
	log.Info().Str("port", cfg.Server.Port).Msg("starting server")
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
