package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mtoivan/sanagrid/internal/config"
	"github.com/mtoivan/sanagrid/internal/httpserver"
	"github.com/mtoivan/sanagrid/internal/store"
	"github.com/mtoivan/sanagrid/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	lists, err := words.Load(cfg.WordsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	sq, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer sq.Close()

	srv := httpserver.New(cfg, sq, sq, lists)
	log.Info().Str("addr", cfg.HTTPAddr).Msg("starting sanagrid server")
	if err := srv.Start(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
