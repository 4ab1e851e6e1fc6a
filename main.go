package main

import (
	"fmt"
	stdlog "log"

	"github.com/ryeonng/class-jpa-blog-v2/internal/config"
	"github.com/ryeonng/class-jpa-blog-v2/internal/database"
	"github.com/ryeonng/class-jpa-blog-v2/internal/logger"
	"github.com/ryeonng/class-jpa-blog-v2/internal/router"

	"github.com/rs/zerolog/log"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	logger.Init(cfg.Log.Level)

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("init database")
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	// setup router
	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("server listening")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("run server")
	}
}
