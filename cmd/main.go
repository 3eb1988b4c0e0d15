// Package main starts the ledger API server.
package main

import (
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/instapay/ledger/cmd/httpserver"
	"github.com/instapay/ledger/internal/middleware"
	"github.com/instapay/ledger/pkg/configpkg"
	"github.com/instapay/ledger/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	var db *sql.DB
	if config.DBSource != "" {
		db, err = dbpkg.Setup(config.DBDriver, config.DBSource)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot connect to database")
		}
	} else {
		logger.Warn().Msg("no database configured, using in-memory stores")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("LEDGER API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
