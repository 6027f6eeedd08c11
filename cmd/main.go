// Package accountapi provides the REST API to manage customer accounts.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/go-petr/account-api/cmd/httpserver"
	"github.com/go-petr/account-api/internal/middleware"
	"github.com/go-petr/account-api/migrations"
	"github.com/go-petr/account-api/pkg/configpkg"
	"github.com/go-petr/account-api/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	if err := migrations.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("cannot migrate database")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("ACCOUNT API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
