// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"pwd-audit/internal/api"
)

// Standalone server binary configured purely from the environment, for
// container deployments where the CLI flags are not wanted.
func main() {
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading configuration")
	}

	if !cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err = api.RunServer(cfg); err != nil {
		log.Fatal().Err(err).Msg("error starting server")
	}
}
