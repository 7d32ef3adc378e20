package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/GlebRadaev/starmatch/internal/app"
)

// @title StarMatch API
// @version 1.0
// @description Matchmaking backend for a Telegram mini-app: profiles, random and filtered matches, Stars payments and referral bonuses.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.New()
	if err := application.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped")
	}
	log.Info().Msg("application exited")
}
