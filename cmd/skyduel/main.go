package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/skyduel/skyduel"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	game, err := skyduel.NewGame()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	if err := game.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}
