// Command othello serves an interactive game over HTTP and websockets.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TheKrainBow/othello/internal/config"
	"github.com/TheKrainBow/othello/internal/game"
	"github.com/TheKrainBow/othello/internal/logx"
	"github.com/TheKrainBow/othello/internal/server"
)

func main() {
	configPath := flag.String("config", os.Getenv("OTHELLO_CONFIG"), "path to a JSON config file")
	flag.Parse()

	log := logx.NewLogger()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := logx.SetLevel(cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("failed to set log level")
	}

	controller, err := game.NewController(server.InitialSettings(cfg), log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create game")
	}
	srv := server.New(config.NewStore(cfg), controller, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Router(),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Info().Str("addr", cfg.Addr).Msg("othello listening")
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Error().Err(err).Msg("server error")
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutMs)*time.Millisecond)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn().Err(err).Msg("graceful shutdown failed")
		if closeErr := httpServer.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Error().Err(closeErr).Msg("forced close failed")
		}
	}
	cancel()
	if runErr != nil {
		os.Exit(1)
	}
}
