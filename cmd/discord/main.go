// cmd/discord/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"

	"timestamp-bot/internal/command"
	"timestamp-bot/internal/config"
	"timestamp-bot/internal/discord"
	"timestamp-bot/internal/dispatch"
	"timestamp-bot/internal/logging"
	"timestamp-bot/internal/middleware"
	"timestamp-bot/internal/server"
	v "timestamp-bot/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, closer, err := logging.New(logging.Options{
		Level:          cfg.Level(),
		Debug:          cfg.Debug,
		File:           cfg.LogFile,
		FileMaxSizeMB:  cfg.LogFileMaxSizeMB,
		FileMaxBackups: cfg.LogFileMaxBackups,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("bot stopped")
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	log.Info().Str("version", v.String()).Msgf("starting %s", v.AppName)
	if cfg.EnvFileErr != nil {
		log.Warn().Str("file", cfg.EnvFile).Msg("no env file found, using the process environment")
	}

	offset, err := cfg.DefaultOffset()
	if err != nil {
		return err
	}
	log.Info().Stringer("default_offset", offset).Msg("default timezone resolved")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	commands := command.NewSet(
		command.Options{DefaultOffset: offset},
		middleware.WithRecovery(),
		middleware.WithCommandLogger(log),
	)
	dispatcher := dispatch.New(commands, dispatch.Settings{
		Contact: cfg.DevMention,
		Pronoun: cfg.DevPronoun,
	}, log)

	var wg sync.WaitGroup
	defer wg.Wait()
	errCh := make(chan error, 2)

	bot := discord.New(cfg, commands, dispatcher, log)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := bot.Run(ctx); err != nil {
			errCh <- fmt.Errorf("discord: %w", err)
		}
	}()

	if cfg.HTTPAddr != "" {
		srv := server.New(offset, nil, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(ctx, cfg.HTTPAddr); err != nil {
				errCh <- err
			}
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Stringer("signal", s).Msg("shutting down")
		cancel()
	case err := <-errCh:
		cancel()
		return err
	}

	log.Info().Msg("bot exited cleanly")
	return nil
}
