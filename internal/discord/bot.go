// Package discord connects the command dispatcher to a Discord gateway session.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"timestamp-bot/internal/command"
	"timestamp-bot/internal/config"
	"timestamp-bot/internal/dispatch"
	"timestamp-bot/pkg/retrylimit"
)

// Bot owns the gateway session and turns interaction events into dispatches.
type Bot struct {
	cfg        *config.Config
	commands   *command.Set
	dispatcher *dispatch.Dispatcher
	log        zerolog.Logger
	limiter    *retrylimit.AdaptiveLimiter

	dg  *discordgo.Session
	ctx context.Context
}

func New(cfg *config.Config, commands *command.Set, dispatcher *dispatch.Dispatcher, log zerolog.Logger) *Bot {
	return &Bot{
		cfg:        cfg,
		commands:   commands,
		dispatcher: dispatcher,
		log:        log.With().Str("component", "discord").Logger(),
		// Registration touches at most a couple of endpoints per start.
		limiter: retrylimit.NewAdaptiveLimiter(2, 0.5, 5, 0.5, 0.5),
	}
}

// Run opens the session and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg
	b.ctx = ctx

	RouteLibraryLogs(b.log)
	dg.LogLevel = discordgo.LogWarning
	if b.cfg.Debug {
		dg.LogLevel = discordgo.LogInformational
	}
	// Interactions arrive regardless of intents; guild events are enough for state.
	dg.Identify.Intents = discordgo.IntentsGuilds

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	b.log.Info().Msg("shutdown signal received, closing session")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info().
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Msg("connected to gateway")

	go func() {
		if err := b.registerCommands(b.ctx, r.User.ID); err != nil {
			b.log.Error().Err(err).Msg("cannot register commands")
		}
	}()
}
