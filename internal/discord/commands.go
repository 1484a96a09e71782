package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"timestamp-bot/pkg/retrylimit"
)

// registerCommands makes the remote command list match the local set. With
// GUILD_ID set the commands go to that guild only, which propagates instantly;
// otherwise they are registered globally.
func (b *Bot) registerCommands(ctx context.Context, appID string) error {
	guildID := b.cfg.GuildID
	log := b.log.With().Str("guild", scopeName(guildID)).Logger()

	local := b.commands.Definitions()
	retryCfg := retrylimit.DefaultRetryConfig()
	retryCfg.MaxAttempts = 5
	retryCfg.Logger = log

	var remote []*discordgo.ApplicationCommand
	err := retrylimit.WithRetryConfig(ctx, func() error {
		var err error
		remote, err = b.dg.ApplicationCommands(appID, guildID, discordgo.WithContext(ctx))
		return restError(err)
	}, b.limiter, retryCfg)
	if err != nil {
		log.Warn().Err(err).Msg("cannot list registered commands, overwriting")
	} else if hashDefinitions(remote) == hashDefinitions(local) {
		log.Info().Int("commands", len(local)).Msg("commands already up to date")
		return nil
	}

	err = retrylimit.WithRetryConfig(ctx, func() error {
		_, err := b.dg.ApplicationCommandBulkOverwrite(appID, guildID, local, discordgo.WithContext(ctx))
		return restError(err)
	}, b.limiter, retryCfg)
	if err != nil {
		return fmt.Errorf("overwrite commands: %w", err)
	}

	log.Info().Int("commands", len(local)).Msg("commands registered")
	return nil
}

func scopeName(guildID string) string {
	if guildID == "" {
		return "global"
	}
	return guildID
}

// statusError exposes the HTTP status of a discordgo REST error to retrylimit.
type statusError struct {
	*discordgo.RESTError
}

func (e statusError) Unwrap() error { return e.RESTError }

func (e statusError) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

func restError(err error) error {
	var rest *discordgo.RESTError
	if errors.As(err, &rest) {
		return statusError{rest}
	}
	return err
}
