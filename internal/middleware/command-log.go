package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"timestamp-bot/pkg/cmd"
)

// WithCommandLogger logs every command execution with its caller, outcome and
// duration. Failures are left for the dispatcher to report.
func WithCommandLogger(log zerolog.Logger) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) (*cmd.Reply, error) {
			start := time.Now()
			reply, err := c.Run(ctx, inv)

			ev := log.Debug()
			if err != nil {
				ev = log.Info().Err(err)
			}
			ev.Str("command", c.Name()).
				Str("interaction", inv.ID).
				Str("caller", inv.Caller).
				Str("scope", inv.Scope).
				Int("options", len(inv.Options)).
				Bool("ok", err == nil).
				Dur("took", time.Since(start)).
				Msg("command executed")
			return reply, err
		})
	}
}
