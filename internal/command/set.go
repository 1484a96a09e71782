package command

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"timestamp-bot/internal/timestamp"
	"timestamp-bot/pkg/cmd"
)

// Options configures the command set. It is read once, at construction.
type Options struct {
	DefaultOffset timestamp.Offset
	// Now supplies the wall clock read by the timestamp command; time.Now when nil.
	Now func() time.Time
}

// Set holds one instance of every command, already wrapped in middleware.
// It is immutable after NewSet and safe for concurrent use.
type Set struct {
	tellTimes cmd.Command
	timestamp cmd.Command
}

func NewSet(opts Options, mws ...cmd.Middleware) *Set {
	return &Set{
		tellTimes: cmd.Apply(&TellTimesCommand{}, mws...),
		timestamp: cmd.Apply(&TimestampCommand{DefaultOffset: opts.DefaultOffset, Now: opts.Now}, mws...),
	}
}

// Get returns the command for id, or nil for an ID outside the enumeration.
func (s *Set) Get(id ID) cmd.Command {
	switch id {
	case TellTimes:
		return s.tellTimes
	case Timestamp:
		return s.timestamp
	}
	return nil
}

// Definitions returns the registration payloads of every command.
func (s *Set) Definitions() []*discordgo.ApplicationCommand {
	defs := make([]*discordgo.ApplicationCommand, 0, len(IDs()))
	for _, id := range IDs() {
		if def := Definition(s.Get(id)); def != nil {
			defs = append(defs, def)
		}
	}
	return defs
}

// Definition looks through middleware for the command's registration payload.
func Definition(c cmd.Command) *discordgo.ApplicationCommand {
	switch p := cmd.Root(c).(type) {
	case SlashProvider:
		if def := p.SlashDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.ChatApplicationCommand
			}
			return def
		}
	case ContextMenuProvider:
		if def := p.ContextDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.MessageApplicationCommand
			}
			return def
		}
	}
	return nil
}
