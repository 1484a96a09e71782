// Package dispatch routes interactions to commands and guarantees every
// interaction ends with a reply or a diagnostic.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"timestamp-bot/internal/apperr"
	"timestamp-bot/internal/command"
	"timestamp-bot/internal/middleware"
	"timestamp-bot/pkg/cmd"
)

var (
	ErrUnknownCommand = apperr.New(apperr.KindDispatch, "unknown command")
	ErrNoReply        = apperr.New(apperr.KindInternal, "command returned neither reply nor error")
)

// State names the steps of the per-interaction cycle. Dispatch only ever
// returns one of the two terminal states.
type State int

const (
	Idle State = iota
	Dispatched
	ResponseSent
	ResponseUnrecoverable
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dispatched:
		return "dispatched"
	case ResponseSent:
		return "response-sent"
	case ResponseUnrecoverable:
		return "response-unrecoverable"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Interaction is a single command invocation, already lifted out of the
// platform's event type.
type Interaction struct {
	ID        string
	Name      string
	Options   []cmd.Option
	GuildID   string
	ChannelID string
	UserID    string
	Username  string
}

// Responder delivers content for one interaction. Implementations are created
// per interaction and may keep per-interaction state.
type Responder interface {
	Respond(ctx context.Context, content string, public bool) error
}

type ResponderFunc func(ctx context.Context, content string, public bool) error

func (f ResponderFunc) Respond(ctx context.Context, content string, public bool) error {
	return f(ctx, content, public)
}

// Settings is the process-wide, read-only configuration of a Dispatcher.
type Settings struct {
	// Contact names the maintainer in diagnostics, e.g. a mention.
	Contact string
	// Pronoun is the maintainer's object pronoun ("her", "him", "them").
	Pronoun string
}

func (s Settings) withDefaults() Settings {
	if s.Contact == "" {
		s.Contact = "the bot maintainer"
	}
	if s.Pronoun == "" {
		s.Pronoun = "them"
	}
	return s
}

// Dispatcher is immutable after New and serves any number of interactions
// concurrently.
type Dispatcher struct {
	commands   *command.Set
	settings   Settings
	diagnostic string
	log        zerolog.Logger
}

func New(commands *command.Set, settings Settings, log zerolog.Logger) *Dispatcher {
	settings = settings.withDefaults()
	return &Dispatcher{
		commands: commands,
		settings: settings,
		diagnostic: fmt.Sprintf(
			"An error happened on the server side. Please contact %s and tell %s what command you ran at what time.",
			settings.Contact, settings.Pronoun,
		),
		log: log,
	}
}

// Diagnostic is the generic failure text sent to users.
func (d *Dispatcher) Diagnostic() string { return d.diagnostic }

// Dispatch runs one interaction to a terminal state: ResponseSent when the
// reply or the diagnostic reached the user, ResponseUnrecoverable otherwise.
func (d *Dispatcher) Dispatch(ctx context.Context, in *Interaction, r Responder) State {
	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	log := d.log.With().Str("interaction", id).Str("command", in.Name).Logger()

	reply, err := d.run(ctx, id, in)
	if err == nil {
		if err = r.Respond(ctx, reply.Content, reply.Public); err == nil {
			log.Debug().Bool("public", reply.Public).Msg("response sent")
			return ResponseSent
		}
		err = apperr.Wrap(apperr.KindTransport, "send response", err)
	}

	d.report(log, err)

	if sendErr := r.Respond(ctx, d.diagnostic, false); sendErr != nil {
		log.Error().Err(sendErr).AnErr("cause", err).Msg("cannot send error message to user")
		return ResponseUnrecoverable
	}
	return ResponseSent
}

func (d *Dispatcher) run(ctx context.Context, id string, in *Interaction) (*cmd.Reply, error) {
	cid, ok := command.Parse(in.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, in.Name)
	}
	c := d.commands.Get(cid)
	if c == nil {
		return nil, fmt.Errorf("%w: %q has no handler", ErrUnknownCommand, in.Name)
	}

	scope := in.GuildID
	if scope == "" {
		scope = "dm"
	}
	reply, err := c.Run(ctx, &cmd.Invocation{
		ID:      id,
		Caller:  in.Username,
		Scope:   scope,
		Options: in.Options,
		Data:    in,
	})
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return nil, ErrNoReply
	}
	return reply, nil
}

func (d *Dispatcher) report(log zerolog.Logger, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindResolution:
		log.Warn().Err(err).Msg("cannot respond to command")
	case apperr.KindDispatch:
		log.Error().Err(err).Msg("unexpected interaction name from discord")
	case apperr.KindTransport:
		log.Error().Err(err).Msg("cannot deliver response")
	default:
		ev := log.Error().Err(err)
		var pe *middleware.PanicError
		if errors.As(err, &pe) {
			ev = ev.Bytes("stack", pe.Stack)
		}
		ev.Msg("command failed")
	}
}
