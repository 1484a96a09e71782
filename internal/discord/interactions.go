package discord

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"timestamp-bot/internal/dispatch"
	"timestamp-bot/pkg/cmd"
)

// Discord drops interactions that are not answered within three seconds;
// follow-ups are allowed for fifteen minutes.
const interactionTimeout = 15 * time.Minute

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		b.log.Debug().Stringer("type", i.Type).Msg("ignoring interaction")
		return
	}

	ctx, cancel := context.WithTimeout(b.ctx, interactionTimeout)
	defer cancel()

	b.dispatcher.Dispatch(ctx, toInteraction(i.Interaction), newResponder(s, i.Interaction))
}

// toInteraction lifts the fields the dispatcher needs out of the gateway event.
func toInteraction(i *discordgo.Interaction) *dispatch.Interaction {
	data := i.ApplicationCommandData()
	in := &dispatch.Interaction{
		ID:        i.ID,
		Name:      data.Name,
		Options:   convertOptions(data.Options),
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
	}
	if u := interactionUser(i); u != nil {
		in.UserID = u.ID
		in.Username = u.Username
	}
	return in
}

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// convertOptions keeps the decoded option values as they are: strings,
// booleans and float64 numbers.
func convertOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) []cmd.Option {
	out := make([]cmd.Option, 0, len(opts))
	for _, o := range opts {
		if o == nil {
			continue
		}
		out = append(out, cmd.Option{Name: o.Name, Value: o.Value})
	}
	return out
}

type interactionAPI interface {
	InteractionRespond(*discordgo.Interaction, *discordgo.InteractionResponse, ...discordgo.RequestOption) error
	FollowupMessageCreate(*discordgo.Interaction, bool, *discordgo.WebhookParams, ...discordgo.RequestOption) (*discordgo.Message, error)
}

// responder answers one interaction. The first successful send uses the
// interaction callback; anything after it becomes a follow-up message.
type responder struct {
	api         interactionAPI
	interaction *discordgo.Interaction

	mu           sync.Mutex
	acknowledged bool
}

func newResponder(api interactionAPI, i *discordgo.Interaction) *responder {
	return &responder{api: api, interaction: i}
}

func (r *responder) Respond(ctx context.Context, content string, public bool) error {
	var flags discordgo.MessageFlags
	if !public {
		flags = discordgo.MessageFlagsEphemeral
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.acknowledged {
		_, err := r.api.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{
			Content: content,
			Flags:   flags,
		}, discordgo.WithContext(ctx))
		return err
	}

	err := r.api.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   flags,
		},
	}, discordgo.WithContext(ctx))
	if err == nil {
		r.acknowledged = true
	}
	return err
}
