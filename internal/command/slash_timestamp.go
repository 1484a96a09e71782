package command

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"timestamp-bot/internal/timestamp"
	"timestamp-bot/pkg/cmd"
)

// TimestampCommand converts a time description into a badge.
type TimestampCommand struct {
	DefaultOffset timestamp.Offset
	Now           func() time.Time
}

func (c *TimestampCommand) Name() string { return TimestampName }
func (c *TimestampCommand) Description() string {
	return "Converts the given description of a time/date into a discord timestamp badge"
}

func (c *TimestampCommand) SlashDefinition() *discordgo.ApplicationCommand {
	dm := true
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(timestamp.Formats()))
	for _, f := range timestamp.Formats() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  f.Label(),
			Value: f.Marker(),
		})
	}

	return &discordgo.ApplicationCommand{
		Name:         c.Name(),
		Description:  c.Description(),
		Type:         discordgo.ChatApplicationCommand,
		DMPermission: &dm,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        timestamp.OptionDescriptor,
				Description: `The datetime descriptor (e.g. "Apr 16", "6pm", "23:45", "twenty minutes ago")`,
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        timestamp.OptionTimezone,
				Description: `The timezone to read the time in (e.g. "utc+3", "-4", "default+11", "pt", "est")`,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        timestamp.OptionFormat,
				Description: "The format of string that should be returned",
				Choices:     choices,
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        timestamp.OptionList,
				Description: "Along with the ready-made timestamp, list the other format options (default: true)",
			},
		},
	}
}

func (c *TimestampCommand) Run(_ context.Context, inv *cmd.Invocation) (*cmd.Reply, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return timestamp.Compile(inv.Options, now(), c.DefaultOffset)
}
