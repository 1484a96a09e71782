package command

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"timestamp-bot/pkg/cmd"
)

// TellTimesCommand is the message context-menu entry. It only acknowledges
// for now.
type TellTimesCommand struct{}

func (c *TellTimesCommand) Name() string        { return TellTimesName }
func (c *TellTimesCommand) Description() string { return "Tell the times mentioned in a message" }

func (c *TellTimesCommand) ContextDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name: c.Name(),
		Type: discordgo.MessageApplicationCommand,
	}
}

func (c *TellTimesCommand) Run(_ context.Context, _ *cmd.Invocation) (*cmd.Reply, error) {
	return &cmd.Reply{Content: "hi", Public: true}, nil
}
