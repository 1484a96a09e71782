package command

import "github.com/bwmarrin/discordgo"

// A command registers with Discord as a slash command or a context-menu entry.

type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

type ContextMenuProvider interface {
	ContextDefinition() *discordgo.ApplicationCommand
}
