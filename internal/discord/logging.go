package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// RouteLibraryLogs sends discordgo's own log output through log.
func RouteLibraryLogs(log zerolog.Logger) {
	discordgo.Logger = libraryLogger(log.With().Str("source", "discordgo").Logger())
}

func libraryLogger(log zerolog.Logger) func(msgL, caller int, format string, a ...any) {
	return func(msgL, _ int, format string, a ...any) {
		var ev *zerolog.Event
		switch msgL {
		case discordgo.LogError:
			ev = log.Error()
		case discordgo.LogWarning:
			ev = log.Warn()
		case discordgo.LogInformational:
			ev = log.Info()
		default:
			ev = log.Debug()
		}
		ev.Msgf(format, a...)
	}
}
