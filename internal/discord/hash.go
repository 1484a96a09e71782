package discord

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// hashDefinitions returns a deterministic hash of the stable parts of a
// command list. IDs, versions and other server-assigned fields are ignored,
// so a remote list and the local one hash equal when nothing changed.
func hashDefinitions(defs []*discordgo.ApplicationCommand) string {
	normalized := make([]map[string]any, 0, len(defs))
	for _, d := range defs {
		if d != nil {
			normalized = append(normalized, normalizeCommand(d))
		}
	}
	slices.SortFunc(normalized, func(a, b map[string]any) int {
		return strings.Compare(a["name"].(string), b["name"].(string))
	})

	data, _ := json.Marshal(normalized)
	return fmt.Sprintf("%x", sha1.Sum(data))
}

func normalizeCommand(c *discordgo.ApplicationCommand) map[string]any {
	typ := c.Type
	if typ == 0 {
		typ = discordgo.ChatApplicationCommand
	}
	obj := map[string]any{
		"name":        c.Name,
		"description": c.Description,
		"type":        typ,
	}
	if len(c.Options) > 0 {
		obj["options"] = normalizeOptions(c.Options)
	}
	return obj
}

func normalizeOptions(opts []*discordgo.ApplicationCommandOption) []map[string]any {
	out := make([]map[string]any, len(opts))
	for i, o := range opts {
		entry := map[string]any{
			"name":        o.Name,
			"description": o.Description,
			"type":        o.Type,
			"required":    o.Required,
		}
		if len(o.Choices) > 0 {
			choices := make([]map[string]any, len(o.Choices))
			for j, c := range o.Choices {
				choices[j] = map[string]any{"name": c.Name, "value": c.Value}
			}
			entry["choices"] = choices
		}
		if len(o.Options) > 0 {
			entry["options"] = normalizeOptions(o.Options)
		}
		out[i] = entry
	}
	// Option order is significant to Discord, so it is kept.
	return out
}
