// Package docs renders the user-facing command reference.
package docs

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/bwmarrin/discordgo"

	"timestamp-bot/internal/command"
	"timestamp-bot/internal/timestamp"
)

// Reference renders every command of set as Markdown, in registration order.
func Reference(set *command.Set) string {
	var buf bytes.Buffer
	for _, id := range command.IDs() {
		c := set.Get(id)
		def := command.Definition(c)
		if def == nil {
			continue
		}

		switch def.Type {
		case discordgo.MessageApplicationCommand:
			fmt.Fprintf(&buf, "### %s\n\nMessage context menu. %s.\n\n", def.Name, c.Description())
		default:
			fmt.Fprintf(&buf, "### /%s\n\n%s.\n\n", def.Name, c.Description())
		}

		for _, o := range def.Options {
			req := ""
			if o.Required {
				req = " (required)"
			}
			fmt.Fprintf(&buf, "- `%s`%s: %s\n", o.Name, req, o.Description)
		}
		if len(def.Options) > 0 {
			buf.WriteString("\n")
		}
	}
	return strings.TrimRight(buf.String(), "\n") + "\n"
}

// FormatTable lists the badge formats as a Markdown table.
func FormatTable() string {
	var buf bytes.Buffer
	buf.WriteString("| Marker | Format |\n|---|---|\n")
	for _, f := range timestamp.Formats() {
		fmt.Fprintf(&buf, "| `%s` | %s |\n", f.Marker(), f.Label())
	}
	return buf.String()
}

// UpdateReadme executes the template at tmplPath with the command reference
// and writes the result to outPath.
func UpdateReadme(set *command.Set, tmplPath, outPath string) error {
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parse readme template: %w", err)
	}

	data := struct {
		CommandSections string
		FormatTable     string
	}{
		CommandSections: Reference(set),
		FormatTable:     FormatTable(),
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return fmt.Errorf("render readme: %w", err)
	}
	return os.WriteFile(outPath, out.Bytes(), 0o644)
}
