// Command build-readme regenerates README.md from README.md.tmpl and the
// registered commands. Run it from the repository root.
package main

import (
	"fmt"
	"os"

	"timestamp-bot/internal/command"
	"timestamp-bot/internal/docs"
)

func main() {
	if err := docs.UpdateReadme(command.NewSet(command.Options{}), "README.md.tmpl", "README.md"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
