// Command cli runs a single bot command locally, without Discord.
//
//	cli [flags] <command> [name=value ...]
//	cli timestamp descriptor=6pm timezone=utc+3 format=F list=false
//	cli "Tell me the times"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"timestamp-bot/internal/command"
	"timestamp-bot/internal/dispatch"
	"timestamp-bot/internal/logging"
	"timestamp-bot/internal/middleware"
	"timestamp-bot/internal/timestamp"
	"timestamp-bot/pkg/cmd"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	defaultTZ := fs.String("default-timezone", "utc+1", "Timezone used when none is given.")
	contact := fs.String("contact", "", "Who users are told to contact when a command fails.")
	pronoun := fs.String("pronoun", "", "Object pronoun for the contact.")
	level := fs.String("log-level", "warn", "Log level for stderr output.")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: cli [flags] <command> [name=value ...]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(argv[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	options, err := parseOptions(fs.Args()[1:])
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	log, _, err := logging.New(logging.Options{Level: *level, Debug: true, Output: stderr})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	offset, err := timestamp.Resolve(*defaultTZ, timestamp.UTC)
	if err != nil {
		fmt.Fprintln(stderr, "default timezone:", err)
		return exitUsage
	}

	commands := command.NewSet(
		command.Options{DefaultOffset: offset},
		middleware.WithRecovery(),
		middleware.WithCommandLogger(log),
	)
	d := dispatch.New(commands, dispatch.Settings{Contact: *contact, Pronoun: *pronoun}, log)

	failed := false
	out := dispatch.ResponderFunc(func(_ context.Context, content string, public bool) error {
		if content == d.Diagnostic() {
			failed = true
		}
		visibility := "private"
		if public {
			visibility = "public"
		}
		_, err := fmt.Fprintf(stdout, "[%s]\n%s\n", visibility, content)
		return err
	})

	state := d.Dispatch(context.Background(), &dispatch.Interaction{
		Name:     fs.Arg(0),
		Options:  options,
		Username: "cli",
	}, out)

	if failed || state != dispatch.ResponseSent {
		return exitError
	}
	return exitOK
}

// parseOptions reads name=value pairs. Values stay text; the commands parse
// booleans and numbers themselves.
func parseOptions(args []string) ([]cmd.Option, error) {
	opts := make([]cmd.Option, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("option %q: want name=value", arg)
		}
		opts = append(opts, cmd.Option{Name: name, Value: value})
	}
	return opts, nil
}
