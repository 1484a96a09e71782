// Package cmd provides a transport-agnostic command core: a command is something
// with a name, description, and Run(ctx, invocation) that yields a reply. How it
// is registered and dispatched (Discord, CLI, HTTP) is defined by adapters.
package cmd

import "context"

// Invocation carries what any command runner can pass: the caller's options and
// a little identifying metadata. Adapters may put their own context in Data.
type Invocation struct {
	ID      string
	Caller  string
	Scope   string
	Options []Option
	Data    any
}

// Reply is what a successful command wants sent back to the caller.
type Reply struct {
	Content string
	Public  bool
}

// Command is the universal contract: identity plus execution. A nil error
// means the reply must be delivered; a non-nil error means it must not.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) (*Reply, error)
}
