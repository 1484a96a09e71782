package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"timestamp-bot/internal/apperr"
	"timestamp-bot/pkg/cmd"
)

// ErrPanic marks a command that panicked instead of returning an error.
var ErrPanic = apperr.New(apperr.KindInternal, "command panicked")

// PanicError carries the recovered value and the stack it was raised on.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

func (e *PanicError) Unwrap() error { return ErrPanic }

// WithRecovery turns a panic inside a command into an ordinary error so a
// single interaction can never take the process down.
func WithRecovery() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) (reply *cmd.Reply, err error) {
			defer func() {
				if r := recover(); r != nil {
					reply = nil
					err = &PanicError{Value: r, Stack: debug.Stack()}
				}
			}()
			return c.Run(ctx, inv)
		})
	}
}
