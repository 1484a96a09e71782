package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timestamp-bot/internal/command"
	"timestamp-bot/internal/middleware"
	"timestamp-bot/internal/timestamp"
	"timestamp-bot/pkg/cmd"
)

type sent struct {
	content string
	public  bool
}

// recorder is a per-interaction responder whose n-th send fails when listed.
type recorder struct {
	failures map[int]bool
	sends    []sent
}

func (r *recorder) Respond(_ context.Context, content string, public bool) error {
	n := len(r.sends)
	r.sends = append(r.sends, sent{content, public})
	if r.failures[n] {
		return fmt.Errorf("send %d: connection reset", n)
	}
	return nil
}

var fixedNow = func() time.Time { return time.Date(2023, time.November, 14, 23, 13, 20, 0, time.UTC) }

func newDispatcher(t *testing.T, buf *bytes.Buffer, mws ...cmd.Middleware) *Dispatcher {
	t.Helper()
	set := command.NewSet(command.Options{DefaultOffset: timestamp.Hours(1), Now: fixedNow}, mws...)
	return New(set, Settings{Contact: "@ilonachan", Pronoun: "her"}, zerolog.New(buf))
}

func TestDispatchSuccess(t *testing.T) {
	var logs bytes.Buffer
	d := newDispatcher(t, &logs)
	r := &recorder{}

	state := d.Dispatch(context.Background(), &Interaction{
		ID:   "1",
		Name: "timestamp",
		Options: []cmd.Option{
			{Name: "descriptor", Value: "6pm"},
			{Name: "list", Value: false},
		},
	}, r)

	assert.Equal(t, ResponseSent, state)
	require.Len(t, r.sends, 1)
	assert.Equal(t, sent{"`<t:1700000000:R>` => <t:1700000000:R>", false}, r.sends[0])
}

func TestDispatchContextMenu(t *testing.T) {
	var logs bytes.Buffer
	r := &recorder{}

	state := newDispatcher(t, &logs).Dispatch(context.Background(), &Interaction{Name: "Tell me the times"}, r)

	assert.Equal(t, ResponseSent, state)
	assert.Equal(t, []sent{{"hi", true}}, r.sends)
}

func TestDispatchFailures(t *testing.T) {
	tests := []struct {
		name     string
		in       Interaction
		failures map[int]bool
		state    State
		sends    int
		logged   string
	}{
		{
			name:   "missing descriptor",
			in:     Interaction{Name: "timestamp"},
			state:  ResponseSent,
			sends:  1,
			logged: "missing required option",
		},
		{
			name:   "unknown command",
			in:     Interaction{Name: "foo"},
			state:  ResponseSent,
			sends:  1,
			logged: "unexpected interaction name from discord",
		},
		{
			name:   "unresolvable timezone",
			in:     Interaction{Name: "timestamp", Options: []cmd.Option{{Name: "descriptor", Value: "6pm"}, {Name: "timezone", Value: "mars"}}},
			state:  ResponseSent,
			sends:  1,
			logged: "unrecognized timezone",
		},
		{
			name:     "primary send fails",
			in:       Interaction{Name: "Tell me the times"},
			failures: map[int]bool{0: true},
			state:    ResponseSent,
			sends:    2,
			logged:   "cannot deliver response",
		},
		{
			name:     "both sends fail",
			in:       Interaction{Name: "Tell me the times"},
			failures: map[int]bool{0: true, 1: true},
			state:    ResponseUnrecoverable,
			sends:    2,
			logged:   "cannot send error message to user",
		},
		{
			name:     "diagnostic fails after command error",
			in:       Interaction{Name: "foo"},
			failures: map[int]bool{0: true},
			state:    ResponseUnrecoverable,
			sends:    1,
			logged:   "cannot send error message to user",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			d := newDispatcher(t, &logs)
			r := &recorder{failures: tt.failures}

			var state State
			require.NotPanics(t, func() {
				state = d.Dispatch(context.Background(), &tt.in, r)
			})

			assert.Equal(t, tt.state, state)
			require.Len(t, r.sends, tt.sends)
			last := r.sends[len(r.sends)-1]
			assert.Equal(t, d.Diagnostic(), last.content)
			assert.False(t, last.public)
			assert.Contains(t, logs.String(), tt.logged)
		})
	}
}

func TestDiagnosticHidesCause(t *testing.T) {
	var logs bytes.Buffer
	d := newDispatcher(t, &logs)
	r := &recorder{}

	d.Dispatch(context.Background(), &Interaction{Name: "timestamp", Options: []cmd.Option{
		{Name: "descriptor", Value: "6pm"},
		{Name: "format", Value: "Q"},
	}}, r)

	require.Len(t, r.sends, 1)
	assert.Equal(t,
		"An error happened on the server side. Please contact @ilonachan and tell her what command you ran at what time.",
		r.sends[0].content)
	assert.NotContains(t, r.sends[0].content, "marker")
	assert.Contains(t, logs.String(), "invalid format marker")
}

func TestDefaultSettings(t *testing.T) {
	d := New(command.NewSet(command.Options{}), Settings{}, zerolog.Nop())
	assert.Contains(t, d.Diagnostic(), "contact the bot maintainer and tell them")
}

func TestDispatchRecoversPanics(t *testing.T) {
	explode := func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(context.Context, *cmd.Invocation) (*cmd.Reply, error) {
			panic("kaboom")
		})
	}
	var logs bytes.Buffer
	d := newDispatcher(t, &logs, explode, middleware.WithRecovery())
	r := &recorder{}

	var state State
	require.NotPanics(t, func() {
		state = d.Dispatch(context.Background(), &Interaction{Name: "timestamp"}, r)
	})
	assert.Equal(t, ResponseSent, state)
	assert.Equal(t, []sent{{d.Diagnostic(), false}}, r.sends)
	assert.Contains(t, logs.String(), "panic: kaboom")
	assert.Contains(t, logs.String(), `"stack"`)
}

func TestDispatchNilReply(t *testing.T) {
	silent := func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(context.Context, *cmd.Invocation) (*cmd.Reply, error) { return nil, nil })
	}
	var logs bytes.Buffer
	r := &recorder{}

	state := newDispatcher(t, &logs, silent).Dispatch(context.Background(), &Interaction{Name: "timestamp"}, r)

	assert.Equal(t, ResponseSent, state)
	assert.Equal(t, []sent{{newDispatcher(t, &bytes.Buffer{}).Diagnostic(), false}}, r.sends)
	assert.Contains(t, logs.String(), "neither reply nor error")
}

func TestDispatchConcurrent(t *testing.T) {
	set := command.NewSet(command.Options{DefaultOffset: timestamp.Hours(1), Now: fixedNow})
	d := New(set, Settings{}, zerolog.Nop())
	markers := []string{"R", "t", "T", "d", "D", "f", "F"}

	var wg sync.WaitGroup
	results := make([]*recorder, 70)
	for i := range results {
		results[i] = &recorder{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d.Dispatch(context.Background(), &Interaction{
				Name: "timestamp",
				Options: []cmd.Option{
					{Name: "descriptor", Value: "now"},
					{Name: "format", Value: markers[i%len(markers)]},
				},
			}, results[i])
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		require.Len(t, r.sends, 1)
		want := fmt.Sprintf("<t:1700000000:%s>", markers[i%len(markers)])
		assert.True(t, strings.HasPrefix(r.sends[0].content, "`"+want+"` => "+want), r.sends[0].content)
	}
}

func TestResponderFunc(t *testing.T) {
	var got sent
	r := ResponderFunc(func(_ context.Context, content string, public bool) error {
		got = sent{content, public}
		return nil
	})
	require.NoError(t, r.Respond(context.Background(), "x", true))
	assert.Equal(t, sent{"x", true}, got)
	assert.Equal(t, "response-unrecoverable", ResponseUnrecoverable.String())
}
