package timestamp

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"timestamp-bot/pkg/cmd"
)

// Option names of the timestamp command.
const (
	OptionDescriptor = "descriptor"
	OptionTimezone   = "timezone"
	OptionFormat     = "format"
	OptionList       = "list"
)

var optionTable = cmd.Table{
	OptionDescriptor: nil,
	OptionTimezone:   "default",
	OptionFormat:     Relative.Marker(),
	OptionList:       true,
}

// Request is a fully validated timestamp request.
type Request struct {
	Descriptor string
	Offset     Offset
	Format     Format
	List       bool
}

// ParseRequest validates the supplied options against the timestamp command's
// defaults and resolves the timezone relative to def.
func ParseRequest(options []cmd.Option, def Offset) (Request, error) {
	values := cmd.Extract(options, optionTable)

	descriptor, err := values.String(OptionDescriptor)
	if err != nil {
		return Request{}, optionError(err)
	}
	if strings.TrimSpace(descriptor) == "" {
		return Request{}, fmt.Errorf("%w: %q is blank", ErrMissingRequiredOption, OptionDescriptor)
	}

	marker, err := values.String(OptionFormat)
	if err != nil {
		return Request{}, optionError(err)
	}
	format, err := ParseMarker(unquote(marker))
	if err != nil {
		return Request{}, err
	}

	zone, err := values.String(OptionTimezone)
	if err != nil {
		return Request{}, optionError(err)
	}
	offset, err := Resolve(zone, def)
	if err != nil {
		return Request{}, err
	}

	list, err := values.Bool(OptionList)
	if err != nil {
		return Request{}, optionError(err)
	}

	return Request{
		Descriptor: descriptor,
		Offset:     offset,
		Format:     format,
		List:       list,
	}, nil
}

// Render builds the private reply for now, read as a wall clock in the
// request's zone. The badge is shown once as copyable markup and once live.
func (r Request) Render(now time.Time) (*cmd.Reply, error) {
	badge, err := r.Badge(now)
	if err != nil {
		return nil, err
	}

	content := "`" + badge + "` => " + badge
	if r.List {
		content += "\n" + Legend
	}
	return &cmd.Reply{Content: content, Public: false}, nil
}

// Badge reads now's wall clock in the request's zone and renders the badge.
func (r Request) Badge(now time.Time) (string, error) {
	at, err := Localize(now, r.Offset.Location())
	if err != nil {
		return "", err
	}
	return Badge(at.Unix(), r.Format), nil
}

// Compile runs the whole timestamp pipeline.
func Compile(options []cmd.Option, now time.Time, def Offset) (*cmd.Reply, error) {
	req, err := ParseRequest(options, def)
	if err != nil {
		return nil, err
	}
	return req.Render(now)
}

func optionError(err error) error {
	if errors.Is(err, cmd.ErrOptionMissing) {
		return fmt.Errorf("%w: %v", ErrMissingRequiredOption, err)
	}
	return fmt.Errorf("%w: %v", ErrInvalidOption, err)
}
