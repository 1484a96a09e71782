package timestamp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Offset is a fixed distance from UTC, in seconds east.
type Offset int

const (
	UTC Offset = 0

	// MaxOffset bounds resolved offsets; no civil zone lies further from UTC.
	MaxOffset = Offset(14 * 60 * 60)
)

func Hours(h int) Offset { return Offset(h * 3600) }

func (o Offset) Seconds() int { return int(o) }

func (o Offset) Location() *time.Location {
	return time.FixedZone(o.String(), int(o))
}

// String renders the offset as UTC±HH:MM.
func (o Offset) String() string {
	sign := '+'
	secs := int(o)
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, secs/3600, secs/60%60)
}

// Standard-time offsets, in minutes, for the abbreviations users type most.
var abbreviations = map[string]int{
	"pt": -8 * 60, "pst": -8 * 60, "pdt": -7 * 60,
	"mt": -7 * 60, "mst": -7 * 60, "mdt": -6 * 60,
	"ct": -6 * 60, "cst": -6 * 60, "cdt": -5 * 60,
	"et": -5 * 60, "est": -5 * 60, "edt": -4 * 60,
	"akst": -9 * 60, "hst": -10 * 60,
	"wet": 0, "west": 60, "bst": 60,
	"cet": 60, "cest": 2 * 60,
	"eet": 2 * 60, "eest": 3 * 60, "msk": 3 * 60,
	"ist": 5*60 + 30,
	"jst": 9 * 60, "kst": 9 * 60,
	"aest": 10 * 60, "aedt": 11 * 60,
	"nzst": 12 * 60, "nzdt": 13 * 60,
}

// base name, sign, hours, minutes
var descriptorRe = regexp.MustCompile(`^([a-z]*)\s*(?:([+-]?)\s*(\d{1,2})(?::?(\d{2}))?)?$`)

// Resolve turns a timezone descriptor into a fixed offset. Accepted forms are
// "default", "utc", "gmt", a known abbreviation, any of those followed by a
// signed "H" or "H:MM" shift, and a bare "±H[:MM]". "default" refers to def.
func Resolve(descriptor string, def Offset) (Offset, error) {
	text := strings.ToLower(strings.TrimSpace(unquote(strings.TrimSpace(descriptor))))
	m := descriptorRe.FindStringSubmatch(text)
	if m == nil || text == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedTimezone, descriptor)
	}
	name, sign, hours, minutes := m[1], m[2], m[3], m[4]

	var base Offset
	switch name {
	case "":
	case "default":
		base = def
	case "utc", "gmt", "z":
		base = UTC
	default:
		mins, ok := abbreviations[name]
		if !ok {
			return 0, fmt.Errorf("%w: unknown zone %q", ErrUnrecognizedTimezone, name)
		}
		base = Offset(mins * 60)
	}

	if name != "" && hours != "" && sign == "" {
		return 0, fmt.Errorf("%w: %q needs a sign before its shift", ErrUnrecognizedTimezone, descriptor)
	}

	var shift Offset
	if hours != "" {
		h, _ := strconv.Atoi(hours)
		mm := 0
		if minutes != "" {
			mm, _ = strconv.Atoi(minutes)
		}
		if mm >= 60 {
			return 0, fmt.Errorf("%w: %q has %d minutes", ErrUnrecognizedTimezone, descriptor, mm)
		}
		shift = Offset(h*3600 + mm*60)
		if sign == "-" {
			shift = -shift
		}
	}

	o := base + shift
	if o > MaxOffset || o < -MaxOffset {
		return 0, fmt.Errorf("%w: %s is out of range", ErrUnrecognizedTimezone, o)
	}
	return o, nil
}

// unquote strips one pair of enclosing double quotes. Some transports deliver
// string choices JSON-encoded.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
