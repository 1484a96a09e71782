// Package timestamp turns a timestamp request into a Discord timestamp badge.
package timestamp

import "fmt"

// Format is one of the display styles a Discord client knows for a badge.
type Format int

const (
	Relative Format = iota
	ShortTime
	LongTime
	ShortDate
	LongDate
	Full
	FullWithDayOfWeek
)

// Legend explains every marker; appended to replies when listing is on.
const Legend = "__Other options:__\n" +
	"**R**elative, short **t**ime, long **T**ime, short **d**ate, long **D**ate, " +
	"**f**ull datetime, **F**ull datetime with Day-of-Week"

var catalog = [...]struct {
	marker string
	label  string
}{
	Relative:          {"R", "relative"},
	ShortTime:         {"t", "short time"},
	LongTime:          {"T", "long time"},
	ShortDate:         {"d", "short date"},
	LongDate:          {"D", "long date"},
	Full:              {"f", "long date with short time"},
	FullWithDayOfWeek: {"F", "long date with day of week and short time"},
}

// Formats returns every format in legend order.
func Formats() []Format {
	formats := make([]Format, len(catalog))
	for i := range catalog {
		formats[i] = Format(i)
	}
	return formats
}

func (f Format) Valid() bool {
	return f >= 0 && int(f) < len(catalog)
}

// Marker is the single character Discord expects inside the badge.
func (f Format) Marker() string {
	if !f.Valid() {
		return ""
	}
	return catalog[f].marker
}

func (f Format) Label() string {
	if !f.Valid() {
		return ""
	}
	return catalog[f].label
}

func (f Format) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return catalog[f].label
}

// ParseMarker is the inverse of Marker. Markers are case-sensitive.
func ParseMarker(marker string) (Format, error) {
	for i, entry := range catalog {
		if entry.marker == marker {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want one of RtTdDfF)", ErrInvalidFormatMarker, marker)
}
