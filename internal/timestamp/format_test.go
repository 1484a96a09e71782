package timestamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timestamp-bot/internal/apperr"
)

func TestMarkerRoundTrip(t *testing.T) {
	for _, m := range []string{"R", "t", "T", "d", "D", "f", "F"} {
		f, err := ParseMarker(m)
		require.NoError(t, err, m)
		assert.Equal(t, m, f.Marker())
	}
}

func TestFormatsAreABijection(t *testing.T) {
	seen := map[string]Format{}
	for _, f := range Formats() {
		m := f.Marker()
		require.Len(t, m, 1)
		_, dup := seen[m]
		require.False(t, dup, "marker %q used twice", m)
		seen[m] = f

		back, err := ParseMarker(m)
		require.NoError(t, err)
		assert.Equal(t, f, back)
	}
	assert.Len(t, seen, 7)
}

func TestParseMarkerRejects(t *testing.T) {
	for _, m := range []string{"", "r", "x", "RR", "\"R\"", " R", "é"} {
		t.Run(m, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := ParseMarker(m)
				assert.ErrorIs(t, err, ErrInvalidFormatMarker)
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			})
		})
	}
}

func TestInvalidFormat(t *testing.T) {
	f := Format(42)

	assert.False(t, f.Valid())
	assert.Empty(t, f.Marker())
	assert.Equal(t, "Format(42)", f.String())
}

func TestBadge(t *testing.T) {
	assert.Equal(t, "<t:1700000000:R>", Badge(1700000000, Relative))
	assert.Equal(t, "<t:-86400:F>", Badge(-86400, FullWithDayOfWeek))
	assert.Equal(t, "<t:0:t>", Badge(0, ShortTime))
}
