package timestamp

import (
	"fmt"
	"time"
)

// Localize reads the wall clock of wall (ignoring its location) as a time in
// loc. It fails when that wall time does not exist in loc or exists twice,
// as happens around daylight-saving transitions.
func Localize(wall time.Time, loc *time.Location) (time.Time, error) {
	y, mo, d := wall.Date()
	h, mi, s := wall.Clock()
	naive := time.Date(y, mo, d, h, mi, s, wall.Nanosecond(), time.UTC)

	var found []time.Time
	for _, probe := range []time.Time{naive.Add(-24 * time.Hour), naive, naive.Add(24 * time.Hour)} {
		_, off := probe.In(loc).Zone()
		candidate := naive.Add(-time.Duration(off) * time.Second)
		if !sameWall(candidate.In(loc), naive) || containsInstant(found, candidate) {
			continue
		}
		found = append(found, candidate)
	}

	switch len(found) {
	case 1:
		return found[0].In(loc), nil
	case 0:
		return time.Time{}, fmt.Errorf("%w: %s does not exist in %s", ErrAmbiguousLocalTime, naive.Format(time.DateTime), loc)
	default:
		return time.Time{}, fmt.Errorf("%w: %s occurs %d times in %s", ErrAmbiguousLocalTime, naive.Format(time.DateTime), len(found), loc)
	}
}

func sameWall(t, naive time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := naive.Date()
	h1, i1, s1 := t.Clock()
	h2, i2, s2 := naive.Clock()
	return y1 == y2 && m1 == m2 && d1 == d2 && h1 == h2 && i1 == i2 && s1 == s2 &&
		t.Nanosecond() == naive.Nanosecond()
}

func containsInstant(ts []time.Time, t time.Time) bool {
	for _, x := range ts {
		if x.Equal(t) {
			return true
		}
	}
	return false
}
