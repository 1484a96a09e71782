package timestamp

import "strconv"

// Badge renders the markup a Discord client shows as a localized time.
func Badge(unix int64, f Format) string {
	return "<t:" + strconv.FormatInt(unix, 10) + ":" + f.Marker() + ">"
}
