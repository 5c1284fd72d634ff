package station

import (
	"strconv"
	"strings"
)

// LiveIDPrefix marks records built from a channel scan.
const LiveIDPrefix = "lofi-live-"

// GenreForTitle guesses a genre from a stream title.
func GenreForTitle(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "hip hop"), strings.Contains(t, "beats"):
		return "lofi-hip-hop"
	case strings.Contains(t, "jazz"):
		return "lofi-jazz"
	case strings.Contains(t, "sleep"), strings.Contains(t, "calm"):
		return "lofi-sleep"
	case strings.Contains(t, "study"), strings.Contains(t, "focus"):
		return "lofi-study"
	}
	return DefaultGenre
}

// LiveRecord builds the record for the n-th live stream of a scan, counting
// from zero.
func LiveRecord(n int, title, url string) Record {
	return New(LiveIDPrefix+strconv.Itoa(n+1), title, url, "LIVE: "+title, GenreForTitle(title))
}
