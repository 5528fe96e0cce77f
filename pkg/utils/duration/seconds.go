// ABOUTME: Duration parsing for feed values given as seconds or clock strings
// ABOUTME: Accepts 5400, "1h30m", "01:30:00" and "90:00"

package duration

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Seconds converts a feed duration to whole seconds. Plain integers are
// taken as seconds; Go durations and HH:MM:SS or MM:SS clock strings are
// converted. Negative values are rejected.
func Seconds(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative duration %q", s)
		}
		return n, nil
	}

	if strings.Contains(s, ":") {
		return clock(s)
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return int64(d / time.Second), nil
}

// clock parses HH:MM:SS or MM:SS. Only the leading part may exceed 59.
func clock(s string) (int64, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	var total int64
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 || (i > 0 && n > 59) {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		total = total*60 + n
	}
	return total, nil
}

// Format renders seconds as HH:MM:SS, or MM:SS under an hour.
func Format(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
