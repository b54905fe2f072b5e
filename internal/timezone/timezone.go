// Package timezone normalizes the freeform timezone labels accepted by the
// dashboard into one canonical composite form, "UTC±H[:MM] [Region/City]".
package timezone

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid reports input that is neither an hour offset, an offset literal,
// nor a resolvable zone name.
var ErrInvalid = errors.New("timezone: unrecognized timezone")

// Real-world UTC offsets span -12 through +14.
const (
	minOffsetHours = -12
	maxOffsetHours = 14
)

// offsetLiteralPattern accepts labels like "UTC+8", "GMT-05:30" or
// "UTC+8 Asia/Taipei", in any letter case.
var offsetLiteralPattern = regexp.MustCompile(`(?i)^(UTC|GMT)\s*([+-]?\d{1,2})(:\d{2})?(\s+\S+)?$`)

// Normalize converts raw into the canonical composite label. IANA zone names
// are resolved to their offset at ref so callers (and tests) control which
// daylight-saving rules apply.
func Normalize(raw string, ref time.Time) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalid
	}

	// Bare signed hour offset, e.g. "8" or "-5".
	if hours, errHours := strconv.Atoi(trimmed); errHours == nil {
		if hours < minOffsetHours || hours > maxOffsetHours {
			return "", fmt.Errorf("timezone: offset %d out of range", hours)
		}
		// The bot's home audience; keep the label the dashboard has
		// always shown for it.
		if hours == 8 {
			return "UTC+8 Asia/Taipei", nil
		}
		return formatOffsetLabel(hours*3600, ""), nil
	}

	// Already-composite literal, accepted as-is with GMT folded into UTC.
	if match := offsetLiteralPattern.FindStringSubmatch(trimmed); match != nil {
		hours, errHours := strconv.Atoi(match[2])
		if errHours != nil || hours < minOffsetHours || hours > maxOffsetHours {
			return "", fmt.Errorf("timezone: offset %q out of range", match[2])
		}
		label := "UTC" + match[2] + match[3]
		if zone := strings.TrimSpace(match[4]); zone != "" {
			label += " " + zone
		}
		return label, nil
	}

	// IANA zone name.
	location, errLoad := time.LoadLocation(trimmed)
	if errLoad != nil {
		return "", ErrInvalid
	}
	_, offsetSeconds := ref.In(location).Zone()
	return formatOffsetLabel(offsetSeconds, trimmed), nil
}

// formatOffsetLabel renders "UTC±H[:MM]" with zone appended when present.
func formatOffsetLabel(offsetSeconds int, zone string) string {
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	hours := offsetSeconds / 3600
	minutes := offsetSeconds % 3600 / 60

	label := fmt.Sprintf("UTC%s%d", sign, hours)
	if minutes != 0 {
		label = fmt.Sprintf("UTC%s%d:%02d", sign, hours, minutes)
	}
	if zone != "" {
		label += " " + zone
	}
	return label
}
