package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeTimeSlot canonicalizes a requested time slot for display.
// "HH:MM" inputs in 24-hour form become "<hour> <AM|PM>" ("09:00" -> "9 AM",
// "13:30" -> "1 PM", "00:15" -> "12 AM"). Inputs without a ":" are assumed
// already canonical and returned unchanged, which makes the function
// idempotent.
func NormalizeTimeSlot(slot string) string {
	if !strings.Contains(slot, ":") {
		return slot
	}
	hourStr := slot[:strings.Index(slot, ":")]
	hour, err := strconv.Atoi(strings.TrimSpace(hourStr))
	if err != nil {
		// Non-numeric hour prefix is an upstream validation concern.
		return slot
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d %s", hour, ampm)
}
