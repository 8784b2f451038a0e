package store

import (
	"fmt"
	"strings"
	"time"
)

// IsOpen follows the menu's rules: no hours configured means always open, a missing or closed day
// means closed, a close time earlier than the open time runs past midnight, bounds are inclusive.
func (h OpeningHours) IsOpen(now time.Time) bool {
	if len(h) == 0 {
		return true
	}

	schedule, ok := h[strings.ToLower(now.Weekday().String())]
	if !ok || schedule.Closed {
		return false
	}

	open, err := minutesOfDay(schedule.Open)
	if err != nil {
		return false
	}
	closing, err := minutesOfDay(schedule.Close)
	if err != nil {
		return false
	}

	current := now.Hour()*60 + now.Minute()
	if closing < open {
		return current >= open || current <= closing
	}
	return current >= open && current <= closing
}

func minutesOfDay(hhmm string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("bad time %q: %w", hhmm, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("bad time %q", hhmm)
	}
	return h*60 + m, nil
}
