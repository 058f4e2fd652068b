package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// SlotMinutes is the grid granularity for the practice calendar.
const SlotMinutes = 30

// Calendar is the ordered grid of bookable start times for a working day,
// as HH:MM labels. Slot arithmetic works on ordinal position in this slice,
// not on parsed times, so the order must be strictly increasing with no gaps.
type Calendar []string

// NewCalendar builds a grid from open through close inclusive, in
// SlotMinutes steps. open and close are HH:MM labels.
func NewCalendar(open, close string) (Calendar, error) {
	start, err := parseMinutes(open)
	if err != nil {
		return nil, fmt.Errorf("parse open time: %w", err)
	}
	end, err := parseMinutes(close)
	if err != nil {
		return nil, fmt.Errorf("parse close time: %w", err)
	}
	if end < start {
		return nil, fmt.Errorf("close time %s is before open time %s", close, open)
	}

	var cal Calendar
	for m := start; m <= end; m += SlotMinutes {
		cal = append(cal, formatMinutes(m))
	}
	return cal, nil
}

// DefaultCalendar returns the practice's published working-hours grid:
// 08:00 through 17:00, 19 slots.
func DefaultCalendar() Calendar {
	cal, err := NewCalendar("08:00", "17:00")
	if err != nil {
		panic(err)
	}
	return cal
}

// Index returns the ordinal position of slot in the grid, or -1.
func (c Calendar) Index(slot string) int {
	for i, s := range c {
		if s == slot {
			return i
		}
	}
	return -1
}

func parseMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
