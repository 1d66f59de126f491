package planner

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the modulus used for all time-of-day arithmetic.
const MinutesPerDay = 24 * 60

// Clock is a time of day expressed in minutes since midnight, in [0, 1440).
type Clock int

// ParseClock parses a 24-hour "HH:MM" value. "HH:MM:SS" is accepted as well,
// the seconds are dropped.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time of day %q, use HH:MM", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if len(parts) == 3 {
		seconds, err := strconv.Atoi(parts[2])
		if err != nil || seconds < 0 || seconds > 59 {
			return 0, fmt.Errorf("invalid second in %q", s)
		}
	}

	return Clock(hours*60 + minutes), nil
}

// ClockFromMinutes folds any minute count, including negative ones and values
// past midnight, onto a time of day.
func ClockFromMinutes(minutes int) Clock {
	m := minutes % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return Clock(m)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Add shifts the clock by the given number of minutes, wrapping at midnight.
func (c Clock) Add(minutes int) Clock {
	return ClockFromMinutes(int(c) + minutes)
}

// Minutes returns the elapsed minutes from one time of day to another. A
// negative difference is taken to cross midnight once; multi-day journeys are
// not modelled.
func Minutes(from, to Clock) int {
	d := int(to) - int(from)
	if d < 0 {
		d += MinutesPerDay
	}
	return d
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
