package model

import "fmt"

// TimeSlot is one weekly meeting pattern. The CSV-facing STR fields hold the
// raw tokens; Resolve fills the derived fields once at load and the slot is
// immutable afterwards.
type TimeSlot struct {
	ID       string `csv:"Slot" validate:"required"`
	DayCode  string `csv:"Days" validate:"required"`
	StartSTR string `csv:"Start" validate:"required"`
	EndSTR   string `csv:"End" validate:"required"`
	SlotType string `csv:"Slot Type"`

	Days  []Day `csv:"-"`
	Start int   `csv:"-"` // minutes since midnight
	End   int   `csv:"-"`
}

// Resolve expands the day code and parses the clock strings.
func (t *TimeSlot) Resolve() error {
	t.Days = ExpandDays(t.DayCode)
	start, err := ParseClock(t.StartSTR)
	if err != nil {
		return fmt.Errorf("slot %s: %w", t.ID, err)
	}
	end, err := ParseClock(t.EndSTR)
	if err != nil {
		return fmt.Errorf("slot %s: %w", t.ID, err)
	}
	if end <= start {
		return fmt.Errorf("slot %s: end %s not after start %s", t.ID, t.EndSTR, t.StartSTR)
	}
	t.Start = start
	t.End = end
	return nil
}

// OnDay reports whether the slot meets on the given day.
func (t TimeSlot) OnDay(d Day) bool {
	for _, day := range t.Days {
		if day == d {
			return true
		}
	}
	return false
}

// ParseClock converts "HH:MM" (or "H:MM") to minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	return h*60 + m, nil
}

// FormatClock converts minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
