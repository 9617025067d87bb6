package model

// ScheduleRow is one solved assignment joined with display fields, and
// doubles as the CSV export format.
type ScheduleRow struct {
	Course     string `csv:"Course"`
	Room       string `csv:"Room"`
	Slot       string `csv:"Time Slot"`
	Days       string `csv:"Days"`
	Start      string `csv:"Start"`
	End        string `csv:"End"`
	Instructor string `csv:"Instructor"`
}

// Schedule is the solved course -> (room, time slot) mapping. It exists only
// after a successful optimize run and is rebuilt from scratch on each one.
type Schedule struct {
	Rows []ScheduleRow
}

// Lookup returns the row for a course, if the course was assigned.
func (s *Schedule) Lookup(course string) (ScheduleRow, bool) {
	for _, r := range s.Rows {
		if r.Course == course {
			return r, true
		}
	}
	return ScheduleRow{}, false
}
