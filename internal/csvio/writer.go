package csvio

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/satisfaculty/satisfaculty/pkg/model"
)

// ExportSchedule writes the solved schedule to the CSV file at path,
// replacing any previous file.
func ExportSchedule(s *model.Schedule, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	rows := s.Rows
	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ScheduleString renders the schedule as CSV text.
func ScheduleString(s *model.Schedule) (string, error) {
	rows := s.Rows
	return gocsv.MarshalString(&rows)
}

// PrintSchedule prints the schedule as an aligned table, one course per
// line in assignment order.
func PrintSchedule(s *model.Schedule) {
	if len(s.Rows) == 0 {
		fmt.Println("No schedule available.")
		return
	}
	fmt.Printf("%-16s %-12s %-12s %-6s %-6s %-6s %s\n",
		"Course", "Room", "Time Slot", "Days", "Start", "End", "Instructor")
	fmt.Println(strings.Repeat("-", 72))
	for _, r := range s.Rows {
		fmt.Printf("%-16s %-12s %-12s %-6s %-6s %-6s %s\n",
			r.Course, r.Room, r.Slot, r.Days, r.Start, r.End, r.Instructor)
	}
}
