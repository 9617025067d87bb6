package timetable

import (
	"fmt"
	"strings"

	"github.com/satisfaculty/satisfaculty/pkg/model"
)

// ValidateReferences cross-checks the forcing annotations against the room
// and time-slot tables. Drivers that want a bad annotation to fail the run
// call this after loading; without it, ForceRooms and ForceTimeSlots skip
// the annotation with a warning.
func ValidateReferences(courses []model.Course, rooms []model.Room, slots []model.TimeSlot) error {
	roomIDs := make(map[string]bool, len(rooms))
	for _, r := range rooms {
		roomIDs[r.ID] = true
	}
	slotIDs := make(map[string]bool, len(slots))
	for _, s := range slots {
		slotIDs[s.ID] = true
	}

	for _, c := range courses {
		if forced := strings.TrimSpace(c.ForceRoom); forced != "" && !roomIDs[forced] {
			return fmt.Errorf("course %s: %w %s", c.ID, ErrUnknownRoom, forced)
		}
		if forced := strings.TrimSpace(c.ForceTimeSlot); forced != "" && !slotIDs[forced] {
			return fmt.Errorf("course %s: %w %s", c.ID, ErrUnknownSlot, forced)
		}
	}
	return nil
}
