package timetable

import (
	"fmt"

	"github.com/satisfaculty/satisfaculty/pkg/model"
)

// OverlapPredicate returns a key predicate that is true when a candidate
// slot's occupied time intersects the reference slot: the day sets share a
// day and the minute intervals meet under the transition buffer, so two
// classes separated by less than the buffer still conflict.
func OverlapPredicate(ref model.TimeSlot, buffer int) Predicate {
	return func(_ model.Course, _ model.Room, s model.TimeSlot) bool {
		if !model.DaysIntersect(ref.Days, s.Days) {
			return false
		}
		return s.Start <= ref.Start && s.End > ref.Start-buffer
	}
}

// OverlapWith resolves a slot identifier and returns the overlap predicate
// anchored at that slot, using the model's buffer.
func (m *Model) OverlapWith(slotID string) (Predicate, error) {
	ref, ok := m.SlotByID(slotID)
	if !ok {
		return nil, fmt.Errorf("unknown time slot %s", slotID)
	}
	return OverlapPredicate(ref, m.Buffer), nil
}
