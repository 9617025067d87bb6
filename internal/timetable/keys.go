package timetable

import "github.com/satisfaculty/satisfaculty/pkg/model"

// Key identifies one candidate (course, room, slot) assignment by table
// indices. Each key is backed by one binary decision column.
type Key struct {
	Course int
	Room   int
	Slot   int
}

// Predicate filters keys by the joined entity records.
type Predicate func(c model.Course, r model.Room, s model.TimeSlot) bool

// Filter selects a subsequence of the key space. Empty identifier fields
// match anything; all supplied conditions are ANDed.
type Filter struct {
	Course    string
	Room      string
	Slot      string
	Predicate Predicate
}

// FilterKeys is the single enumeration primitive constraints and objectives
// compose over. It walks the key space once and preserves its order, so
// constraint rows and variable references stay reproducible across runs.
// A filter naming an unknown identifier matches nothing.
func (m *Model) FilterKeys(f Filter) []Key {
	course, room, slot := -1, -1, -1
	if f.Course != "" {
		i, ok := m.courseIdx[f.Course]
		if !ok {
			return nil
		}
		course = i
	}
	if f.Room != "" {
		i, ok := m.roomIdx[f.Room]
		if !ok {
			return nil
		}
		room = i
	}
	if f.Slot != "" {
		i, ok := m.slotIdx[f.Slot]
		if !ok {
			return nil
		}
		slot = i
	}

	var keys []Key
	for _, k := range m.Keys {
		if course >= 0 && k.Course != course {
			continue
		}
		if room >= 0 && k.Room != room {
			continue
		}
		if slot >= 0 && k.Slot != slot {
			continue
		}
		if f.Predicate != nil && !f.Predicate(m.Courses[k.Course], m.Rooms[k.Room], m.Slots[k.Slot]) {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}
