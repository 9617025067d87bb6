package timetable

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/satisfaculty/satisfaculty/internal/milp"
	"github.com/satisfaculty/satisfaculty/pkg/model"
)

// Constraint is one named feasibility rule. Apply mutates the shared model
// by adding rows or tightening column bounds and returns how many clauses or
// bound changes it made. Constraints are applied in caller-supplied order;
// order never affects correctness since all rows hold simultaneously.
type Constraint interface {
	Name() string
	Apply(m *Model) (int, error)
}

// AssignAllCourses requires every course to be scheduled exactly once.
type AssignAllCourses struct{}

func (AssignAllCourses) Name() string { return "Assign all courses" }

func (AssignAllCourses) Apply(m *Model) (int, error) {
	count := 0
	for _, c := range m.Courses {
		m.Prob.AddRow(milp.Row{
			Name:  "assign_course_" + ident(c.ID),
			Expr:  m.SumKeys(m.FilterKeys(Filter{Course: c.ID})),
			Kind:  milp.RowEQ,
			Lower: 1,
			Upper: 1,
		})
		count++
	}
	return count, nil
}

// NoInstructorOverlap keeps an instructor from teaching two overlapping
// slots. One row per (instructor, reference slot) pair.
type NoInstructorOverlap struct{}

func (NoInstructorOverlap) Name() string { return "No instructor overlap" }

func (NoInstructorOverlap) Apply(m *Model) (int, error) {
	count := 0
	for _, instructor := range m.Instructors() {
		for _, ref := range m.Slots {
			pred := OverlapPredicate(ref, m.Buffer)
			var expr milp.Expr
			for _, k := range m.FilterKeys(Filter{Predicate: pred}) {
				if m.Teaches(instructor, m.Courses[k.Course].ID) {
					expr.AddTerm(m.keyCol(k), 1)
				}
			}
			m.Prob.AddRow(milp.Row{
				Name:  fmt.Sprintf("no_instructor_overlap_%s_%s", ident(instructor), ident(ref.ID)),
				Expr:  expr,
				Kind:  milp.RowLE,
				Upper: 1,
			})
			count++
		}
	}
	return count, nil
}

// NoRoomOverlap keeps a room from hosting two overlapping slots. Reference
// points are the distinct (day, start minute) pairs over all slots, so a
// long lab blocks every lecture start it covers.
type NoRoomOverlap struct{}

func (NoRoomOverlap) Name() string { return "No room overlap" }

func (NoRoomOverlap) Apply(m *Model) (int, error) {
	type dayStart struct {
		day   model.Day
		start int
	}
	var pairs []dayStart
	seen := make(map[dayStart]bool)
	for _, slot := range m.Slots {
		for _, day := range slot.Days {
			p := dayStart{day: day, start: slot.Start}
			if !seen[p] {
				seen[p] = true
				pairs = append(pairs, p)
			}
		}
	}

	count := 0
	for ri, room := range m.Rooms {
		for _, p := range pairs {
			var expr milp.Expr
			for _, k := range m.Keys {
				if k.Room != ri {
					continue
				}
				s := m.Slots[k.Slot]
				if !s.OnDay(p.day) {
					continue
				}
				if s.Start <= p.start && s.End > p.start-m.Buffer {
					expr.AddTerm(m.keyCol(k), 1)
				}
			}
			if expr.Len() == 0 {
				continue
			}
			m.Prob.AddRow(milp.Row{
				Name:  fmt.Sprintf("no_room_overlap_%s_%s_%d", ident(room.ID), p.day, p.start),
				Expr:  expr,
				Kind:  milp.RowLE,
				Upper: 1,
			})
			count++
		}
	}
	return count, nil
}

// RoomCapacity forces off every key whose course would not fit its room.
// Bound tightening rather than a linear row: cheaper, and it prunes the
// search space before the solver sees it.
type RoomCapacity struct{}

func (RoomCapacity) Name() string { return "Room capacity" }

func (RoomCapacity) Apply(m *Model) (int, error) {
	count := 0
	for i, k := range m.Keys {
		if m.Courses[k.Course].Enrollment > m.Rooms[k.Room].Capacity {
			m.Prob.SetUpper(i, 0)
			count++
		}
	}
	return count, nil
}

// AvoidRoomsForCourseType forbids a set of rooms for courses of one slot
// type, again by bound tightening.
type AvoidRoomsForCourseType struct {
	Rooms    []string
	SlotType string
}

func (c AvoidRoomsForCourseType) Name() string {
	return fmt.Sprintf("Avoid rooms (%s) for %s", strings.Join(c.Rooms, ", "), c.SlotType)
}

func (c AvoidRoomsForCourseType) Apply(m *Model) (int, error) {
	forbidden := make(map[string]bool, len(c.Rooms))
	for _, r := range c.Rooms {
		forbidden[r] = true
	}
	count := 0
	for i, k := range m.Keys {
		if m.Courses[k.Course].SlotType == c.SlotType && forbidden[m.Rooms[k.Room].ID] {
			m.Prob.SetUpper(i, 0)
			count++
		}
	}
	return count, nil
}

// ForceRooms pins courses carrying a ForceRoom annotation to that room.
// Annotations referencing a room missing from the table are skipped with a
// warning so one bad row doesn't sink the whole apply step.
type ForceRooms struct{}

func (ForceRooms) Name() string { return "Force rooms" }

func (ForceRooms) Apply(m *Model) (int, error) {
	count := 0
	for _, c := range m.Courses {
		forced := strings.TrimSpace(c.ForceRoom)
		if forced == "" {
			continue
		}
		if _, ok := m.RoomByID(forced); !ok {
			m.log.Warn("force room skipped: room not found",
				zap.String("course", c.ID), zap.String("room", forced))
			continue
		}
		m.Prob.AddRow(milp.Row{
			Name:  "force_room_" + ident(c.ID),
			Expr:  m.SumKeys(m.FilterKeys(Filter{Course: c.ID, Room: forced})),
			Kind:  milp.RowEQ,
			Lower: 1,
			Upper: 1,
		})
		count++
	}
	return count, nil
}

// ForceTimeSlots pins courses carrying a ForceTimeSlot annotation to that
// slot, with the same presence check as ForceRooms.
type ForceTimeSlots struct{}

func (ForceTimeSlots) Name() string { return "Force time slots" }

func (ForceTimeSlots) Apply(m *Model) (int, error) {
	count := 0
	for _, c := range m.Courses {
		forced := strings.TrimSpace(c.ForceTimeSlot)
		if forced == "" {
			continue
		}
		if _, ok := m.SlotByID(forced); !ok {
			m.log.Warn("force time slot skipped: slot not found",
				zap.String("course", c.ID), zap.String("slot", forced))
			continue
		}
		m.Prob.AddRow(milp.Row{
			Name:  "force_time_slot_" + ident(c.ID),
			Expr:  m.SumKeys(m.FilterKeys(Filter{Course: c.ID, Slot: forced})),
			Kind:  milp.RowEQ,
			Lower: 1,
			Upper: 1,
		})
		count++
	}
	return count, nil
}
