// Package timetable is the course-timetabling optimization engine: a binary
// decision model over (course, room, slot) triples, pluggable constraints
// and objectives, and a lexicographic multi-objective optimizer.
package timetable

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/satisfaculty/satisfaculty/internal/milp"
	"github.com/satisfaculty/satisfaculty/pkg/model"
)

// DefaultBuffer is the transition margin between classes, in minutes. Two
// slots separated by less than this still count as conflicting.
const DefaultBuffer = 15

// Model is the shared mutable optimization model: the loaded tables, the
// decision-key space, one binary column per key, and the accumulated
// constraint rows. A Model serves exactly one optimize run and is not safe
// for concurrent use.
type Model struct {
	Courses []model.Course
	Rooms   []model.Room
	Slots   []model.TimeSlot

	// Keys is the full Cartesian product in insertion order; Keys[i] is
	// backed by column i of Prob.
	Keys []Key
	Prob *milp.Problem

	// Buffer is the overlap margin in minutes.
	Buffer int

	log *zap.Logger

	courseIdx map[string]int
	roomIdx   map[string]int
	slotIdx   map[string]int

	instructors []string
	teaches     map[string]map[string]bool

	objCache map[string]milp.Expr
}

// NewModel builds the key space and decision columns from the entity tables.
// Identifier uniqueness is checked again here so models assembled from
// literals in tests carry the same invariant as CSV-loaded ones.
func NewModel(courses []model.Course, rooms []model.Room, slots []model.TimeSlot, buffer int, log *zap.Logger) (*Model, error) {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Model{
		Courses:   courses,
		Rooms:     rooms,
		Slots:     slots,
		Prob:      milp.NewProblem("course_timetable"),
		Buffer:    buffer,
		log:       log,
		courseIdx: make(map[string]int, len(courses)),
		roomIdx:   make(map[string]int, len(rooms)),
		slotIdx:   make(map[string]int, len(slots)),
		teaches:   make(map[string]map[string]bool),
		objCache:  make(map[string]milp.Expr),
	}

	for i, c := range courses {
		if _, dup := m.courseIdx[c.ID]; dup {
			return nil, fmt.Errorf("%w: course %s", ErrDuplicateID, c.ID)
		}
		m.courseIdx[c.ID] = i
		if m.teaches[c.Instructor] == nil {
			m.instructors = append(m.instructors, c.Instructor)
			m.teaches[c.Instructor] = make(map[string]bool)
		}
		m.teaches[c.Instructor][c.ID] = true
	}
	for i, r := range rooms {
		if _, dup := m.roomIdx[r.ID]; dup {
			return nil, fmt.Errorf("%w: room %s", ErrDuplicateID, r.ID)
		}
		m.roomIdx[r.ID] = i
	}
	for i, s := range slots {
		if _, dup := m.slotIdx[s.ID]; dup {
			return nil, fmt.Errorf("%w: time slot %s", ErrDuplicateID, s.ID)
		}
		m.slotIdx[s.ID] = i
	}

	m.Keys = make([]Key, 0, len(courses)*len(rooms)*len(slots))
	for ci := range courses {
		for ri := range rooms {
			for si := range slots {
				m.Keys = append(m.Keys, Key{Course: ci, Room: ri, Slot: si})
				m.Prob.AddBinary(fmt.Sprintf("x_%s_%s_%s",
					ident(courses[ci].ID), ident(rooms[ri].ID), ident(slots[si].ID)))
			}
		}
	}
	return m, nil
}

// Instructors returns the distinct instructors in first-appearance order.
func (m *Model) Instructors() []string { return m.instructors }

// Teaches reports whether the instructor teaches the course.
func (m *Model) Teaches(instructor, course string) bool {
	return m.teaches[instructor][course]
}

// SlotByID resolves a time slot identifier.
func (m *Model) SlotByID(id string) (model.TimeSlot, bool) {
	i, ok := m.slotIdx[id]
	if !ok {
		return model.TimeSlot{}, false
	}
	return m.Slots[i], true
}

// RoomByID resolves a room identifier.
func (m *Model) RoomByID(id string) (model.Room, bool) {
	i, ok := m.roomIdx[id]
	if !ok {
		return model.Room{}, false
	}
	return m.Rooms[i], true
}

// SumKeys builds the unit-coefficient sum of the decision columns behind the
// given keys.
func (m *Model) SumKeys(keys []Key) milp.Expr {
	var expr milp.Expr
	for _, k := range keys {
		expr.AddTerm(m.keyCol(k), 1)
	}
	return expr
}

// keyCol maps a key to its decision column. Keys and columns are created in
// lockstep, so the column index is the key's position in the product.
func (m *Model) keyCol(k Key) int {
	return (k.Course*len(m.Rooms)+k.Room)*len(m.Slots) + k.Slot
}

// AddAux appends an auxiliary binary column (used by pairing objectives).
func (m *Model) AddAux(name string) int {
	return m.Prob.AddBinary(name)
}

// cachedExpr returns a previously synthesized objective expression. The
// cache prevents auxiliary variables and their linking rows from being
// duplicated when the lexicographic loop re-evaluates an objective.
func (m *Model) cachedExpr(key string) (milp.Expr, bool) {
	e, ok := m.objCache[key]
	return e, ok
}

func (m *Model) storeExpr(key string, e milp.Expr) {
	m.objCache[key] = e
}

// ident makes an identifier safe for solver row/column names.
func ident(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}
