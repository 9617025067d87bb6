package timetable

import (
	"fmt"
	"sort"
	"strings"

	"github.com/satisfaculty/satisfaculty/internal/milp"
	"github.com/satisfaculty/satisfaculty/pkg/model"
)

// Objective is one named soft goal. Evaluate produces a linear expression
// over decision columns; the optimizer minimizes or maximizes it per Sense
// and then freezes the achieved value within Tolerance (a fraction of |v|)
// before moving to the next objective.
//
// Evaluate must be safe to call repeatedly within one optimize run:
// objectives that synthesize auxiliary columns memoize their expression in
// the model's objective cache so re-evaluation reuses, never duplicates,
// the auxiliary columns and linking rows.
type Objective interface {
	Name() string
	Sense() milp.Sense
	Tolerance() float64
	Evaluate(m *Model) (milp.Expr, error)
}

// ClassesBefore counts scheduled classes whose slot starts before Clock,
// optionally restricted to one instructor. Minimized unless Maximize is set.
type ClassesBefore struct {
	Clock      string // "HH:MM"
	Instructor string // optional
	Maximize   bool
	Tol        float64
}

func (o ClassesBefore) Name() string {
	return objectiveName(o.Sense(), fmt.Sprintf("classes before %s", o.Clock), o.Instructor, "")
}

func (o ClassesBefore) Sense() milp.Sense {
	if o.Maximize {
		return milp.Maximize
	}
	return milp.Minimize
}

func (o ClassesBefore) Tolerance() float64 { return o.Tol }

func (o ClassesBefore) Evaluate(m *Model) (milp.Expr, error) {
	threshold, err := model.ParseClock(o.Clock)
	if err != nil {
		return milp.Expr{}, err
	}
	keys := m.FilterKeys(Filter{Predicate: func(c model.Course, _ model.Room, s model.TimeSlot) bool {
		if s.Start >= threshold {
			return false
		}
		return o.Instructor == "" || c.Instructor == o.Instructor
	}})
	return m.SumKeys(keys), nil
}

// ClassesAfter counts scheduled classes whose slot starts after Clock,
// optionally restricted by instructor and slot type.
type ClassesAfter struct {
	Clock      string
	Instructor string
	SlotType   string
	Maximize   bool
	Tol        float64
}

func (o ClassesAfter) Name() string {
	return objectiveName(o.Sense(), fmt.Sprintf("classes after %s", o.Clock), o.Instructor, o.SlotType)
}

func (o ClassesAfter) Sense() milp.Sense {
	if o.Maximize {
		return milp.Maximize
	}
	return milp.Minimize
}

func (o ClassesAfter) Tolerance() float64 { return o.Tol }

func (o ClassesAfter) Evaluate(m *Model) (milp.Expr, error) {
	threshold, err := model.ParseClock(o.Clock)
	if err != nil {
		return milp.Expr{}, err
	}
	keys := m.FilterKeys(Filter{Predicate: func(c model.Course, _ model.Room, s model.TimeSlot) bool {
		if s.Start <= threshold {
			return false
		}
		if o.Instructor != "" && c.Instructor != o.Instructor {
			return false
		}
		return o.SlotType == "" || c.SlotType == o.SlotType
	}})
	return m.SumKeys(keys), nil
}

// MinutesAfter weighs each candidate by the minutes its slot runs past
// Clock, multiplied by the slot's day count, so a 30-minute overrun three
// days a week outweighs a 40-minute overrun on two days. Always minimized.
type MinutesAfter struct {
	Clock      string
	Instructor string
	SlotType   string
	Tol        float64
}

func (o MinutesAfter) Name() string {
	return objectiveName(milp.Minimize, fmt.Sprintf("minutes after %s", o.Clock), o.Instructor, o.SlotType)
}

func (o MinutesAfter) Sense() milp.Sense { return milp.Minimize }

func (o MinutesAfter) Tolerance() float64 { return o.Tol }

func (o MinutesAfter) Evaluate(m *Model) (milp.Expr, error) {
	threshold, err := model.ParseClock(o.Clock)
	if err != nil {
		return milp.Expr{}, err
	}
	var expr milp.Expr
	for _, k := range m.Keys {
		c, s := m.Courses[k.Course], m.Slots[k.Slot]
		if s.End <= threshold {
			continue
		}
		if o.Instructor != "" && c.Instructor != o.Instructor {
			continue
		}
		if o.SlotType != "" && c.SlotType != o.SlotType {
			continue
		}
		expr.AddTerm(m.keyCol(k), float64((s.End-threshold)*len(s.Days)))
	}
	return expr, nil
}

// PreferredRooms counts assignments landing in the given room set,
// optionally restricted by instructor and slot type. Maximized to steer
// courses toward the rooms, minimized (Avoid) to steer them away.
type PreferredRooms struct {
	Rooms      []string
	Instructor string
	SlotType   string
	Avoid      bool
	Tol        float64
}

func (o PreferredRooms) Name() string {
	return objectiveName(o.Sense(), fmt.Sprintf("preferred rooms (%s)", strings.Join(o.Rooms, ", ")), o.Instructor, o.SlotType)
}

func (o PreferredRooms) Sense() milp.Sense {
	if o.Avoid {
		return milp.Minimize
	}
	return milp.Maximize
}

func (o PreferredRooms) Tolerance() float64 { return o.Tol }

func (o PreferredRooms) Evaluate(m *Model) (milp.Expr, error) {
	rooms := make(map[string]bool, len(o.Rooms))
	for _, r := range o.Rooms {
		rooms[r] = true
	}
	keys := m.FilterKeys(Filter{Predicate: func(c model.Course, r model.Room, _ model.TimeSlot) bool {
		if !rooms[r.ID] {
			return false
		}
		if o.Instructor != "" && c.Instructor != o.Instructor {
			return false
		}
		return o.SlotType == "" || c.SlotType == o.SlotType
	}})
	return m.SumKeys(keys), nil
}

// LabRootDayPairs rewards scheduling sibling lab sections of one root course
// onto the same day pattern. For each root family with at least two members
// and each candidate pattern, one auxiliary binary y is linked by
// 2*y <= (sections of the family on that pattern), so y can only be 1 when
// the family actually pairs up; the objective maximizes the sum of all y.
type LabRootDayPairs struct {
	SlotTypes []string // lab section slot types to include
	Patterns  []string // day patterns to pair on, e.g. "MW", "TTH"
	Roots     []string // optional root filter
	Tol       float64
}

func (o LabRootDayPairs) Name() string {
	name := fmt.Sprintf("Pair lab roots on days (%s)", strings.Join(o.Patterns, ", "))
	if len(o.Roots) > 0 {
		name = fmt.Sprintf("%s for (%s)", name, strings.Join(o.Roots, ", "))
	}
	return name
}

func (o LabRootDayPairs) Sense() milp.Sense { return milp.Maximize }

func (o LabRootDayPairs) Tolerance() float64 { return o.Tol }

func (o LabRootDayPairs) Evaluate(m *Model) (milp.Expr, error) {
	types := append([]string(nil), o.SlotTypes...)
	patterns := append([]string(nil), o.Patterns...)
	sort.Strings(types)
	sort.Strings(patterns)
	cacheKey := "lab_root_day_pairs|" + strings.Join(types, ",") + "|" + strings.Join(patterns, ",")
	if expr, ok := m.cachedExpr(cacheKey); ok {
		return expr, nil
	}

	typeSet := make(map[string]bool, len(o.SlotTypes))
	for _, t := range o.SlotTypes {
		typeSet[t] = true
	}
	var rootSet map[string]bool
	if len(o.Roots) > 0 {
		rootSet = make(map[string]bool, len(o.Roots))
		for _, r := range o.Roots {
			rootSet[r] = true
		}
	}

	// Group member course indices by root, keeping root discovery order.
	var rootOrder []string
	family := make(map[string][]int)
	for ci, c := range m.Courses {
		if !typeSet[c.SlotType] {
			continue
		}
		root := c.Root()
		if rootSet != nil && !rootSet[root] {
			continue
		}
		if _, seen := family[root]; !seen {
			rootOrder = append(rootOrder, root)
		}
		family[root] = append(family[root], ci)
	}

	var expr milp.Expr
	for _, root := range rootOrder {
		members := family[root]
		if len(members) < 2 {
			continue
		}
		inFamily := make(map[int]bool, len(members))
		for _, ci := range members {
			inFamily[ci] = true
		}
		for _, pattern := range o.Patterns {
			want := model.ExpandDays(pattern)
			y := m.AddAux(fmt.Sprintf("pair_%s_%s", ident(root), pattern))
			expr.AddTerm(y, 1)

			// 2*y - (family sections on this pattern) <= 0
			link := milp.Expr{}
			link.AddTerm(y, 2)
			for _, k := range m.Keys {
				if inFamily[k.Course] && model.SameDays(m.Slots[k.Slot].Days, want) {
					link.AddTerm(m.keyCol(k), -1)
				}
			}
			m.Prob.AddRow(milp.Row{
				Name:  fmt.Sprintf("pair_root_%s_%s", ident(root), pattern),
				Expr:  link,
				Kind:  milp.RowLE,
				Upper: 0,
			})
		}
	}

	m.storeExpr(cacheKey, expr)
	return expr, nil
}

func objectiveName(sense milp.Sense, what, instructor, slotType string) string {
	parts := []string{what}
	if instructor != "" {
		parts = append(parts, "for "+instructor)
	}
	if slotType != "" {
		parts = append(parts, "("+slotType+")")
	}
	verb := "Minimize"
	if sense == milp.Maximize {
		verb = "Maximize"
	}
	return verb + " " + strings.Join(parts, " ")
}
