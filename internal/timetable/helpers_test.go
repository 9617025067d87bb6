package timetable

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satisfaculty/satisfaculty/internal/milp"
	"github.com/satisfaculty/satisfaculty/pkg/model"
)

// bruteSolver enumerates every binary assignment and keeps the best feasible
// one. Only fit for the small fixtures in these tests, but it makes solver
// behaviour exact and keeps the suite independent of the GLPK backend.
type bruteSolver struct{}

func (bruteSolver) Solve(p *milp.Problem, obj milp.Expr, sense milp.Sense) (*milp.Result, error) {
	const eps = 1e-6
	n := p.NumCols()
	values := make([]float64, n)
	best := &milp.Result{Status: milp.StatusInfeasible}

	var walk func(col int)
	walk = func(col int) {
		if col == n {
			for _, r := range p.Rows() {
				v := r.Expr.Eval(values)
				switch r.Kind {
				case milp.RowLE:
					if v > r.Upper+eps {
						return
					}
				case milp.RowGE:
					if v < r.Lower-eps {
						return
					}
				case milp.RowEQ:
					if math.Abs(v-r.Lower) > eps {
						return
					}
				case milp.RowRange:
					if v < r.Lower-eps || v > r.Upper+eps {
						return
					}
				}
			}
			v := obj.Eval(values)
			better := best.Status == milp.StatusInfeasible ||
				(sense == milp.Minimize && v < best.Objective-eps) ||
				(sense == milp.Maximize && v > best.Objective+eps)
			if better {
				best = &milp.Result{
					Status:    milp.StatusOptimal,
					Objective: v,
					Values:    append([]float64(nil), values...),
				}
			}
			return
		}
		c := p.Col(col)
		for _, x := range []float64{0, 1} {
			if x < c.Lower-eps || x > c.Upper+eps {
				continue
			}
			values[col] = x
			walk(col + 1)
		}
		values[col] = 0
	}
	walk(0)
	return best, nil
}

func mustSlot(t *testing.T, id, days, start, end string) model.TimeSlot {
	t.Helper()
	s := model.TimeSlot{ID: id, DayCode: days, StartSTR: start, EndSTR: end}
	require.NoError(t, s.Resolve())
	return s
}

func mustModel(t *testing.T, courses []model.Course, rooms []model.Room, slots []model.TimeSlot) *Model {
	t.Helper()
	m, err := NewModel(courses, rooms, slots, DefaultBuffer, nil)
	require.NoError(t, err)
	return m
}
