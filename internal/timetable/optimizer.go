package timetable

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/satisfaculty/satisfaculty/internal/milp"
	"github.com/satisfaculty/satisfaculty/pkg/model"
)

// Scheduler drives the lexicographic solve sequence over one set of entity
// tables and constraints. A fresh model (and objective cache) is built for
// every Optimize call; one Scheduler must run at most one optimize sequence
// at a time.
type Scheduler struct {
	courses     []model.Course
	rooms       []model.Room
	slots       []model.TimeSlot
	constraints []Constraint
	solver      milp.Solver
	log         *zap.Logger
	buffer      int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithSolver swaps the MILP backend.
func WithSolver(s milp.Solver) Option {
	return func(sc *Scheduler) { sc.solver = s }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(sc *Scheduler) { sc.log = l }
}

// WithBuffer overrides the overlap buffer in minutes.
func WithBuffer(minutes int) Option {
	return func(sc *Scheduler) { sc.buffer = minutes }
}

// New returns a scheduler over the given tables, defaulting to the GLPK
// backend, a nop logger and the standard 15-minute buffer.
func New(courses []model.Course, rooms []model.Room, slots []model.TimeSlot, opts ...Option) *Scheduler {
	s := &Scheduler{
		courses: courses,
		rooms:   rooms,
		slots:   slots,
		solver:  milp.NewGLPK(),
		log:     zap.NewNop(),
		buffer:  DefaultBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddConstraints appends hard constraints in application order.
func (s *Scheduler) AddConstraints(cs ...Constraint) {
	s.constraints = append(s.constraints, cs...)
}

// Optimize runs the objectives in priority order: solve, freeze the achieved
// value within the objective's tolerance, move on. The returned schedule is
// nil in exactly two cases: with a non-nil Diagnosis when the hard
// constraints are mutually unsatisfiable (an expected outcome, not an
// error), or with a non-nil error for data problems and solver anomalies.
func (s *Scheduler) Optimize(objectives []Objective) (*model.Schedule, *Diagnosis, error) {
	m, err := s.buildModel(s.constraints)
	if err != nil {
		return nil, nil, err
	}

	var last *milp.Result
	for i, obj := range objectives {
		expr, err := obj.Evaluate(m)
		if err != nil {
			return nil, nil, fmt.Errorf("objective %q: %w", obj.Name(), err)
		}
		res, err := s.solver.Solve(m.Prob, expr, obj.Sense())
		if err != nil {
			return nil, nil, err
		}
		switch res.Status {
		case milp.StatusOptimal, milp.StatusFeasible:
		case milp.StatusInfeasible:
			if i == 0 {
				s.log.Warn("model infeasible, diagnosing constraint set")
				return nil, s.diagnose(), nil
			}
			return nil, nil, fmt.Errorf("%w: objective %q", ErrFrozenInfeasible, obj.Name())
		default:
			return nil, nil, fmt.Errorf("%w: %s solving objective %q", ErrSolver, res.Status, obj.Name())
		}

		s.log.Info("objective solved",
			zap.Int("priority", i),
			zap.String("objective", obj.Name()),
			zap.String("sense", obj.Sense().String()),
			zap.Float64("value", res.Objective))

		s.freeze(m, i, obj, expr, res.Objective)
		last = res
	}

	if last == nil {
		// No objectives: one solve with a trivial objective to obtain any
		// feasible assignment.
		res, err := s.solver.Solve(m.Prob, milp.Expr{}, milp.Minimize)
		if err != nil {
			return nil, nil, err
		}
		switch res.Status {
		case milp.StatusOptimal, milp.StatusFeasible:
			last = res
		case milp.StatusInfeasible:
			s.log.Warn("model infeasible, diagnosing constraint set")
			return nil, s.diagnose(), nil
		default:
			return nil, nil, fmt.Errorf("%w: %s", ErrSolver, res.Status)
		}
	}

	return s.extract(m, last), nil, nil
}

// freeze pins objective i at its achieved value v. Zero tolerance freezes to
// an equality; a positive tolerance permits tol*|v| degradation against the
// optimizing direction, guarding later solves against numerical noise.
func (s *Scheduler) freeze(m *Model, i int, obj Objective, expr milp.Expr, v float64) {
	name := fmt.Sprintf("freeze_objective_%d", i)
	tol := obj.Tolerance()
	if tol <= 0 {
		m.Prob.AddRow(milp.Row{Name: name, Expr: expr, Kind: milp.RowEQ, Lower: v, Upper: v})
		return
	}
	slack := tol * math.Abs(v)
	if obj.Sense() == milp.Maximize {
		m.Prob.AddRow(milp.Row{Name: name, Expr: expr, Kind: milp.RowGE, Lower: v - slack})
	} else {
		m.Prob.AddRow(milp.Row{Name: name, Expr: expr, Kind: milp.RowLE, Upper: v + slack})
	}
}

// buildModel assembles a fresh model and applies the given constraints in
// order, logging per-constraint clause counts.
func (s *Scheduler) buildModel(constraints []Constraint) (*Model, error) {
	m, err := NewModel(s.courses, s.rooms, s.slots, s.buffer, s.log)
	if err != nil {
		return nil, err
	}
	for _, c := range constraints {
		n, err := c.Apply(m)
		if err != nil {
			return nil, fmt.Errorf("constraint %q: %w", c.Name(), err)
		}
		s.log.Debug("constraint applied", zap.String("constraint", c.Name()), zap.Int("clauses", n))
	}
	return m, nil
}

// extract reads the solved assignment and joins display fields.
func (s *Scheduler) extract(m *Model, res *milp.Result) *model.Schedule {
	sched := &model.Schedule{}
	for i, k := range m.Keys {
		if res.Values[i] < 0.5 {
			continue
		}
		c, r, t := m.Courses[k.Course], m.Rooms[k.Room], m.Slots[k.Slot]
		sched.Rows = append(sched.Rows, model.ScheduleRow{
			Course:     c.ID,
			Room:       r.ID,
			Slot:       t.ID,
			Days:       t.DayCode,
			Start:      model.FormatClock(t.Start),
			End:        model.FormatClock(t.End),
			Instructor: c.Instructor,
		})
	}
	return sched
}
