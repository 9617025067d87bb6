package timetable

import (
	"go.uber.org/zap"

	"github.com/satisfaculty/satisfaculty/internal/milp"
)

// Diagnosis names the constraints whose simultaneous presence makes the
// base model unsatisfiable. It is the expected result channel for
// infeasibility, so operators can fix input data instead of unpicking a
// solver trace.
type Diagnosis struct {
	Constraints []string
}

// diagnose runs a deletion filter over the constraint set: drop one
// constraint at a time and rebuild the base model; if the model stays
// infeasible without it, the constraint is not part of the conflict and is
// discarded for good. What survives is a minimal set of mutually
// unsatisfiable constraints.
func (s *Scheduler) diagnose() *Diagnosis {
	core := append([]Constraint(nil), s.constraints...)
	for i := 0; i < len(core); {
		trial := make([]Constraint, 0, len(core)-1)
		trial = append(trial, core[:i]...)
		trial = append(trial, core[i+1:]...)
		feasible, err := s.feasible(trial)
		if err != nil {
			// Keep the constraint when in doubt; a too-large report beats
			// a wrong one.
			s.log.Warn("diagnosis solve failed", zap.String("constraint", core[i].Name()), zap.Error(err))
			i++
			continue
		}
		if feasible {
			i++
		} else {
			core = trial
		}
	}

	d := &Diagnosis{Constraints: make([]string, 0, len(core))}
	for _, c := range core {
		d.Constraints = append(d.Constraints, c.Name())
	}
	s.log.Warn("violated constraints", zap.Strings("constraints", d.Constraints))
	return d
}

// feasible rebuilds the base model under a constraint subset and checks for
// any satisfying assignment.
func (s *Scheduler) feasible(constraints []Constraint) (bool, error) {
	m, err := s.buildModel(constraints)
	if err != nil {
		return false, err
	}
	res, err := s.solver.Solve(m.Prob, milp.Expr{}, milp.Minimize)
	if err != nil {
		return false, err
	}
	return res.Status == milp.StatusOptimal || res.Status == milp.StatusFeasible, nil
}
