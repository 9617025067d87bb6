// Package milp holds the linear-model primitives handed to the external MILP
// solver: binary columns, linear rows and a single objective expression with
// a sense. The solver's own branch-and-bound machinery stays behind the
// Solver interface.
package milp

import "fmt"

// Sense is the optimization direction of an objective.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Term is one column/coefficient pair of a linear expression.
type Term struct {
	Col  int
	Coef float64
}

// Expr is a linear expression over problem columns.
type Expr struct {
	Terms []Term
	Const float64
}

// AddTerm appends a column with the given coefficient.
func (e *Expr) AddTerm(col int, coef float64) {
	e.Terms = append(e.Terms, Term{Col: col, Coef: coef})
}

// Len returns the number of terms.
func (e Expr) Len() int { return len(e.Terms) }

// Eval computes the expression value under a column assignment.
func (e Expr) Eval(values []float64) float64 {
	v := e.Const
	for _, t := range e.Terms {
		v += t.Coef * values[t.Col]
	}
	return v
}

// RowKind selects which bounds of a Row apply.
type RowKind int

const (
	RowLE RowKind = iota // Expr <= Upper
	RowGE                // Expr >= Lower
	RowEQ                // Expr == Lower == Upper
	RowRange             // Lower <= Expr <= Upper
)

// Row is one linear constraint. Names are kept for infeasibility reporting.
type Row struct {
	Name  string
	Expr  Expr
	Kind  RowKind
	Lower float64
	Upper float64
}

// Column is one binary decision variable. Lower/Upper start at 0/1; bound
// tightening may fix a column at zero.
type Column struct {
	Name  string
	Lower float64
	Upper float64
}

// Problem is a mutable set of binary columns and linear rows. It is built in
// place by constraints and frozen-objective rows and is not safe for
// concurrent use.
type Problem struct {
	Name string
	cols []Column
	rows []Row
}

// NewProblem returns an empty problem.
func NewProblem(name string) *Problem {
	return &Problem{Name: name}
}

// AddBinary appends a binary column and returns its index.
func (p *Problem) AddBinary(name string) int {
	p.cols = append(p.cols, Column{Name: name, Lower: 0, Upper: 1})
	return len(p.cols) - 1
}

// SetUpper tightens a column's upper bound.
func (p *Problem) SetUpper(col int, upper float64) {
	p.cols[col].Upper = upper
}

// Col returns a copy of the column at the given index.
func (p *Problem) Col(i int) Column { return p.cols[i] }

// AddRow appends a constraint row. A non-zero expression constant is folded
// into the bounds so rows reach the solver in normal form. A row referencing
// a column the problem does not have is a programming error and panics.
func (p *Problem) AddRow(r Row) {
	if err := p.checkRow(r); err != nil {
		panic(err)
	}
	if r.Expr.Const != 0 {
		r.Lower -= r.Expr.Const
		r.Upper -= r.Expr.Const
		r.Expr.Const = 0
	}
	p.rows = append(p.rows, r)
}

// NumCols returns the number of columns.
func (p *Problem) NumCols() int { return len(p.cols) }

// NumRows returns the number of rows.
func (p *Problem) NumRows() int { return len(p.rows) }

// Rows returns the constraint rows in insertion order.
func (p *Problem) Rows() []Row { return p.rows }

// Status classifies the outcome of one solve.
type Status int

const (
	StatusUndefined Status = iota
	StatusOptimal
	StatusFeasible // integer-feasible but optimality not proven
	StatusInfeasible
	StatusUnbounded
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "undefined"
	}
}

// Result is a solver outcome. Values is indexed by column and only set for
// optimal or feasible results.
type Result struct {
	Status    Status
	Objective float64
	Values    []float64
}

// Solver solves one problem instance for one objective. Implementations
// block until the sub-problem is solved or proven infeasible.
type Solver interface {
	Solve(p *Problem, obj Expr, sense Sense) (*Result, error)
}

// objCoefs folds duplicate columns of an objective into one coefficient per
// column, since solvers overwrite rather than accumulate.
func objCoefs(obj Expr) map[int]float64 {
	coefs := make(map[int]float64, len(obj.Terms))
	for _, t := range obj.Terms {
		coefs[t.Col] += t.Coef
	}
	return coefs
}

// checkRow validates a row against the problem dimensions.
func (p *Problem) checkRow(r Row) error {
	for _, t := range r.Expr.Terms {
		if t.Col < 0 || t.Col >= len(p.cols) {
			return fmt.Errorf("row %s references unknown column %d", r.Name, t.Col)
		}
	}
	return nil
}
