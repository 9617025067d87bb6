package milp

import (
	"fmt"

	"github.com/lukpank/go-glpk/glpk"
)

// GLPK solves problems with the GNU Linear Programming Kit. Each call builds
// a fresh glpk problem from the shared model, runs the simplex relaxation and
// then branch-and-bound, and maps the termination state onto Status.
type GLPK struct {
	// Verbose forwards solver chatter to stdout; off by default.
	Verbose bool
}

// NewGLPK returns a quiet GLPK-backed solver.
func NewGLPK() *GLPK {
	return &GLPK{}
}

// Solve implements Solver.
func (g *GLPK) Solve(p *Problem, obj Expr, sense Sense) (*Result, error) {
	lp := glpk.New()
	defer lp.Delete()
	lp.SetProbName(p.Name)

	if sense == Maximize {
		lp.SetObjDir(glpk.ObjDir(glpk.MAX))
	} else {
		lp.SetObjDir(glpk.ObjDir(glpk.MIN))
	}

	if n := p.NumCols(); n > 0 {
		lp.AddCols(n)
	}
	for i, c := range p.cols {
		j := i + 1
		lp.SetColName(j, c.Name)
		lp.SetColKind(j, glpk.VarType(glpk.BV))
		// BV resets bounds to [0,1]; re-fix columns pruned by bound
		// tightening.
		if c.Lower == c.Upper {
			lp.SetColBnds(j, glpk.BndsType(glpk.FX), c.Lower, c.Upper)
		} else if c.Lower != 0 || c.Upper != 1 {
			lp.SetColBnds(j, glpk.BndsType(glpk.DB), c.Lower, c.Upper)
		}
	}

	if n := p.NumRows(); n > 0 {
		lp.AddRows(n)
	}
	for i, r := range p.rows {
		if err := p.checkRow(r); err != nil {
			return nil, err
		}
		ri := i + 1
		lp.SetRowName(ri, r.Name)
		switch r.Kind {
		case RowLE:
			lp.SetRowBnds(ri, glpk.BndsType(glpk.UP), 0, r.Upper)
		case RowGE:
			lp.SetRowBnds(ri, glpk.BndsType(glpk.LO), r.Lower, 0)
		case RowEQ:
			lp.SetRowBnds(ri, glpk.BndsType(glpk.FX), r.Lower, r.Lower)
		case RowRange:
			lp.SetRowBnds(ri, glpk.BndsType(glpk.DB), r.Lower, r.Upper)
		}
		ind := make([]int32, len(r.Expr.Terms))
		val := make([]float64, len(r.Expr.Terms))
		for k, t := range r.Expr.Terms {
			ind[k] = int32(t.Col + 1)
			val[k] = t.Coef
		}
		lp.SetMatRow(ri, ind, val)
	}

	lp.SetObjCoef(0, obj.Const)
	for col, coef := range objCoefs(obj) {
		lp.SetObjCoef(col+1, coef)
	}

	msgLev := glpk.MSG_ERR
	if g.Verbose {
		msgLev = glpk.MSG_ON
	}

	smcp := glpk.NewSmcp()
	smcp.SetMsgLev(glpk.MsgLev(msgLev))
	if err := lp.Simplex(smcp); err != nil {
		return nil, fmt.Errorf("glpk simplex: %w", err)
	}
	switch lp.Status() {
	case glpk.NOFEAS, glpk.INFEAS:
		return &Result{Status: StatusInfeasible}, nil
	case glpk.UNBND:
		return &Result{Status: StatusUnbounded}, nil
	}

	iocp := glpk.NewIocp()
	iocp.SetMsgLev(glpk.MsgLev(msgLev))
	if err := lp.Intopt(iocp); err != nil {
		return nil, fmt.Errorf("glpk intopt: %w", err)
	}

	switch st := lp.MipStatus(); st {
	case glpk.OPT, glpk.FEAS:
		res := &Result{
			Status:    StatusOptimal,
			Objective: lp.MipObjVal(),
			Values:    make([]float64, p.NumCols()),
		}
		if st == glpk.FEAS {
			res.Status = StatusFeasible
		}
		for j := range res.Values {
			res.Values[j] = lp.MipColVal(j + 1)
		}
		return res, nil
	case glpk.NOFEAS:
		return &Result{Status: StatusInfeasible}, nil
	default:
		return &Result{Status: StatusUndefined}, nil
	}
}
