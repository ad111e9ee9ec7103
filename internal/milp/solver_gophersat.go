package milp

import (
	"time"

	"github.com/crillab/gophersat/solver"
)

type gophersatSolver struct {
	timeout time.Duration
}

// NewGophersatSolver returns the in-process backend. Every row of a binary
// integer model is a pseudo-Boolean constraint, so the model maps onto
// gophersat's PB optimizer without leaving the process.
func NewGophersatSolver(timeout time.Duration) Solver {
	return &gophersatSolver{timeout: timeout}
}

func (gs *gophersatSolver) Solve(m *Model) (Solution, error) {
	constrs := make([]solver.PBConstr, 0, 2*len(m.Constraints))
	for _, c := range m.Constraints {
		switch c.Op {
		case GtEq:
			constrs = append(constrs, pbAtLeast(c.Terms, c.RHS))
		case LtEq:
			constrs = append(constrs, pbAtLeast(negated(c.Terms), -c.RHS))
		case Eq:
			constrs = append(constrs, pbAtLeast(c.Terms, c.RHS))
			constrs = append(constrs, pbAtLeast(negated(c.Terms), -c.RHS))
		}
	}
	problem := solver.ParsePBConstrs(constrs)

	// Maximization becomes cost minimization: a positive objective term
	// costs its coefficient when the variable is off, a negative one costs
	// the absolute coefficient when the variable is on.
	var lits []solver.Lit
	var costs []int
	for _, t := range m.Objective {
		switch {
		case t.Coef > 0:
			lits = append(lits, solver.IntToLit(int32(-t.Var)))
			costs = append(costs, t.Coef)
		case t.Coef < 0:
			lits = append(lits, solver.IntToLit(int32(t.Var)))
			costs = append(costs, -t.Coef)
		}
	}
	problem.SetCostFunc(lits, costs)

	s := solver.New(problem)
	var stop chan struct{}
	if gs.timeout > 0 {
		stop = make(chan struct{})
		timer := time.AfterFunc(gs.timeout, func() { close(stop) })
		defer timer.Stop()
	}
	result := s.Optimal(nil, stop)

	switch result.Status {
	case solver.Unsat:
		return Solution{Status: StatusInfeasible}, nil
	case solver.Sat:
	default:
		return Solution{Status: StatusUnknown}, nil
	}

	values := make([]float64, m.NumVars())
	for key, assigned := range result.Model {
		if !assigned {
			continue
		}
		v := key + 1
		if v >= 1 && v <= m.NumVars() {
			values[v-1] = 1
		}
	}

	objective := 0.0
	for _, t := range m.Objective {
		objective += float64(t.Coef) * values[t.Var-1]
	}

	return Solution{Status: StatusOptimal, Objective: objective, Values: values}, nil
}

// pbAtLeast normalizes sum(terms) >= rhs into a PB constraint with positive
// weights: a negative term w*x is rewritten as w + (-w)*(1-x).
func pbAtLeast(terms []Term, rhs int) solver.PBConstr {
	lits := make([]int, 0, len(terms))
	weights := make([]int, 0, len(terms))
	atLeast := rhs
	for _, t := range terms {
		if t.Coef == 0 {
			continue
		}
		if t.Coef > 0 {
			lits = append(lits, int(t.Var))
			weights = append(weights, t.Coef)
		} else {
			lits = append(lits, -int(t.Var))
			weights = append(weights, -t.Coef)
			atLeast -= t.Coef
		}
	}
	return solver.GtEq(lits, weights, atLeast)
}

func negated(terms []Term) []Term {
	result := make([]Term, len(terms))
	for i, t := range terms {
		result[i] = Term{Var: t.Var, Coef: -t.Coef}
	}
	return result
}
