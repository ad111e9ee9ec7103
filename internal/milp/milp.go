package milp

import (
	"fmt"
	"strings"
)

// Var is a 1-based handle to a binary decision variable.
type Var int

type Op int

const (
	Eq Op = iota
	LtEq
	GtEq
)

func (op Op) String() string {
	switch op {
	case Eq:
		return "="
	case LtEq:
		return "<="
	default:
		return ">="
	}
}

// Term is a single integer-coefficient entry of a linear expression.
type Term struct {
	Var  Var
	Coef int
}

// Constraint is a linear row: sum of Terms, Op, RHS.
type Constraint struct {
	Terms []Term
	Op    Op
	RHS   int
}

// Model is an integer linear program over binary variables with a
// maximized integer objective.
type Model struct {
	vars        int
	Constraints []Constraint
	Objective   []Term
}

func NewModel() *Model {
	return &Model{}
}

// AddBinary declares a new binary variable and returns its handle.
func (m *Model) AddBinary() Var {
	m.vars++
	return Var(m.vars)
}

func (m *Model) NumVars() int {
	return m.vars
}

func (m *Model) Add(c Constraint) {
	m.Constraints = append(m.Constraints, c)
}

func (m *Model) AddObjectiveTerm(v Var, coef int) {
	m.Objective = append(m.Objective, Term{Var: v, Coef: coef})
}

// ToLP renders the model in CPLEX-LP text format, the wire format consumed
// by the exec-based backends.
func (m *Model) ToLP() string {
	var builder strings.Builder

	builder.WriteString("Maximize\n obj:")
	if len(m.Objective) == 0 {
		builder.WriteString(" 0 x1")
	} else {
		writeExpr(&builder, m.Objective)
	}
	builder.WriteString("\nSubject To\n")

	for i, c := range m.Constraints {
		fmt.Fprintf(&builder, " c%d:", i+1)
		writeExpr(&builder, c.Terms)
		fmt.Fprintf(&builder, " %s %d\n", c.Op, c.RHS)
	}

	builder.WriteString("Binary\n")
	for v := 1; v <= m.vars; v++ {
		if v%10 == 1 {
			if v > 1 {
				builder.WriteString("\n")
			}
			builder.WriteString(" ")
		}
		fmt.Fprintf(&builder, "x%d ", v)
	}
	builder.WriteString("\nEnd\n")

	return builder.String()
}

func writeExpr(builder *strings.Builder, terms []Term) {
	first := true
	for _, t := range terms {
		if t.Coef == 0 {
			continue
		}
		coef := t.Coef
		if first {
			if coef < 0 {
				builder.WriteString(" -")
				coef = -coef
			} else {
				builder.WriteString(" ")
			}
			first = false
		} else if coef < 0 {
			builder.WriteString(" - ")
			coef = -coef
		} else {
			builder.WriteString(" + ")
		}
		if coef == 1 {
			fmt.Fprintf(builder, "x%d", t.Var)
		} else {
			fmt.Fprintf(builder, "%d x%d", coef, t.Var)
		}
	}
	if first {
		builder.WriteString(" 0 x1")
	}
}
