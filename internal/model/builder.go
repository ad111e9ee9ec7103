package model

import (
	"courseplan/internal/milp"
)

// pairVariable is the auxiliary binary linearizing the product of two
// back-to-back candidates of the same instructor.
type pairVariable struct {
	variable milp.Var
	first    int
	second   int
}

// ilpModel couples the assembled linear program with the maps needed to
// decode a solution back into candidate triples.
type ilpModel struct {
	model     *milp.Model
	variables []milp.Var
	pairs     []pairVariable
	scale     int
}

// buildModel creates one binary variable per candidate, emits the hard
// constraint rows and assembles the objective. Exclusivity rows that would
// bind a single variable or none are omitted; every course always gets its
// assignment row.
//
// The objective is scaled: primary terms (morning preference, back-to-back
// penalty) are multiplied by scale = |courses|*T + 1 and an earliest-start
// term in [1, T] per selected candidate is added. The secondary total over
// any schedule stays below scale, so it only breaks ties in the primary
// objective.
func buildModel(problem Problem, candidates []candidate) *ilpModel {
	m := milp.NewModel()
	im := &ilpModel{
		model:     m,
		variables: make([]milp.Var, len(candidates)),
		scale:     len(problem.Courses)*TotalSlots + 1,
	}

	for i := range candidates {
		im.variables[i] = m.AddBinary()
	}

	// Assignment: each course is scheduled exactly once.
	byCourse := make([][]int, len(problem.Courses))
	for i, c := range candidates {
		byCourse[c.course] = append(byCourse[c.course], i)
	}
	for _, indices := range byCourse {
		m.Add(milp.Constraint{Terms: im.terms(indices), Op: milp.Eq, RHS: 1})
	}

	// Room exclusivity: at most one occupant per (room, slot).
	for roomIndex := range problem.Rooms {
		for slot := 0; slot < TotalSlots; slot++ {
			var indices []int
			for i, c := range candidates {
				if c.room == roomIndex && c.start <= slot && slot < c.end(problem) {
					indices = append(indices, i)
				}
			}
			if len(indices) > 1 {
				m.Add(milp.Constraint{Terms: im.terms(indices), Op: milp.LtEq, RHS: 1})
			}
		}
	}

	// Instructor exclusivity: at most one course per (instructor, slot).
	for _, instructor := range problem.Instructors {
		for slot := 0; slot < TotalSlots; slot++ {
			var indices []int
			for i, c := range candidates {
				if problem.Courses[c.course].InstructorID == instructor.ID && c.start <= slot && slot < c.end(problem) {
					indices = append(indices, i)
				}
			}
			if len(indices) > 1 {
				m.Add(milp.Constraint{Terms: im.terms(indices), Op: milp.LtEq, RHS: 1})
			}
		}
	}

	// Back-to-back linearization: y >= x1 + x2 - 1, y <= x1, y <= x2.
	// Pairs of the same course are skipped; the assignment row already
	// forbids their joint selection.
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			c1, c2 := candidates[i], candidates[j]
			if c1.course == c2.course {
				continue
			}
			if problem.Courses[c1.course].InstructorID != problem.Courses[c2.course].InstructorID {
				continue
			}
			if c1.end(problem) != c2.start && c2.end(problem) != c1.start {
				continue
			}

			y := m.AddBinary()
			x1, x2 := im.variables[i], im.variables[j]
			m.Add(milp.Constraint{
				Terms: []milp.Term{{Var: x1, Coef: 1}, {Var: x2, Coef: 1}, {Var: y, Coef: -1}},
				Op:    milp.LtEq,
				RHS:   1,
			})
			m.Add(milp.Constraint{
				Terms: []milp.Term{{Var: y, Coef: 1}, {Var: x1, Coef: -1}},
				Op:    milp.LtEq,
				RHS:   0,
			})
			m.Add(milp.Constraint{
				Terms: []milp.Term{{Var: y, Coef: 1}, {Var: x2, Coef: -1}},
				Op:    milp.LtEq,
				RHS:   0,
			})
			im.pairs = append(im.pairs, pairVariable{variable: y, first: i, second: j})
		}
	}

	for i, c := range candidates {
		coef := im.scale*WeightMorning*c.morningOverlap(problem) + (TotalSlots - c.start)
		m.AddObjectiveTerm(im.variables[i], coef)
	}
	for _, pair := range im.pairs {
		m.AddObjectiveTerm(pair.variable, -im.scale*WeightBackToBack)
	}

	return im
}

func (im *ilpModel) terms(indices []int) []milp.Term {
	terms := make([]milp.Term, len(indices))
	for i, index := range indices {
		terms[i] = milp.Term{Var: im.variables[index], Coef: 1}
	}
	return terms
}
