package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func selectCandidates(im *ilpModel, indices ...int) []bool {
	values := make([]bool, im.model.NumVars())
	for _, i := range indices {
		values[im.variables[i]-1] = true
	}
	return values
}

func TestDecodeProducesSortedEntries(t *testing.T) {
	// Arrange: pick course 2 at start 0 and course 1 at start 3.
	problem := twoCourseProblem()
	candidates, err := enumerate(problem)
	assert.Nil(t, err)
	im := buildModel(problem, candidates)

	var course1At3, course2At0 int
	for i, c := range candidates {
		if c.course == 0 && c.start == 3 {
			course1At3 = i
		}
		if c.course == 1 && c.start == 0 {
			course2At0 = i
		}
	}
	values := selectCandidates(im, course1At3, course2At0)
	reported := float64(im.scale*4 + (TotalSlots - 3) + (TotalSlots - 0))

	// Act
	schedule, err := decode(problem, candidates, im, values, reported)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, []Entry{
		{CourseID: 1, RoomID: 1, StartSlot: 3, EndSlot: 5},
		{CourseID: 2, RoomID: 1, StartSlot: 0, EndSlot: 2},
	}, schedule.Entries)
	assert.Equal(t, 4*WeightMorning, schedule.Score)
	assert.Empty(t, schedule.Unmet)
}

func TestDecodeCountsBackToBackPenalty(t *testing.T) {
	problem := twoCourseProblem()
	candidates, err := enumerate(problem)
	assert.Nil(t, err)
	im := buildModel(problem, candidates)

	var course1At0, course2At2 int
	for i, c := range candidates {
		if c.course == 0 && c.start == 0 {
			course1At0 = i
		}
		if c.course == 1 && c.start == 2 {
			course2At2 = i
		}
	}
	values := selectCandidates(im, course1At0, course2At2)
	for _, pair := range im.pairs {
		if (pair.first == course1At0 && pair.second == course2At2) ||
			(pair.first == course2At2 && pair.second == course1At0) {
			values[pair.variable-1] = true
		}
	}
	reported := float64(im.scale*(4-1) + (TotalSlots - 0) + (TotalSlots - 2))

	schedule, err := decode(problem, candidates, im, values, reported)

	assert.Nil(t, err)
	assert.Equal(t, 4*WeightMorning-WeightBackToBack, schedule.Score)
	assert.Len(t, schedule.Unmet, 1)
	assert.Equal(t, "Avoid Back-to-Back Classes", schedule.Unmet[0].ConstraintType)
}

func TestDecodeRejectsDoubleSelection(t *testing.T) {
	problem := twoCourseProblem()
	candidates, err := enumerate(problem)
	assert.Nil(t, err)
	im := buildModel(problem, candidates)

	// Two candidates of course 1 and none of course 2.
	values := selectCandidates(im, 0, 3)

	schedule, decodeErr := decode(problem, candidates, im, values, 0)

	assert.Nil(t, schedule)
	var failure *SolverFailureError
	assert.ErrorAs(t, decodeErr, &failure)
	assert.Equal(t, SolverPostConditionViolated, failure.Kind)
}

func TestDecodeRejectsObjectiveMismatch(t *testing.T) {
	problem := twoCourseProblem()
	candidates, err := enumerate(problem)
	assert.Nil(t, err)
	im := buildModel(problem, candidates)

	var course1At0, course2At3 int
	for i, c := range candidates {
		if c.course == 0 && c.start == 0 {
			course1At0 = i
		}
		if c.course == 1 && c.start == 3 {
			course2At3 = i
		}
	}
	values := selectCandidates(im, course1At0, course2At3)

	schedule, decodeErr := decode(problem, candidates, im, values, 1.0)

	assert.Nil(t, schedule)
	var failure *SolverFailureError
	assert.ErrorAs(t, decodeErr, &failure)
	assert.Equal(t, SolverPostConditionViolated, failure.Kind)
	assert.Contains(t, failure.Detail, "objective mismatch")
}

func TestBinaryValuesTolerance(t *testing.T) {
	values, err := binaryValues([]float64{0.9999999, 0.0000003, 1.0}, 3)
	assert.Nil(t, err)
	assert.Equal(t, []bool{true, false, true}, values)

	_, err = binaryValues([]float64{0.4}, 1)
	var failure *SolverFailureError
	assert.ErrorAs(t, err, &failure)
	assert.Equal(t, SolverNonBinaryValue, failure.Kind)

	_, err = binaryValues([]float64{2.0}, 1)
	assert.ErrorAs(t, err, &failure)
	assert.Equal(t, SolverNonBinaryValue, failure.Kind)

	_, err = binaryValues(nil, 1)
	assert.ErrorAs(t, err, &failure)
	assert.Equal(t, SolverBackendFailure, failure.Kind)
}
