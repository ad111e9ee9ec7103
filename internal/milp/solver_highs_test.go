package milp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHighsStatus(t *testing.T) {
	assert.Equal(t, StatusOptimal, parseHighsStatus("Model   status      : Optimal\n"))
	assert.Equal(t, StatusInfeasible, parseHighsStatus("Model   status      : Infeasible\n"))
	assert.Equal(t, StatusUnbounded, parseHighsStatus("Model   status      : Unbounded\n"))
	assert.Equal(t, StatusUnknown, parseHighsStatus("no verdict here\n"))
}

func TestParseHighsSolution(t *testing.T) {
	content := "Model status\n" +
		"Optimal\n" +
		"\n" +
		"# Primal solution values\n" +
		"Feasible\n" +
		"Objective 13\n" +
		"# Columns 3\n" +
		"x1 1\n" +
		"x2 0\n" +
		"x3 1\n" +
		"# Rows 2\n" +
		"c1 1\n" +
		"c2 1\n"

	objective, values, err := parseHighsSolution(content, 3)

	assert.Nil(t, err)
	assert.Equal(t, 13.0, objective)
	assert.Equal(t, []float64{1, 0, 1}, values)
}

func TestParseHighsSolutionRejectsGarbage(t *testing.T) {
	content := "# Columns 1\nnot-a-column 1\n"

	_, _, err := parseHighsSolution(content, 1)

	assert.NotNil(t, err)
}
