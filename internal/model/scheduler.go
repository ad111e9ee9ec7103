package model

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"courseplan/internal/milp"
)

// Scheduler turns a problem instance into a conflict-free schedule that
// maximizes the soft-constraint objective, or into a structured failure.
// A Scheduler holds no per-solve state; Build may be called concurrently.
type Scheduler interface {
	Build(problem Problem) (*Schedule, error)
}

func NewScheduler(solver milp.Solver, logger *zap.Logger) Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ilpScheduler{solver: solver, logger: logger}
}

type ilpScheduler struct {
	solver milp.Solver
	logger *zap.Logger
}

func (s *ilpScheduler) Build(problem Problem) (*Schedule, error) {
	if err := validate(problem); err != nil {
		return nil, err
	}

	candidates, err := enumerate(problem)
	if err != nil {
		return nil, err
	}

	im := buildModel(problem, candidates)
	s.logger.Info("model assembled",
		zap.Int("courses", len(problem.Courses)),
		zap.Int("rooms", len(problem.Rooms)),
		zap.Int("candidates", len(candidates)),
		zap.Int("variables", im.model.NumVars()),
		zap.Int("constraints", len(im.model.Constraints)),
	)

	start := time.Now()
	solution, err := s.solver.Solve(im.model)
	if err != nil {
		return nil, &SolverFailureError{Kind: SolverBackendFailure, Detail: err.Error()}
	}

	switch solution.Status {
	case milp.StatusOptimal:
	case milp.StatusInfeasible:
		return nil, &InfeasibleError{Kind: InfeasibleProvenBySolver}
	case milp.StatusUnbounded:
		// Cannot happen with binary variables and a finite objective.
		return nil, &SolverFailureError{Kind: SolverNonOptimalTermination, Detail: "unbounded model"}
	default:
		return nil, &SolverFailureError{Kind: SolverNonOptimalTermination, Detail: solution.Status.String()}
	}

	values, err := binaryValues(solution.Values, im.model.NumVars())
	if err != nil {
		return nil, err
	}

	schedule, err := decode(problem, candidates, im, values, solution.Objective)
	if err != nil {
		return nil, err
	}

	s.logger.Info("schedule built",
		zap.Int("score", schedule.Score),
		zap.Int("unmet_soft_constraints", len(schedule.Unmet)),
		zap.Duration("solve_time", time.Since(start)),
	)
	return schedule, nil
}

// binaryValues rounds the backend's raw values to booleans, rejecting
// anything farther than the tolerance from 0 or 1.
func binaryValues(raw []float64, numVars int) ([]bool, error) {
	if len(raw) < numVars {
		return nil, &SolverFailureError{
			Kind:   SolverBackendFailure,
			Detail: fmt.Sprintf("backend returned %d values for %d variables", len(raw), numVars),
		}
	}
	values := make([]bool, numVars)
	for i, value := range raw[:numVars] {
		rounded := math.Round(value)
		if math.Abs(value-rounded) > valueTolerance || (rounded != 0 && rounded != 1) {
			return nil, &SolverFailureError{
				Kind:   SolverNonBinaryValue,
				Detail: fmt.Sprintf("variable x%d has value %v", i+1, value),
			}
		}
		values[i] = rounded == 1
	}
	return values, nil
}
