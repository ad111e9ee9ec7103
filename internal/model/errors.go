package model

import "fmt"

type InvalidInputKind string

const (
	InvalidDuplicateID            InvalidInputKind = "duplicate_id"
	InvalidMissingReference       InvalidInputKind = "missing_reference"
	InvalidOutOfRange             InvalidInputKind = "out_of_range"
	InvalidEmptyCollection        InvalidInputKind = "empty_collection"
	InvalidDurationExceedsHorizon InvalidInputKind = "duration_exceeds_horizon"
)

// InvalidInputError rejects an ill-formed problem instance before any
// variable is created.
type InvalidInputError struct {
	Kind   InvalidInputKind
	Detail string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input (%s): %s", e.Kind, e.Detail)
}

type InfeasibleKind string

const (
	InfeasibleNoCandidates   InfeasibleKind = "course_with_no_candidates"
	InfeasibleProvenBySolver InfeasibleKind = "proven_by_solver"
)

// InfeasibleError reports that no conflict-free schedule exists. CourseID is
// only meaningful for InfeasibleNoCandidates.
type InfeasibleError struct {
	Kind     InfeasibleKind
	CourseID int
}

func (e *InfeasibleError) Error() string {
	if e.Kind == InfeasibleNoCandidates {
		return fmt.Sprintf("infeasible: course %d has no candidate assignments", e.CourseID)
	}
	return "infeasible: proven by solver"
}

type SolverFailureKind string

const (
	SolverNonOptimalTermination SolverFailureKind = "non_optimal_termination"
	SolverNonBinaryValue        SolverFailureKind = "non_binary_value"
	SolverPostConditionViolated SolverFailureKind = "post_condition_violated"
	SolverBackendFailure        SolverFailureKind = "backend_failure"
)

// SolverFailureError reports a backend defect or an unusable termination
// status. It is never returned for plain infeasibility.
type SolverFailureError struct {
	Kind   SolverFailureKind
	Detail string
}

func (e *SolverFailureError) Error() string {
	return fmt.Sprintf("solver error (%s): %s", e.Kind, e.Detail)
}
