package model

import (
	"fmt"

	"github.com/samber/lo"
)

// validate checks the shape of a problem instance. Semantic feasibility is a
// solver outcome, not a validation error.
func validate(problem Problem) error {
	if len(problem.Rooms) == 0 {
		return &InvalidInputError{Kind: InvalidEmptyCollection, Detail: "rooms"}
	}
	if len(problem.Courses) == 0 {
		return &InvalidInputError{Kind: InvalidEmptyCollection, Detail: "courses"}
	}

	seenRooms := make(map[int]bool, len(problem.Rooms))
	for _, room := range problem.Rooms {
		if seenRooms[room.ID] {
			return &InvalidInputError{Kind: InvalidDuplicateID, Detail: fmt.Sprintf("room %d", room.ID)}
		}
		seenRooms[room.ID] = true

		if room.Capacity < 1 {
			return &InvalidInputError{Kind: InvalidOutOfRange, Detail: fmt.Sprintf("room %d: capacity", room.ID)}
		}
	}

	seenInstructors := make(map[int]bool, len(problem.Instructors))
	for _, instructor := range problem.Instructors {
		if seenInstructors[instructor.ID] {
			return &InvalidInputError{Kind: InvalidDuplicateID, Detail: fmt.Sprintf("instructor %d", instructor.ID)}
		}
		seenInstructors[instructor.ID] = true

		if lo.SomeBy(instructor.UnavailableSlots, func(slot int) bool { return slot < 0 || slot >= TotalSlots }) {
			return &InvalidInputError{Kind: InvalidOutOfRange, Detail: fmt.Sprintf("instructor %d: unavailable_slots", instructor.ID)}
		}
	}

	seenCourses := make(map[int]bool, len(problem.Courses))
	for _, course := range problem.Courses {
		if seenCourses[course.ID] {
			return &InvalidInputError{Kind: InvalidDuplicateID, Detail: fmt.Sprintf("course %d", course.ID)}
		}
		seenCourses[course.ID] = true

		if course.RequiredCapacity < 1 {
			return &InvalidInputError{Kind: InvalidOutOfRange, Detail: fmt.Sprintf("course %d: required_capacity", course.ID)}
		}
		if course.DurationSlots < 1 {
			return &InvalidInputError{Kind: InvalidOutOfRange, Detail: fmt.Sprintf("course %d: duration_slots", course.ID)}
		}
		if course.DurationSlots > TotalSlots {
			return &InvalidInputError{Kind: InvalidDurationExceedsHorizon, Detail: fmt.Sprintf("course %d", course.ID)}
		}
		if !seenInstructors[course.InstructorID] {
			return &InvalidInputError{Kind: InvalidMissingReference, Detail: fmt.Sprintf("course %d: instructor %d", course.ID, course.InstructorID)}
		}
	}

	return nil
}
