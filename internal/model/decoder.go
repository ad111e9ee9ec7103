package model

import (
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
)

const valueTolerance = 1e-6

// decode maps the selected candidates back into a schedule, recomputes the
// objective and re-verifies every invariant against the emitted entries. A
// backend bug surfaces here as a solver failure, never as a subtly invalid
// schedule.
func decode(problem Problem, candidates []candidate, im *ilpModel, values []bool, reported float64) (*Schedule, error) {
	perCourse := make([]int, len(problem.Courses))
	var entries []Entry
	for i, c := range candidates {
		if !values[im.variables[i]-1] {
			continue
		}
		perCourse[c.course]++
		entries = append(entries, Entry{
			CourseID:  problem.Courses[c.course].ID,
			RoomID:    problem.Rooms[c.room].ID,
			StartSlot: c.start,
			EndSlot:   c.end(problem),
		})
	}

	for courseIndex, count := range perCourse {
		if count != 1 {
			return nil, &SolverFailureError{
				Kind:   SolverPostConditionViolated,
				Detail: fmt.Sprintf("course %d selected %d times", problem.Courses[courseIndex].ID, count),
			}
		}
	}

	slices.SortFunc(entries, func(a, b Entry) int { return a.CourseID - b.CourseID })

	if err := verifySchedule(problem, entries); err != nil {
		return nil, err
	}

	score, unmet := scoreSchedule(problem, entries)

	secondary := lo.SumBy(entries, func(e Entry) int { return TotalSlots - e.StartSlot })
	expected := float64(im.scale*score + secondary)
	if math.Abs(reported-expected) > valueTolerance {
		return nil, &SolverFailureError{
			Kind:   SolverPostConditionViolated,
			Detail: fmt.Sprintf("objective mismatch: backend reported %v, selection yields %v", reported, expected),
		}
	}

	return &Schedule{Score: score, Entries: entries, Unmet: unmet}, nil
}

// verifySchedule re-checks the schedule invariants independently of the
// model: one entry per course, capacity, availability, slot bounds and
// (room, slot) / (instructor, slot) exclusivity.
func verifySchedule(problem Problem, entries []Entry) error {
	rooms := lo.KeyBy(problem.Rooms, func(r Room) int { return r.ID })
	courses := lo.KeyBy(problem.Courses, func(c Course) int { return c.ID })
	instructors := lo.KeyBy(problem.Instructors, func(i Instructor) int { return i.ID })

	violated := func(format string, args ...any) error {
		return &SolverFailureError{Kind: SolverPostConditionViolated, Detail: fmt.Sprintf(format, args...)}
	}

	if len(entries) != len(problem.Courses) {
		return violated("%d entries for %d courses", len(entries), len(problem.Courses))
	}

	roomOccupancy := make(map[int][TotalSlots]bool)
	instructorOccupancy := make(map[int][TotalSlots]bool)
	seenCourses := make(map[int]bool)

	for _, entry := range entries {
		course, ok := courses[entry.CourseID]
		if !ok {
			return violated("unknown course %d", entry.CourseID)
		}
		room, ok := rooms[entry.RoomID]
		if !ok {
			return violated("unknown room %d", entry.RoomID)
		}
		if seenCourses[entry.CourseID] {
			return violated("course %d scheduled twice", entry.CourseID)
		}
		seenCourses[entry.CourseID] = true

		if entry.StartSlot < 0 || entry.EndSlot > TotalSlots || entry.EndSlot-entry.StartSlot != course.DurationSlots {
			return violated("course %d occupies [%d, %d)", entry.CourseID, entry.StartSlot, entry.EndSlot)
		}
		if room.Capacity < course.RequiredCapacity {
			return violated("course %d does not fit room %d", entry.CourseID, entry.RoomID)
		}

		instructor := instructors[course.InstructorID]
		for _, slot := range instructor.UnavailableSlots {
			if entry.StartSlot <= slot && slot < entry.EndSlot {
				return violated("course %d overlaps instructor %d unavailability at slot %d", entry.CourseID, instructor.ID, slot)
			}
		}

		roomSlots := roomOccupancy[entry.RoomID]
		instructorSlots := instructorOccupancy[course.InstructorID]
		for slot := entry.StartSlot; slot < entry.EndSlot; slot++ {
			if roomSlots[slot] {
				return violated("room %d double-booked at slot %d", entry.RoomID, slot)
			}
			if instructorSlots[slot] {
				return violated("instructor %d double-booked at slot %d", course.InstructorID, slot)
			}
			roomSlots[slot] = true
			instructorSlots[slot] = true
		}
		roomOccupancy[entry.RoomID] = roomSlots
		instructorOccupancy[course.InstructorID] = instructorSlots
	}

	return nil
}

// scoreSchedule recomputes the objective from the emitted entries and
// collects the soft constraints the optimum could not honor.
func scoreSchedule(problem Problem, entries []Entry) (int, []UnmetSoftConstraint) {
	score := 0
	unmet := []UnmetSoftConstraint{}

	for _, entry := range entries {
		morningEnd := entry.EndSlot
		if morningEnd > MorningSlots {
			morningEnd = MorningSlots
		}
		if morningEnd > entry.StartSlot {
			score += WeightMorning * (morningEnd - entry.StartSlot)
		}
		if entry.StartSlot >= MorningSlots {
			unmet = append(unmet, UnmetSoftConstraint{
				ConstraintType: "Prefer Mornings",
				Description: fmt.Sprintf("Course %d is scheduled at slot %d, entirely outside the morning (slots 0..%d)",
					entry.CourseID, entry.StartSlot, MorningSlots-1),
			})
		}
	}

	courses := lo.KeyBy(problem.Courses, func(c Course) int { return c.ID })
	byInstructor := lo.GroupBy(entries, func(e Entry) int { return courses[e.CourseID].InstructorID })

	for _, instructor := range problem.Instructors {
		taught := byInstructor[instructor.ID]
		slices.SortFunc(taught, func(a, b Entry) int { return a.StartSlot - b.StartSlot })

		for i := 0; i+1 < len(taught); i++ {
			current, next := taught[i], taught[i+1]
			if current.EndSlot != next.StartSlot {
				continue
			}
			score -= WeightBackToBack
			unmet = append(unmet, UnmetSoftConstraint{
				ConstraintType: "Avoid Back-to-Back Classes",
				Description: fmt.Sprintf("Instructor %d has back-to-back classes: course %d ends at slot %d and course %d starts there",
					instructor.ID, current.CourseID, current.EndSlot, next.CourseID),
			})
		}
	}

	return score, unmet
}
