package model

// candidate is one (course, room, start-slot) triple that survived the
// static pre-filters. Fields are indices into the problem's collections, not
// ids; enumeration order fixes the decision-variable order.
type candidate struct {
	course int
	room   int
	start  int
}

func (c candidate) end(problem Problem) int {
	return c.start + problem.Courses[c.course].DurationSlots
}

// morningOverlap counts the occupied slots falling in the first half of the
// horizon.
func (c candidate) morningOverlap(problem Problem) int {
	end := c.end(problem)
	if end > MorningSlots {
		end = MorningSlots
	}
	if end <= c.start {
		return 0
	}
	return end - c.start
}

// enumerate lists candidates course by course (input order), room by room
// (input order), start slot ascending. The pre-filter on capacity, horizon
// and availability keeps the variable count tractable and doubles as the
// structural encoding of those two hard constraints.
func enumerate(problem Problem) ([]candidate, error) {
	unavailable := make(map[int][TotalSlots]bool, len(problem.Instructors))
	for _, instructor := range problem.Instructors {
		var mask [TotalSlots]bool
		for _, slot := range instructor.UnavailableSlots {
			mask[slot] = true
		}
		unavailable[instructor.ID] = mask
	}

	var candidates []candidate
	for courseIndex, course := range problem.Courses {
		mask := unavailable[course.InstructorID]
		found := false

		for roomIndex, room := range problem.Rooms {
			if room.Capacity < course.RequiredCapacity {
				continue
			}
			for start := 0; start+course.DurationSlots <= TotalSlots; start++ {
				if conflicts(mask, start, course.DurationSlots) {
					continue
				}
				candidates = append(candidates, candidate{course: courseIndex, room: roomIndex, start: start})
				found = true
			}
		}

		if !found {
			return nil, &InfeasibleError{Kind: InfeasibleNoCandidates, CourseID: course.ID}
		}
	}

	return candidates, nil
}

func conflicts(unavailable [TotalSlots]bool, start, duration int) bool {
	for slot := start; slot < start+duration; slot++ {
		if unavailable[slot] {
			return true
		}
	}
	return false
}
