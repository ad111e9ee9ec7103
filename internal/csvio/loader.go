package csvio

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"courseplan/internal/model"
)

type roomRecord struct {
	ID       int `csv:"id"`
	Capacity int `csv:"capacity"`
}

type courseRecord struct {
	ID               int `csv:"id"`
	InstructorID     int `csv:"instructor_id"`
	DurationSlots    int `csv:"duration_slots"`
	RequiredCapacity int `csv:"required_capacity"`
}

type instructorRecord struct {
	ID               int    `csv:"id"`
	UnavailableSlots string `csv:"unavailable_slots"` // space-separated slot indices
}

// LoadProblem reads a problem instance from three CSV files.
func LoadProblem(roomsPath, coursesPath, instructorsPath string) (model.Problem, error) {
	var problem model.Problem

	var rooms []roomRecord
	if err := unmarshalFile(roomsPath, &rooms); err != nil {
		return problem, err
	}
	for _, r := range rooms {
		problem.Rooms = append(problem.Rooms, model.Room{ID: r.ID, Capacity: r.Capacity})
	}

	var courses []courseRecord
	if err := unmarshalFile(coursesPath, &courses); err != nil {
		return problem, err
	}
	for _, c := range courses {
		problem.Courses = append(problem.Courses, model.Course{
			ID:               c.ID,
			InstructorID:     c.InstructorID,
			DurationSlots:    c.DurationSlots,
			RequiredCapacity: c.RequiredCapacity,
		})
	}

	var instructors []instructorRecord
	if err := unmarshalFile(instructorsPath, &instructors); err != nil {
		return problem, err
	}
	for _, record := range instructors {
		slots, err := parseSlots(record.UnavailableSlots)
		if err != nil {
			return problem, fmt.Errorf("instructor %d: %v", record.ID, err)
		}
		problem.Instructors = append(problem.Instructors, model.Instructor{ID: record.ID, UnavailableSlots: slots})
	}

	return problem, nil
}

func unmarshalFile(path string, out any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %v", path, err)
	}
	defer file.Close()

	if err := gocsv.UnmarshalFile(file, out); err != nil {
		return fmt.Errorf("cannot parse %s: %v", path, err)
	}
	return nil
}

func parseSlots(raw string) ([]int, error) {
	slots := []int{}
	for _, field := range strings.Fields(raw) {
		slot, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid slot %q", field)
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
