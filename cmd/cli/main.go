package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"courseplan/internal/csvio"
	"courseplan/internal/milp"
	"courseplan/internal/model"
)

var (
	validSolvers = []string{"gophersat", "highs", "cbc"}
	solvers      = map[string]func(time.Duration) milp.Solver{
		"gophersat": milp.NewGophersatSolver,
		"highs":     milp.NewHighsSolver,
		"cbc":       milp.NewCbcSolver,
	}
)

func main() {
	filePtr := flag.String("file", "", "Path to a JSON problem file")
	roomsPtr := flag.String("rooms", "", "Path to a rooms CSV file (used with -courses and -instructors)")
	coursesPtr := flag.String("courses", "", "Path to a courses CSV file")
	instructorsPtr := flag.String("instructors", "", "Path to an instructors CSV file")
	solverPtr := flag.String("solver", "gophersat", "MILP backend to use. Allowed values are: \"gophersat\", \"highs\", \"cbc\", where \"gophersat\" is the default")
	timeoutPtr := flag.Duration("timeout", 30*time.Second, "Wall-clock limit for the backend; 0 disables it")
	outPtr := flag.String("out", "", "Path to the file where the schedule will be written (JSON, or CSV if the path ends in .csv); if empty, it'll be written into the Standard Output")
	flag.Parse()

	solverName := strings.ToLower(*solverPtr)
	newBackend, ok := solvers[solverName]
	if !ok {
		log.Fatalf("%v is not a valid solver; allowed values are: %v", solverName, strings.Join(validSolvers, ", "))
	}

	problem, err := loadProblem(*filePtr, *roomsPtr, *coursesPtr, *instructorsPtr)
	if err != nil {
		log.Fatalf("cannot load problem: %v", err)
	}

	scheduler := model.NewScheduler(newBackend(*timeoutPtr), nil)
	schedule, err := scheduler.Build(problem)

	var infeasible *model.InfeasibleError
	if errors.As(err, &infeasible) {
		fmt.Println(infeasible.Error())
		os.Exit(20)
	} else if err != nil {
		log.Fatalf("an error occurred during schedule construction: %v", err)
	}

	if err := writeSchedule(schedule, *outPtr); err != nil {
		log.Fatalf("cannot write schedule: %v", err)
	}
}

func loadProblem(file, rooms, courses, instructors string) (model.Problem, error) {
	if file != "" {
		return model.InputFromJSON(file)
	}
	if rooms == "" || courses == "" || instructors == "" {
		return model.Problem{}, fmt.Errorf("either -file or all of -rooms, -courses, -instructors must be specified")
	}
	return csvio.LoadProblem(rooms, courses, instructors)
}

func writeSchedule(schedule *model.Schedule, out string) error {
	if strings.HasSuffix(out, ".csv") {
		return csvio.ExportSchedule(schedule, out)
	}

	content, err := json.MarshalIndent(schedule, "", "  ")
	if err != nil {
		return err
	}
	if out == "" {
		fmt.Println(string(content))
		return nil
	}
	return os.WriteFile(out, append(content, '\n'), 0o644)
}
