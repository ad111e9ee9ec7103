package csvio

import (
	"os"

	"github.com/gocarina/gocsv"

	"courseplan/internal/model"
)

type scheduleRow struct {
	CourseID  int `csv:"course_id"`
	RoomID    int `csv:"room_id"`
	StartSlot int `csv:"start_slot"`
	EndSlot   int `csv:"end_slot"`
}

// ExportSchedule writes the solved schedule to a CSV file, one row per
// entry, in the schedule's course-id order.
func ExportSchedule(schedule *model.Schedule, path string) error {
	rows := make([]scheduleRow, 0, len(schedule.Entries))
	for _, entry := range schedule.Entries {
		rows = append(rows, scheduleRow{
			CourseID:  entry.CourseID,
			RoomID:    entry.RoomID,
			StartSlot: entry.StartSlot,
			EndSlot:   entry.EndSlot,
		})
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return gocsv.MarshalFile(&rows, out)
}
