package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satisfaculty/satisfaculty/pkg/model"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRooms(t *testing.T) {
	path := writeCSV(t, "rooms.csv",
		"Room,Capacity,Room Type\n"+
			"ECCR 105,72,Lecture\n"+
			"ECEE 283,24,Lab\n")

	rooms, err := LoadRooms(path)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, model.Room{ID: "ECCR 105", Capacity: 72, RoomType: "Lecture"}, rooms[0])
}

func TestLoadRoomsDuplicate(t *testing.T) {
	path := writeCSV(t, "rooms.csv",
		"Room,Capacity\n"+
			"ECCR 105,72\n"+
			"ECCR 105,40\n")

	_, err := LoadRooms(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "duplicate room")
}

func TestLoadRoomsMissingFile(t *testing.T) {
	_, err := LoadRooms(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestLoadCourses(t *testing.T) {
	path := writeCSV(t, "courses.csv",
		"Course,Instructor,Enrollment,Slot Type,Room Type,Force Room,Force Time Slot\n"+
			"ASEN 3501-010,smith,24,Lab,Lab,,\n"+
			"MATH 2400,jones,80,Lecture,Lecture,ECCR 105,MWF-0900\n")

	courses, err := LoadCourses(path)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "ASEN 3501-010", courses[0].ID)
	assert.Empty(t, courses[0].ForceRoom)
	assert.Equal(t, "ECCR 105", courses[1].ForceRoom)
	assert.Equal(t, "MWF-0900", courses[1].ForceTimeSlot)
}

func TestLoadCoursesValidation(t *testing.T) {
	// Missing instructor fails field validation with the row number.
	path := writeCSV(t, "courses.csv",
		"Course,Instructor,Enrollment\n"+
			"MATH 2400,,80\n")

	_, err := LoadCourses(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestLoadTimeSlots(t *testing.T) {
	path := writeCSV(t, "slots.csv",
		"Slot,Days,Start,End,Slot Type\n"+
			"MWF-0900,MWF,9:00,9:50,Lecture\n"+
			"TTH-0930,TTH,9:30,10:45,Lecture\n")

	slots, err := LoadTimeSlots(path)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, []model.Day{model.Monday, model.Wednesday, model.Friday}, slots[0].Days)
	assert.Equal(t, 540, slots[0].Start)
	assert.Equal(t, 590, slots[0].End)
	assert.Equal(t, []model.Day{model.Tuesday, model.Thursday}, slots[1].Days)
}

func TestLoadTimeSlotsBadClock(t *testing.T) {
	path := writeCSV(t, "slots.csv",
		"Slot,Days,Start,End\n"+
			"MWF-0900,MWF,9:00,9:50\n"+
			"BAD,M,noon,1:00\n")

	_, err := LoadTimeSlots(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestLoadTimeSlotsDuplicate(t *testing.T) {
	path := writeCSV(t, "slots.csv",
		"Slot,Days,Start,End\n"+
			"MWF-0900,MWF,9:00,9:50\n"+
			"MWF-0900,MWF,10:00,10:50\n")

	_, err := LoadTimeSlots(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate time slot")
}

func TestExportScheduleRoundTrip(t *testing.T) {
	sched := &model.Schedule{Rows: []model.ScheduleRow{
		{Course: "MATH 2400", Room: "ECCR 105", Slot: "MWF-0900",
			Days: "MWF", Start: "09:00", End: "09:50", Instructor: "jones"},
	}}
	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, ExportSchedule(sched, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Course,Room,Time Slot,Days,Start,End,Instructor")
	assert.Contains(t, string(raw), "MATH 2400,ECCR 105,MWF-0900,MWF,09:00,09:50,jones")
}

func TestScheduleString(t *testing.T) {
	sched := &model.Schedule{Rows: []model.ScheduleRow{
		{Course: "A", Room: "R1", Slot: "S1", Days: "M", Start: "09:00", End: "09:50", Instructor: "smith"},
	}}
	out, err := ScheduleString(sched)
	require.NoError(t, err)
	assert.Contains(t, out, "A,R1,S1,M,09:00,09:50,smith")
}
