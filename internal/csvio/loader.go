// Package csvio loads the entity tables from CSV files and exports solved
// schedules. All schema checks happen here, once, so the engine only ever
// sees validated typed records.
package csvio

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"

	"github.com/satisfaculty/satisfaculty/pkg/model"
)

var validate = validator.New()

// LoadRooms reads and validates the rooms table. Duplicate room identifiers
// are a load-time error.
func LoadRooms(path string) ([]model.Room, error) {
	var rooms []model.Room
	if err := unmarshalFile(path, &rooms); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(rooms))
	for i, r := range rooms {
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("%s row %d: duplicate room %s", path, i+2, r.ID)
		}
		seen[r.ID] = true
	}
	return rooms, nil
}

// LoadCourses reads and validates the courses table, including the optional
// forcing annotation columns.
func LoadCourses(path string) ([]model.Course, error) {
	var courses []model.Course
	if err := unmarshalFile(path, &courses); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(courses))
	for i, c := range courses {
		if err := validate.Struct(c); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("%s row %d: duplicate course %s", path, i+2, c.ID)
		}
		seen[c.ID] = true
	}
	return courses, nil
}

// LoadTimeSlots reads the time-slot table and resolves day codes and clock
// strings into their derived forms.
func LoadTimeSlots(path string) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	if err := unmarshalFile(path, &slots); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(slots))
	for i := range slots {
		if err := validate.Struct(slots[i]); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		if seen[slots[i].ID] {
			return nil, fmt.Errorf("%s row %d: duplicate time slot %s", path, i+2, slots[i].ID)
		}
		seen[slots[i].ID] = true
		if err := slots[i].Resolve(); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
	}
	return slots, nil
}

func unmarshalFile(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.UnmarshalFile(f, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
