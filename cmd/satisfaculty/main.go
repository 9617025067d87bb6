package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/satisfaculty/satisfaculty/internal/config"
	"github.com/satisfaculty/satisfaculty/internal/csvio"
	"github.com/satisfaculty/satisfaculty/internal/timetable"
	"github.com/satisfaculty/satisfaculty/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("scheduling failed", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	start := time.Now()

	rooms, err := csvio.LoadRooms(cfg.RoomsFile)
	if err != nil {
		return err
	}
	courses, err := csvio.LoadCourses(cfg.CoursesFile)
	if err != nil {
		return err
	}
	slots, err := csvio.LoadTimeSlots(cfg.TimeSlotsFile)
	if err != nil {
		return err
	}
	if err := timetable.ValidateReferences(courses, rooms, slots); err != nil {
		return err
	}
	log.Info("tables loaded",
		zap.Int("courses", len(courses)),
		zap.Int("rooms", len(rooms)),
		zap.Int("timeSlots", len(slots)))

	s := timetable.New(courses, rooms, slots,
		timetable.WithLogger(log),
		timetable.WithBuffer(cfg.BufferMinutes))
	s.AddConstraints(
		timetable.AssignAllCourses{},
		timetable.NoInstructorOverlap{},
		timetable.NoRoomOverlap{},
		timetable.RoomCapacity{},
		timetable.ForceRooms{},
		timetable.ForceTimeSlots{},
	)

	objectives := []timetable.Objective{
		timetable.ClassesBefore{Clock: "09:00"},
		timetable.MinutesAfter{Clock: "15:00", Tol: 0.01},
		timetable.LabRootDayPairs{SlotTypes: []string{"Lab"}, Patterns: []string{"MW", "TTH"}},
	}

	schedule, diagnosis, err := s.Optimize(objectives)
	if err != nil {
		return err
	}
	if diagnosis != nil {
		log.Error("no feasible schedule exists")
		for _, name := range diagnosis.Constraints {
			log.Error("conflicting constraint", zap.String("constraint", name))
		}
		os.Exit(2)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.ExportFile), 0o755); err != nil {
		return err
	}
	if err := csvio.ExportSchedule(schedule, cfg.ExportFile); err != nil {
		return err
	}
	csvio.PrintSchedule(schedule)

	log.Info("schedule written",
		zap.String("file", cfg.ExportFile),
		zap.Int("assignments", len(schedule.Rows)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
