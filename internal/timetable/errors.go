package timetable

import "errors"

var (
	// ErrDuplicateID marks a duplicate identifier in an entity table.
	ErrDuplicateID = errors.New("duplicate identifier")

	// ErrFrozenInfeasible marks a model that became infeasible after an
	// earlier objective's value was frozen. This should not occur under
	// monotone constraint addition and is fatal for the optimize run.
	ErrFrozenInfeasible = errors.New("model infeasible after freezing objective")

	// ErrSolver marks an abnormal solver termination such as an unbounded
	// model. All columns are bounded binaries, so this indicates a bug.
	ErrSolver = errors.New("solver terminated abnormally")

	// ErrUnknownRoom and ErrUnknownSlot mark forcing annotations that
	// reference an identifier missing from the tables. Strict loaders fail
	// on them; the forcing constraints themselves skip with a warning.
	ErrUnknownRoom = errors.New("unknown room")
	ErrUnknownSlot = errors.New("unknown time slot")
)
