package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satisfaculty/satisfaculty/internal/milp"
	"github.com/satisfaculty/satisfaculty/pkg/model"
)

func TestClassesBeforeEvaluate(t *testing.T) {
	m := mustModel(t,
		[]model.Course{
			{ID: "A", Instructor: "smith"},
			{ID: "B", Instructor: "jones"},
		},
		[]model.Room{{ID: "R1", Capacity: 10}},
		[]model.TimeSlot{
			mustSlot(t, "M-0800", "M", "8:00", "8:50"),
			mustSlot(t, "M-0900", "M", "9:00", "9:50"),
		})

	o := ClassesBefore{Clock: "09:00"}
	assert.Equal(t, milp.Minimize, o.Sense())

	expr, err := o.Evaluate(m)
	require.NoError(t, err)
	// Both courses, early slot only.
	assert.Equal(t, 2, expr.Len())

	restricted := ClassesBefore{Clock: "09:00", Instructor: "smith", Maximize: true}
	assert.Equal(t, milp.Maximize, restricted.Sense())
	expr, err = restricted.Evaluate(m)
	require.NoError(t, err)
	assert.Equal(t, 1, expr.Len())
}

func TestClassesAfterEvaluate(t *testing.T) {
	m := mustModel(t,
		[]model.Course{
			{ID: "A", Instructor: "smith", SlotType: "Lecture"},
			{ID: "B", Instructor: "smith", SlotType: "Lab"},
		},
		[]model.Room{{ID: "R1", Capacity: 10}},
		[]model.TimeSlot{
			mustSlot(t, "M-1500", "M", "15:00", "15:50"),
			mustSlot(t, "M-1600", "M", "16:00", "16:50"),
		})

	// Start must be strictly after the threshold.
	expr, err := ClassesAfter{Clock: "15:00"}.Evaluate(m)
	require.NoError(t, err)
	assert.Equal(t, 2, expr.Len())

	expr, err = ClassesAfter{Clock: "15:00", SlotType: "Lab"}.Evaluate(m)
	require.NoError(t, err)
	assert.Equal(t, 1, expr.Len())
}

func TestMinutesAfterWeighsOverrunTimesDays(t *testing.T) {
	m := mustModel(t,
		[]model.Course{{ID: "A", Instructor: "smith"}},
		[]model.Room{{ID: "R1", Capacity: 10}},
		[]model.TimeSlot{
			mustSlot(t, "MWF-1430", "MWF", "14:30", "15:30"), // 30 past x 3 days = 90
			mustSlot(t, "TTH-1420", "TTH", "14:20", "15:40"), // 40 past x 2 days = 80
			mustSlot(t, "MWF-1400", "MWF", "14:00", "15:00"), // ends at threshold
		})

	o := MinutesAfter{Clock: "15:00"}
	assert.Equal(t, milp.Minimize, o.Sense())

	expr, err := o.Evaluate(m)
	require.NoError(t, err)
	require.Equal(t, 2, expr.Len())

	coefs := map[int]float64{}
	for _, term := range expr.Terms {
		coefs[term.Col] = term.Coef
	}
	assert.Equal(t, 90.0, coefs[m.keyCol(Key{Course: 0, Room: 0, Slot: 0})])
	assert.Equal(t, 80.0, coefs[m.keyCol(Key{Course: 0, Room: 0, Slot: 1})])
}

func TestPreferredRoomsEvaluate(t *testing.T) {
	m := twoByTwoModel(t)

	o := PreferredRooms{Rooms: []string{"R2"}}
	assert.Equal(t, milp.Maximize, o.Sense())
	expr, err := o.Evaluate(m)
	require.NoError(t, err)
	// Both courses, both slots, R2 only.
	assert.Equal(t, 4, expr.Len())

	avoid := PreferredRooms{Rooms: []string{"R2"}, Avoid: true, Instructor: "smith"}
	assert.Equal(t, milp.Minimize, avoid.Sense())
	expr, err = avoid.Evaluate(m)
	require.NoError(t, err)
	assert.Equal(t, 2, expr.Len())
}

func TestLabRootDayPairs(t *testing.T) {
	m := mustModel(t,
		[]model.Course{
			{ID: "ASEN 3501-010", Instructor: "smith", SlotType: "Lab"},
			{ID: "ASEN 3501-011", Instructor: "jones", SlotType: "Lab"},
			{ID: "MATH 2400-010", Instructor: "lee", SlotType: "Lab"}, // singleton root
		},
		[]model.Room{{ID: "R1", Capacity: 10}},
		[]model.TimeSlot{
			mustSlot(t, "MW-0900", "MW", "9:00", "10:15"),
			mustSlot(t, "TTH-0900", "TTH", "9:00", "10:15"),
		})
	baseCols := m.Prob.NumCols()

	o := LabRootDayPairs{SlotTypes: []string{"Lab"}, Patterns: []string{"MW", "TTH"}}
	assert.Equal(t, milp.Maximize, o.Sense())

	expr, err := o.Evaluate(m)
	require.NoError(t, err)
	// One auxiliary per (qualifying root, pattern): the ASEN family only.
	assert.Equal(t, 2, expr.Len())
	assert.Equal(t, baseCols+2, m.Prob.NumCols())
	assert.Equal(t, 2, m.Prob.NumRows())

	link := m.Prob.Rows()[0]
	assert.Equal(t, "pair_root_ASEN_3501_MW", link.Name)
	assert.Equal(t, milp.RowLE, link.Kind)
	// 2*y minus the two family sections on MW in the single room.
	assert.Equal(t, 3, link.Expr.Len())
}

func TestLabRootDayPairsMemoizesAuxiliaries(t *testing.T) {
	m := mustModel(t,
		[]model.Course{
			{ID: "ASEN 3501-010", Instructor: "smith", SlotType: "Lab"},
			{ID: "ASEN 3501-011", Instructor: "jones", SlotType: "Lab"},
		},
		[]model.Room{{ID: "R1", Capacity: 10}},
		[]model.TimeSlot{mustSlot(t, "MW-0900", "MW", "9:00", "10:15")})

	o := LabRootDayPairs{SlotTypes: []string{"Lab"}, Patterns: []string{"MW"}}
	first, err := o.Evaluate(m)
	require.NoError(t, err)
	cols, rows := m.Prob.NumCols(), m.Prob.NumRows()

	second, err := o.Evaluate(m)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, cols, m.Prob.NumCols())
	assert.Equal(t, rows, m.Prob.NumRows())
}

func TestObjectiveNames(t *testing.T) {
	assert.Equal(t, "Minimize classes before 09:00",
		ClassesBefore{Clock: "09:00"}.Name())
	assert.Equal(t, "Maximize classes after 15:00 for smith (Lab)",
		ClassesAfter{Clock: "15:00", Instructor: "smith", SlotType: "Lab", Maximize: true}.Name())
	assert.Equal(t, "Minimize minutes after 15:00",
		MinutesAfter{Clock: "15:00"}.Name())
	assert.Equal(t, "Maximize preferred rooms (R1, R2)",
		PreferredRooms{Rooms: []string{"R1", "R2"}}.Name())
	assert.Equal(t, "Pair lab roots on days (MW, TTH)",
		LabRootDayPairs{Patterns: []string{"MW", "TTH"}}.Name())
}
