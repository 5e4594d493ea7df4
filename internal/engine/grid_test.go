package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekShape() Shape {
	return Shape{Days: 5, Periods: 6, BreakPeriods: []int{3}, LunchPeriod: 5}
}

func TestNewGridPremarksBreakAndLunch(t *testing.T) {
	g, err := NewGrid(weekShape())
	require.NoError(t, err)

	for day := 1; day <= 5; day++ {
		assert.Equal(t, EntryBreak, g.At(day, 3).Kind)
		assert.Equal(t, EntryLunch, g.At(day, 5).Kind)
	}
	assert.Equal(t, EntryEmpty, g.At(1, 1).Kind)
	assert.Equal(t, 20, g.Shape().OpenSlots())
}

func TestGridShapeValidation(t *testing.T) {
	assert.Error(t, Shape{Days: 0, Periods: 6}.Validate())
	assert.Error(t, Shape{Days: 5, Periods: 6, BreakPeriods: []int{7}}.Validate())
	assert.Error(t, Shape{Days: 5, Periods: 6, LunchPeriod: 9}.Validate())
	assert.Error(t, Shape{Days: 5, Periods: 6, BreakPeriods: []int{4}, LunchPeriod: 4}.Validate())
	assert.NoError(t, weekShape().Validate())
}

func TestGridPlaceTouchesOnlyTargetCell(t *testing.T) {
	g, err := NewGrid(weekShape())
	require.NoError(t, err)

	before := snapshot(g)
	require.NoError(t, g.Place(2, 4, ClassEntry("Math", "F1")))
	after := snapshot(g)

	changed := 0
	for i := range before {
		if before[i] != after[i] {
			changed++
		}
	}
	assert.Equal(t, 1, changed)
	assert.Equal(t, "Math", g.At(2, 4).Subject)
}

func TestGridPlaceRejectsBadTargets(t *testing.T) {
	g, err := NewGrid(weekShape())
	require.NoError(t, err)

	var slotErr *InvalidSlotError
	assert.ErrorAs(t, g.Place(1, 3, ClassEntry("Math", "F1")), &slotErr)
	assert.ErrorAs(t, g.Place(1, 5, ClassEntry("Math", "F1")), &slotErr)
	assert.ErrorAs(t, g.Place(6, 1, ClassEntry("Math", "F1")), &slotErr)
	assert.ErrorAs(t, g.Place(1, 0, ClassEntry("Math", "F1")), &slotErr)

	require.NoError(t, g.Place(1, 1, ClassEntry("Math", "F1")))
	assert.True(t, errors.Is(g.Place(1, 1, ClassEntry("Phy", "F2")), ErrCellOccupied))

	assert.Error(t, g.Place(1, 2, Entry{Kind: EntryBreak}))
}

func TestGridRemoveOnlyClearsAssignments(t *testing.T) {
	g, err := NewGrid(weekShape())
	require.NoError(t, err)
	require.NoError(t, g.Place(1, 1, LabEntry("CS Lab", "F1", "R1")))

	require.NoError(t, g.Remove(1, 1))
	assert.Equal(t, EntryEmpty, g.At(1, 1).Kind)

	var notAssignable *CellNotAssignableError
	assert.ErrorAs(t, g.Remove(1, 1), &notAssignable)
	assert.ErrorAs(t, g.Remove(1, 3), &notAssignable)
	assert.ErrorAs(t, g.Remove(1, 5), &notAssignable)
	assert.ErrorAs(t, g.Remove(9, 9), &notAssignable)
}

func TestGridForEachCanonicalOrder(t *testing.T) {
	g, err := NewGrid(Shape{Days: 2, Periods: 3})
	require.NoError(t, err)

	var visited []cell
	g.ForEach(func(day, period int, e Entry) {
		visited = append(visited, cell{day: day, period: period})
	})
	assert.Equal(t, []cell{
		{1, 1}, {1, 2}, {1, 3},
		{2, 1}, {2, 2}, {2, 3},
	}, visited)
}

func snapshot(g *Grid) []Entry {
	var cells []Entry
	g.ForEach(func(day, period int, e Entry) {
		cells = append(cells, e)
	})
	return cells
}
