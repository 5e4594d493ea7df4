package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionFixture(key string, reqs ...Requirement) SectionInput {
	return SectionInput{Key: key, Shape: weekShape(), Requirements: reqs}
}

func countEntries(g *Grid, subject string) int {
	n := 0
	g.ForEach(func(day, period int, e Entry) {
		if (e.Kind == EntryClass || e.Kind == EntryLab) && e.Subject == subject {
			n++
		}
	})
	return n
}

func TestGenerateSingleSection(t *testing.T) {
	sections := []SectionInput{sectionFixture("2024/CSE/2/3",
		Requirement{Subject: "Mathematics", FacultyID: "F1", WeeklyHours: 3},
		Requirement{Subject: "Physics", FacultyID: "F2", WeeklyHours: 2},
	)}

	result, err := Generate(context.Background(), sections, SearchConfig{})
	require.NoError(t, err)
	require.Len(t, result.Sections, 1)

	grid := result.Sections[0].Grid
	assert.Equal(t, 3, countEntries(grid, "Mathematics"))
	assert.Equal(t, 2, countEntries(grid, "Physics"))

	// Break and lunch cells survive untouched.
	for day := 1; day <= 5; day++ {
		assert.Equal(t, EntryBreak, grid.At(day, 3).Kind)
		assert.Equal(t, EntryLunch, grid.At(day, 5).Kind)
	}

	require.NoError(t, NewValidator().Validate(sections, result.Sections))
	assert.Greater(t, result.Stats.Nodes, int64(0))
}

func TestGenerateSharedFacultyAcrossSections(t *testing.T) {
	sections := []SectionInput{
		sectionFixture("sec-a",
			Requirement{Subject: "Mathematics", FacultyID: "F1", WeeklyHours: 6},
			Requirement{Subject: "Chemistry", FacultyID: "F2", WeeklyHours: 4},
		),
		sectionFixture("sec-b",
			Requirement{Subject: "Mathematics", FacultyID: "F1", WeeklyHours: 6},
			Requirement{Subject: "English", FacultyID: "F3", WeeklyHours: 5},
		),
	}

	result, err := Generate(context.Background(), sections, SearchConfig{})
	require.NoError(t, err)
	require.Len(t, result.Sections, 2)
	require.NoError(t, NewValidator().Validate(sections, result.Sections))

	// F1 never sits in the same (day, period) of both grids.
	a, b := result.Sections[0].Grid, result.Sections[1].Grid
	a.ForEach(func(day, period int, e Entry) {
		if e.FacultyID != "F1" {
			return
		}
		other := b.At(day, period)
		assert.NotEqual(t, "F1", other.FacultyID, "F1 double-booked at (%d,%d)", day, period)
	})
}

func TestGenerateLabRotationLabels(t *testing.T) {
	sections := []SectionInput{sectionFixture("sec-a",
		Requirement{Subject: "CS Lab", FacultyID: "F1", WeeklyHours: 3, IsLab: true, BatchCount: 3, StationCount: 3},
	)}

	result, err := Generate(context.Background(), sections, SearchConfig{})
	require.NoError(t, err)

	labels := make(map[string]int)
	result.Sections[0].Grid.ForEach(func(day, period int, e Entry) {
		if e.Kind == EntryLab {
			labels[e.Batch]++
		}
	})
	assert.Equal(t, map[string]int{"R1": 1, "R2": 1, "R3": 1}, labels)

	plan, ok := result.Rotations["sec-a/CS Lab"]
	require.True(t, ok)
	assert.Equal(t, 3, plan.Batches())
}

func TestGenerateInfeasibleOverCommittedFaculty(t *testing.T) {
	shape := Shape{Days: 1, Periods: 3}
	sections := []SectionInput{
		{Key: "sec-a", Shape: shape, Requirements: []Requirement{{Subject: "Math", FacultyID: "F1", WeeklyHours: 2}}},
		{Key: "sec-b", Shape: shape, Requirements: []Requirement{{Subject: "Math", FacultyID: "F1", WeeklyHours: 2}}},
	}

	_, err := Generate(context.Background(), sections, SearchConfig{})
	var infeasible *InfeasibleError
	require.ErrorAs(t, err, &infeasible)
	assert.Equal(t, "F1", infeasible.FacultyID)
}

func TestGenerateInsufficientStationsFailsBeforeSearch(t *testing.T) {
	sections := []SectionInput{sectionFixture("sec-a",
		Requirement{Subject: "CS Lab", FacultyID: "F1", WeeklyHours: 2, IsLab: true, BatchCount: 3, StationCount: 2},
	)}

	result, err := Generate(context.Background(), sections, SearchConfig{})
	var insufficient *InsufficientStationsError
	require.ErrorAs(t, err, &insufficient)
	assert.Nil(t, result)
}

func TestGenerateCapacityChecks(t *testing.T) {
	// One requirement alone overflows the 20 open slots.
	_, err := Generate(context.Background(), []SectionInput{sectionFixture("sec-a",
		Requirement{Subject: "Math", FacultyID: "F1", WeeklyHours: 21},
	)}, SearchConfig{})
	var capacity *CapacityError
	require.ErrorAs(t, err, &capacity)
	assert.Equal(t, "Math", capacity.Subject)

	// Individually fine, together overflowing.
	_, err = Generate(context.Background(), []SectionInput{sectionFixture("sec-a",
		Requirement{Subject: "Math", FacultyID: "F1", WeeklyHours: 12},
		Requirement{Subject: "Physics", FacultyID: "F2", WeeklyHours: 12},
	)}, SearchConfig{})
	require.ErrorAs(t, err, &capacity)
	assert.Empty(t, capacity.Subject)
	assert.Equal(t, 24, capacity.Required)
}

func TestGenerateRejectsInvalidRequirements(t *testing.T) {
	var invalid *InvalidRequirementError

	_, err := Generate(context.Background(), []SectionInput{sectionFixture("sec-a",
		Requirement{Subject: "Math", FacultyID: "F1", WeeklyHours: 0},
	)}, SearchConfig{})
	require.ErrorAs(t, err, &invalid)

	_, err = Generate(context.Background(), []SectionInput{sectionFixture("sec-a",
		Requirement{Subject: "", FacultyID: "F1", WeeklyHours: 2},
	)}, SearchConfig{})
	require.ErrorAs(t, err, &invalid)
}

func TestGenerateRejectsDuplicateSubjectFacultyPair(t *testing.T) {
	_, err := Generate(context.Background(), []SectionInput{sectionFixture("sec-a",
		Requirement{Subject: "Mathematics", FacultyID: "F1", WeeklyHours: 2},
		Requirement{Subject: "Mathematics", FacultyID: "F1", WeeklyHours: 2},
	)}, SearchConfig{})
	var invalid *InvalidRequirementError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Reason, "duplicate")
}

func TestGenerateSharedSubjectNameAcrossFaculty(t *testing.T) {
	sections := []SectionInput{sectionFixture("sec-a",
		Requirement{Subject: "Mathematics", FacultyID: "F1", WeeklyHours: 2},
		Requirement{Subject: "Mathematics", FacultyID: "F2", WeeklyHours: 2},
	)}

	result, err := Generate(context.Background(), sections, SearchConfig{})
	require.NoError(t, err)
	assert.Equal(t, 4, countEntries(result.Sections[0].Grid, "Mathematics"))
	require.NoError(t, NewValidator().Validate(sections, result.Sections))
}

func TestGenerateIsDeterministic(t *testing.T) {
	sections := []SectionInput{
		sectionFixture("sec-a",
			Requirement{Subject: "Mathematics", FacultyID: "F1", WeeklyHours: 4},
			Requirement{Subject: "CS Lab", FacultyID: "F2", WeeklyHours: 2, IsLab: true, BatchCount: 2, StationCount: 2},
		),
		sectionFixture("sec-b",
			Requirement{Subject: "Mathematics", FacultyID: "F1", WeeklyHours: 4},
			Requirement{Subject: "Biology", FacultyID: "F3", WeeklyHours: 3},
		),
	}

	first, err := Generate(context.Background(), sections, SearchConfig{})
	require.NoError(t, err)
	second, err := Generate(context.Background(), sections, SearchConfig{})
	require.NoError(t, err)

	for i := range first.Sections {
		assert.Equal(t, snapshot(first.Sections[i].Grid), snapshot(second.Sections[i].Grid))
	}
	assert.Equal(t, first.Stats, second.Stats)
}

func TestGenerateNodeBudgetAbort(t *testing.T) {
	sections := []SectionInput{sectionFixture("sec-a",
		Requirement{Subject: "Math", FacultyID: "F1", WeeklyHours: 5},
	)}

	_, err := Generate(context.Background(), sections, SearchConfig{NodeBudget: 1})
	var aborted *SearchAbortedError
	require.ErrorAs(t, err, &aborted)
	assert.Contains(t, aborted.Cause, "node budget")
}

func TestGenerateHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, []SectionInput{sectionFixture("sec-a",
		Requirement{Subject: "Math", FacultyID: "F1", WeeklyHours: 3},
	)}, SearchConfig{})
	var aborted *SearchAbortedError
	require.ErrorAs(t, err, &aborted)
	assert.Contains(t, aborted.Cause, "canceled")
}
