package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasakgupta/timetable-scheduler/internal/catalog"
	"github.com/kasakgupta/timetable-scheduler/internal/dto"
	"github.com/kasakgupta/timetable-scheduler/internal/models"
	"github.com/kasakgupta/timetable-scheduler/pkg/config"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	req := dto.GenerateRequest{
		Subjects: []dto.SubjectInput{
			{ID: "sub-1", Name: "Algebra", Type: "major", Credits: 2, TheoryHours: 1, Programs: []string{"BSc"}, Semester: 1},
		},
		Faculty: []dto.FacultyInput{
			{ID: "fac-1", Name: "Dr A", TeachableSubjectIDs: []string{"sub-1"}},
		},
		StudentGroups: []dto.StudentGroupInput{
			{ID: "coh-1", Program: "BSc", Semester: 1, Strength: 40},
		},
		Rooms: []dto.RoomInput{
			{ID: "room-1", Type: "lecture", Capacity: 60},
			{ID: "room-2", Type: "lecture", Capacity: 60},
		},
	}
	cat, err := catalog.Normalize(req)
	require.NoError(t, err)
	return cat
}

func testCfg() config.SchedulerConfig {
	return config.SchedulerConfig{Days: 5, PeriodsPerDay: 8}
}

func TestResolveNoConflictsIsNoop(t *testing.T) {
	cat := testCatalog(t)
	schedule := models.Schedule{Assignments: []models.Assignment{
		{SubjectID: "sub-1", FacultyID: "fac-1", CohortID: "coh-1", RoomID: "room-1", Day: 0, StartPeriod: 0, Duration: 1},
	}}

	r := New(testCfg(), cat)
	out, err := r.Resolve(context.Background(), schedule)
	require.NoError(t, err)
	assert.Empty(t, out.Conflicts)
}

func TestResolveRepairsRoomBookingConflict(t *testing.T) {
	cat := testCatalog(t)
	schedule := models.Schedule{Assignments: []models.Assignment{
		{SubjectID: "sub-1", FacultyID: "fac-1", CohortID: "coh-1", RoomID: "room-1", Day: 0, StartPeriod: 0, Duration: 1},
		{SubjectID: "sub-1", FacultyID: "fac-2", CohortID: "coh-2", RoomID: "room-1", Day: 0, StartPeriod: 0, Duration: 1},
	}}

	r := New(testCfg(), cat)
	out, err := r.Resolve(context.Background(), schedule)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, a := range out.Assignments {
		key := a.RoomID
		if a.Day == 0 && a.StartPeriod == 0 {
			assert.False(t, seen[key], "room still double-booked after repair")
			seen[key] = true
		}
	}
}

func TestResolveRetainsUnrepairableConflict(t *testing.T) {
	cat := testCatalog(t)
	// Both classes want room-1/room-2 at the same slot with the same cohort
	// and faculty colliding everywhere — no free faculty slot exists on a
	// 1-day, 1-period grid, so the conflict must survive as a residual.
	tinyCfg := config.SchedulerConfig{Days: 1, PeriodsPerDay: 1}
	schedule := models.Schedule{Assignments: []models.Assignment{
		{SubjectID: "sub-1", FacultyID: "fac-1", CohortID: "coh-1", RoomID: "room-1", Day: 0, StartPeriod: 0, Duration: 1},
		{SubjectID: "sub-1", FacultyID: "fac-1", CohortID: "coh-1", RoomID: "room-1", Day: 0, StartPeriod: 0, Duration: 1},
	}}

	r := New(tinyCfg, cat)
	out, err := r.Resolve(context.Background(), schedule)
	require.NoError(t, err)
	assert.NotEmpty(t, out.Conflicts)
}

func TestResolveUpsizesUndersizedRoom(t *testing.T) {
	req := dto.GenerateRequest{
		Subjects: []dto.SubjectInput{
			{ID: "sub-1", Name: "Algebra", Type: "major", Credits: 2, TheoryHours: 1, Programs: []string{"BSc"}, Semester: 1},
		},
		Faculty: []dto.FacultyInput{
			{ID: "fac-1", Name: "Dr A", TeachableSubjectIDs: []string{"sub-1"}},
		},
		StudentGroups: []dto.StudentGroupInput{
			{ID: "coh-1", Program: "BSc", Semester: 1, Strength: 80},
		},
		Rooms: []dto.RoomInput{
			{ID: "room-small", Type: "lecture", Capacity: 40},
			{ID: "room-big", Type: "lecture", Capacity: 100},
		},
	}
	cat, err := catalog.Normalize(req)
	require.NoError(t, err)

	schedule := models.Schedule{Assignments: []models.Assignment{
		{SubjectID: "sub-1", FacultyID: "fac-1", CohortID: "coh-1", RoomID: "room-small", Day: 0, StartPeriod: 0, Duration: 1},
	}}

	r := New(testCfg(), cat)
	out, err := r.Resolve(context.Background(), schedule)
	require.NoError(t, err)
	assert.Empty(t, out.Conflicts)
	require.Len(t, out.Assignments, 1)
	assert.Equal(t, "room-big", out.Assignments[0].RoomID)
}

func TestResolveRepairsRoomTypeMismatch(t *testing.T) {
	req := dto.GenerateRequest{
		Subjects: []dto.SubjectInput{
			{ID: "sub-1", Name: "Chemistry Lab", Type: "major", Credits: 4, PracticalHours: 2, Programs: []string{"BSc"}, Semester: 1},
		},
		Faculty: []dto.FacultyInput{
			{ID: "fac-1", Name: "Dr A", TeachableSubjectIDs: []string{"sub-1"}},
		},
		StudentGroups: []dto.StudentGroupInput{
			{ID: "coh-1", Program: "BSc", Semester: 1, Strength: 40},
		},
		Rooms: []dto.RoomInput{
			{ID: "room-lecture", Type: "lecture", Capacity: 60},
			{ID: "room-lab", Type: "lab", Capacity: 60},
		},
	}
	cat, err := catalog.Normalize(req)
	require.NoError(t, err)

	// Simulates a chromosome that survived mutation with a LAB requirement
	// reassigned into a LECTURE room (§4.3 permits this during mutation).
	schedule := models.Schedule{Assignments: []models.Assignment{
		{SubjectID: "sub-1", FacultyID: "fac-1", CohortID: "coh-1", RoomID: "room-lecture", RequiredRoomType: models.RoomLab, Day: 0, StartPeriod: 0, Duration: 2},
	}}

	r := New(testCfg(), cat)
	out, err := r.Resolve(context.Background(), schedule)
	require.NoError(t, err)
	assert.Empty(t, out.Conflicts)
	require.Len(t, out.Assignments, 1)
	assert.Equal(t, "room-lab", out.Assignments[0].RoomID)
}

func TestResolveRelocatesFacultyUnavailableAssignment(t *testing.T) {
	req := dto.GenerateRequest{
		Subjects: []dto.SubjectInput{
			{ID: "sub-1", Name: "Algebra", Type: "major", Credits: 2, TheoryHours: 1, Programs: []string{"BSc"}, Semester: 1},
		},
		Faculty: []dto.FacultyInput{
			{ID: "fac-1", Name: "Dr A", TeachableSubjectIDs: []string{"sub-1"}, UnavailableSlots: []string{"monday_0"}},
		},
		StudentGroups: []dto.StudentGroupInput{
			{ID: "coh-1", Program: "BSc", Semester: 1, Strength: 40},
		},
		Rooms: []dto.RoomInput{
			{ID: "room-1", Type: "lecture", Capacity: 60},
		},
	}
	cat, err := catalog.Normalize(req)
	require.NoError(t, err)

	schedule := models.Schedule{Assignments: []models.Assignment{
		{SubjectID: "sub-1", FacultyID: "fac-1", CohortID: "coh-1", RoomID: "room-1", Day: 0, StartPeriod: 0, Duration: 1},
	}}

	r := New(testCfg(), cat)
	out, err := r.Resolve(context.Background(), schedule)
	require.NoError(t, err)
	assert.Empty(t, out.Conflicts)
	require.Len(t, out.Assignments, 1)
	assert.False(t, out.Assignments[0].Day == 0 && out.Assignments[0].StartPeriod == 0, "faculty still booked during its unavailable slot")
}

func TestConflictHeatmapClassifiesLevels(t *testing.T) {
	schedule := models.Schedule{Conflicts: []models.Conflict{
		{Day: 0}, {Day: 0}, {Day: 0},
		{Day: 1},
	}}
	dayNames := []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
	heat := ConflictHeatmap(schedule, dayNames)
	require.Len(t, heat, 5)
	assert.Equal(t, "high", heat["monday"].Level)
	assert.Equal(t, "medium", heat["tuesday"].Level)
	assert.Equal(t, "low", heat["wednesday"].Level)
}
