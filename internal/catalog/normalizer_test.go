package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasakgupta/timetable-scheduler/internal/dto"
)

func trivialRequest() dto.GenerateRequest {
	return dto.GenerateRequest{
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
		},
		ProgramType: "FYUP",
		Semester:    1,
	}
}

func TestNormalizeTrivialFeasible(t *testing.T) {
	cat, err := Normalize(trivialRequest())
	require.NoError(t, err)
	require.Len(t, cat.Requirements, 1)

	req := cat.Requirements[0]
	assert.Equal(t, "sub-1", req.SubjectID)
	assert.Equal(t, "fac-1", req.FacultyID)
	assert.Equal(t, "coh-1", req.CohortID)
	assert.EqualValues(t, "LECTURE", req.RequiredRoomType)
	assert.Equal(t, 1, req.Duration)
	assert.Equal(t, 1, req.WeeklyFrequency)
}

func TestNormalizeEmitsTheoryAndPracticalRequirements(t *testing.T) {
	req := trivialRequest()
	req.Subjects[0].PracticalHours = 2
	req.Subjects[0].Credits = 4

	cat, err := Normalize(req)
	require.NoError(t, err)
	require.Len(t, cat.Requirements, 2)

	byDuration := map[int]bool{}
	for _, r := range cat.Requirements {
		byDuration[r.Duration] = true
	}
	assert.True(t, byDuration[1], "expected a theory requirement")
	assert.True(t, byDuration[2], "expected a practical requirement")
}

func TestNormalizeRejectsUnknownDayName(t *testing.T) {
	req := trivialRequest()
	req.Faculty[0].UnavailableSlots = []string{"Notaday_2"}

	_, err := Normalize(req)
	require.Error(t, err)
}

func TestNormalizeSkipsGroupsWithoutMatchingSemester(t *testing.T) {
	req := trivialRequest()
	req.StudentGroups[0].Semester = 2

	cat, err := Normalize(req)
	require.NoError(t, err)
	assert.Empty(t, cat.Requirements)
}

func TestNormalizeSortsByPriorityThenCohortThenSubject(t *testing.T) {
	req := trivialRequest()
	req.Subjects = append(req.Subjects, dto.SubjectInput{
		ID: "sub-0", Name: "Intro Elective", Type: "elective", Credits: 2, TheoryHours: 1, Programs: []string{"BSc"}, Semester: 1,
	})
	req.Faculty = append(req.Faculty, dto.FacultyInput{
		ID: "fac-2", Name: "Dr B", TeachableSubjectIDs: []string{"sub-0"},
	})

	cat, err := Normalize(req)
	require.NoError(t, err)
	require.Len(t, cat.Requirements, 2)
	assert.Equal(t, "sub-1", cat.Requirements[0].SubjectID, "HIGH priority major subject must sort first")
	assert.Equal(t, "sub-0", cat.Requirements[1].SubjectID)
}
