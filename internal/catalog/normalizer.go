// Package catalog turns a raw input document into the sorted requirement
// list the greedy scheduler consumes.
package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kasakgupta/timetable-scheduler/internal/dto"
	"github.com/kasakgupta/timetable-scheduler/internal/models"
	appErrors "github.com/kasakgupta/timetable-scheduler/pkg/errors"
)

var dayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

// Catalog is the normalized, ready-to-schedule view of one request: the
// subject/faculty/cohort/room universe plus the derived requirement list.
type Catalog struct {
	Subjects     map[string]models.Subject
	Faculty      map[string]models.Faculty
	Cohorts      map[string]models.Cohort
	Rooms        []models.Room
	RoomsByType  map[models.RoomType][]models.Room
	Requirements []models.ClassRequirement
}

// Normalize validates and transforms a GenerateRequest into a Catalog.
// Returns a CATALOG_INVALID error on any malformed cross-reference.
func Normalize(req dto.GenerateRequest) (*Catalog, error) {
	subjects := make(map[string]models.Subject, len(req.Subjects))
	for _, s := range req.Subjects {
		if s.Credits < 0 {
			return nil, appErrors.Wrap(fmt.Errorf("subject %s has negative credits", s.ID), appErrors.ErrCatalogInvalid.Code, appErrors.ErrCatalogInvalid.Message)
		}
		subjects[s.ID] = models.Subject{
			ID:               s.ID,
			Name:             s.Name,
			Category:         models.Category(strings.ToUpper(s.Type)),
			Credits:          s.Credits,
			TheoryHours:      s.TheoryHours,
			PracticalHours:   s.PracticalHours,
			InternshipHours:  s.InternshipHours,
			EligiblePrograms: s.Programs,
			Semester:         s.Semester,
			Department:       s.Department,
		}
	}

	faculty := make(map[string]models.Faculty, len(req.Faculty))
	for _, f := range req.Faculty {
		for _, sid := range f.TeachableSubjectIDs {
			if _, ok := subjects[sid]; !ok {
				return nil, appErrors.Wrap(fmt.Errorf("faculty %s references unknown subject %s", f.ID, sid), appErrors.ErrCatalogInvalid.Code, appErrors.ErrCatalogInvalid.Message)
			}
		}
		unavailable, err := parseSlotStrings(f.UnavailableSlots)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrCatalogInvalid.Code, fmt.Sprintf("faculty %s: %v", f.ID, err))
		}
		preferredDays, err := parseDayNames(f.PreferredDays)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrCatalogInvalid.Code, fmt.Sprintf("faculty %s: %v", f.ID, err))
		}
		maxConsecutive := f.MaxConsecutiveHours
		if maxConsecutive == 0 {
			maxConsecutive = 3
		}
		faculty[f.ID] = models.Faculty{
			ID:                  f.ID,
			Name:                f.Name,
			TeachableSubjectIDs: f.TeachableSubjectIDs,
			MaxHoursPerDay:      f.MaxHoursPerDay,
			PreferredDays:       preferredDays,
			UnavailableSlots:    unavailable,
			MaxConsecutiveHours: maxConsecutive,
			MinGap:              f.MinGap,
		}
	}

	cohorts := make(map[string]models.Cohort, len(req.StudentGroups))
	for _, g := range req.StudentGroups {
		cohorts[g.ID] = models.Cohort{
			ID:       g.ID,
			Program:  g.Program,
			Semester: g.Semester,
			Strength: g.Strength,
		}
	}

	roomsByType := map[models.RoomType][]models.Room{
		models.RoomLecture: {},
		models.RoomLab:     {},
		models.RoomSeminar: {},
	}
	rooms := make([]models.Room, 0, len(req.Rooms))
	for _, r := range req.Rooms {
		name := r.Name
		if name == "" {
			name = r.ID
		}
		room := models.Room{
			ID:        r.ID,
			Name:      name,
			Capacity:  r.Capacity,
			Type:      models.RoomType(strings.ToUpper(r.Type)),
			Equipment: r.Equipment,
		}
		rooms = append(rooms, room)
		roomsByType[room.Type] = append(roomsByType[room.Type], room)
	}

	requirements, err := buildRequirements(subjects, faculty, cohorts)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		Subjects:     subjects,
		Faculty:      faculty,
		Cohorts:      cohorts,
		Rooms:        rooms,
		RoomsByType:  roomsByType,
		Requirements: requirements,
	}, nil
}

// buildRequirements implements spec §4.1: for each (cohort, subject) pair
// where the cohort's program/semester match the subject, emit a theory
// requirement (if theory_hours>0) and a practical requirement (if
// practical_hours>0), each with a derived weekly_frequency and priority.
func buildRequirements(subjects map[string]models.Subject, faculty map[string]models.Faculty, cohorts map[string]models.Cohort) ([]models.ClassRequirement, error) {
	facultyForSubject := make(map[string]string, len(subjects))
	for _, f := range faculty {
		for _, sid := range f.TeachableSubjectIDs {
			if _, exists := facultyForSubject[sid]; !exists {
				facultyForSubject[sid] = f.ID
			}
		}
	}

	var requirements []models.ClassRequirement
	for _, subject := range subjects {
		facultyID, ok := facultyForSubject[subject.ID]
		if !ok {
			continue
		}
		for _, cohort := range cohorts {
			if !groupNeedsSubject(cohort, subject) {
				continue
			}

			theoryFreq := maxInt(1, subject.Credits/2)

			if subject.TheoryHours > 0 {
				requirements = append(requirements, models.ClassRequirement{
					SubjectID:        subject.ID,
					FacultyID:        facultyID,
					CohortID:         cohort.ID,
					RequiredRoomType: models.RoomLecture,
					Duration:         1,
					WeeklyFrequency:  theoryFreq,
					Priority:         models.PriorityFor(subject.Category),
				})
			}

			if subject.PracticalHours > 0 {
				requirements = append(requirements, models.ClassRequirement{
					SubjectID:        subject.ID,
					FacultyID:        facultyID,
					CohortID:         cohort.ID,
					RequiredRoomType: models.RoomLab,
					Duration:         2,
					WeeklyFrequency:  maxInt(1, theoryFreq/2),
					Priority:         models.PriorityFor(subject.Category),
				})
			}
		}
	}

	sort.SliceStable(requirements, func(i, j int) bool {
		a, b := requirements[i], requirements[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.CohortID != b.CohortID {
			return a.CohortID < b.CohortID
		}
		return a.SubjectID < b.SubjectID
	})

	return requirements, nil
}

func groupNeedsSubject(cohort models.Cohort, subject models.Subject) bool {
	if len(subject.EligiblePrograms) > 0 {
		matched := false
		for _, p := range subject.EligiblePrograms {
			if strings.EqualFold(p, cohort.Program) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return cohort.Semester == subject.Semester
}

// parseSlotStrings parses entries of the form "<day>_<period>" (spec §4.1).
func parseSlotStrings(raw []string) ([]models.TimeSlot, error) {
	slots := make([]models.TimeSlot, 0, len(raw))
	for _, s := range raw {
		parts := strings.SplitN(s, "_", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed slot string %q", s)
		}
		day, err := dayIndex(parts[0])
		if err != nil {
			return nil, err
		}
		period, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("malformed period in slot string %q: %w", s, err)
		}
		slots = append(slots, models.TimeSlot{Day: day, Period: period})
	}
	return slots, nil
}

func parseDayNames(raw []string) ([]int, error) {
	days := make([]int, 0, len(raw))
	for _, name := range raw {
		idx, err := dayIndex(name)
		if err != nil {
			return nil, err
		}
		days = append(days, idx)
	}
	return days, nil
}

func dayIndex(name string) (int, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, d := range dayNames {
		if d == lower {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown day name %q", name)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
