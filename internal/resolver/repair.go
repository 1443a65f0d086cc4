package resolver

import (
	"sort"

	"github.com/kasakgupta/timetable-scheduler/internal/catalog"
	"github.com/kasakgupta/timetable-scheduler/internal/models"
	"github.com/kasakgupta/timetable-scheduler/pkg/config"
)

// occupancy is a plain map-based busy tracker rebuilt from the current
// assignment slice before each repair attempt; the resolver repairs one
// conflict at a time, so a bitset's incremental-update advantage does not
// apply here the way it does in the greedy scheduler's tight inner loop.
type occupancy struct {
	faculty map[string]bool
	room    map[string]bool
	cohort  map[string]bool
}

func buildOccupancy(assignments []models.Assignment, skip int) occupancy {
	occ := occupancy{faculty: map[string]bool{}, room: map[string]bool{}, cohort: map[string]bool{}}
	for i, a := range assignments {
		if i == skip {
			continue
		}
		for _, slot := range a.Slots() {
			occ.faculty[a.FacultyID+"|"+slot.String()] = true
			occ.room[a.RoomID+"|"+slot.String()] = true
			occ.cohort[a.CohortID+"|"+slot.String()] = true
		}
	}
	return occ
}

// autoRepair attempts, in detection order, to eliminate every CRITICAL
// conflict by moving the last-listed affected class to a free, available
// slot (faculty_overlap / student_clash / faculty_unavailable) or
// reassigning it to a free room of the right type or size (room_booking /
// room_type_mismatch / capacity_exceeded). Conflicts it cannot resolve are
// left for the caller to re-detect and report as residuals.
func autoRepair(cfg config.SchedulerConfig, cat *catalog.Catalog, assignments []models.Assignment, conflicts []detectedConflict) []models.Assignment {
	repaired := append([]models.Assignment(nil), assignments...)

	singleIndexKinds := map[models.ConflictKind]bool{
		models.ConflictCapacityExceeded:   true,
		models.ConflictRoomTypeMismatch:   true,
		models.ConflictFacultyUnavailable: true,
	}

	for _, c := range conflicts {
		if len(c.indices) == 0 {
			continue
		}
		if !singleIndexKinds[c.kind] && len(c.indices) < 2 {
			continue
		}
		target := c.indices[len(c.indices)-1]

		switch c.kind {
		case models.ConflictFacultyOverlap, models.ConflictStudentClash, models.ConflictFacultyUnavailable:
			repairByRelocation(cfg, cat, repaired, target)
		case models.ConflictRoomBooking:
			repairByReassignment(cat, repaired, target)
		case models.ConflictCapacityExceeded:
			repairByUpsizing(cat, repaired, target)
		case models.ConflictRoomTypeMismatch:
			repairByRoomType(cat, repaired, target)
		}
	}

	return repaired
}

// repairByRelocation searches for a free (day, period) that also respects
// the faculty's unavailable_slots (I4), so a relocation fixing one conflict
// never lands the class on another.
func repairByRelocation(cfg config.SchedulerConfig, cat *catalog.Catalog, assignments []models.Assignment, target int) {
	a := assignments[target]
	occ := buildOccupancy(assignments, target)
	faculty := cat.Faculty[a.FacultyID]

	for day := 0; day < cfg.Days; day++ {
		for period := 0; period+a.Duration <= cfg.PeriodsPerDay; period++ {
			if slotFree(occ, faculty, a, day, period) {
				assignments[target].Day = day
				assignments[target].StartPeriod = period
				return
			}
		}
	}
}

func slotFree(occ occupancy, faculty models.Faculty, a models.Assignment, day, period int) bool {
	for p := period; p < period+a.Duration; p++ {
		slot := models.TimeSlot{Day: day, Period: p}
		if faculty.Unavailable(slot) {
			return false
		}
		key := slot.String()
		if occ.faculty[a.FacultyID+"|"+key] {
			return false
		}
		if occ.cohort[a.CohortID+"|"+key] {
			return false
		}
		if occ.room[a.RoomID+"|"+key] {
			return false
		}
	}
	return true
}

// repairByReassignment searches the full catalog room set for a free room
// of the required type, replacing the hard-coded fallback list present in
// the source material's equivalent routine.
func repairByReassignment(cat *catalog.Catalog, assignments []models.Assignment, target int) {
	a := assignments[target]
	requiredType := roomTypeOf(cat, a.RoomID)
	occ := buildOccupancy(assignments, target)

	for _, room := range cat.RoomsByType[requiredType] {
		if room.ID == a.RoomID {
			continue
		}
		free := true
		for p := a.StartPeriod; p < a.StartPeriod+a.Duration; p++ {
			key := models.TimeSlot{Day: a.Day, Period: p}.String()
			if occ.room[room.ID+"|"+key] {
				free = false
				break
			}
		}
		if free {
			assignments[target].RoomID = room.ID
			return
		}
	}
}

// repairByUpsizing replaces an undersized room with the smallest free room
// of the same type that can hold the assigned cohort, mirroring the search
// strategy repairByReassignment uses for plain double-bookings.
func repairByUpsizing(cat *catalog.Catalog, assignments []models.Assignment, target int) {
	a := assignments[target]
	requiredType := roomTypeOf(cat, a.RoomID)
	strength := cohortStrengthOf(cat, a.CohortID)
	occ := buildOccupancy(assignments, target)

	candidates := append([]models.Room(nil), cat.RoomsByType[requiredType]...)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Capacity < candidates[j].Capacity })

	for _, room := range candidates {
		if room.ID == a.RoomID || room.Capacity < strength {
			continue
		}
		free := true
		for p := a.StartPeriod; p < a.StartPeriod+a.Duration; p++ {
			key := models.TimeSlot{Day: a.Day, Period: p}.String()
			if occ.room[room.ID+"|"+key] {
				free = false
				break
			}
		}
		if free {
			assignments[target].RoomID = room.ID
			return
		}
	}
}

// repairByRoomType reassigns a mismatched class to a free room of its
// requirement's actual required type, the same full-catalog search strategy
// repairByReassignment uses for plain double-bookings.
func repairByRoomType(cat *catalog.Catalog, assignments []models.Assignment, target int) {
	a := assignments[target]
	if a.RequiredRoomType == "" {
		return
	}
	occ := buildOccupancy(assignments, target)

	for _, room := range cat.RoomsByType[a.RequiredRoomType] {
		if room.ID == a.RoomID {
			continue
		}
		free := true
		for p := a.StartPeriod; p < a.StartPeriod+a.Duration; p++ {
			key := models.TimeSlot{Day: a.Day, Period: p}.String()
			if occ.room[room.ID+"|"+key] {
				free = false
				break
			}
		}
		if free {
			assignments[target].RoomID = room.ID
			return
		}
	}
}

func cohortStrengthOf(cat *catalog.Catalog, cohortID string) int {
	if g, ok := cat.Cohorts[cohortID]; ok {
		return g.Strength
	}
	return 0
}

func roomTypeOf(cat *catalog.Catalog, roomID string) models.RoomType {
	for _, r := range cat.Rooms {
		if r.ID == roomID {
			return r.Type
		}
	}
	return models.RoomLecture
}
