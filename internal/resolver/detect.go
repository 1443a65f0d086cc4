// Package resolver detects hard-constraint violations in a committed
// schedule and attempts bounded local repair before reporting residuals.
package resolver

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/kasakgupta/timetable-scheduler/internal/catalog"
	"github.com/kasakgupta/timetable-scheduler/internal/models"
)

// detectedConflict is the resolver's internal view of one bucket collision:
// the exported models.Conflict plus the indices into the assignment slice
// that repair needs to mutate.
type detectedConflict struct {
	kind    models.ConflictKind
	day     int
	period  int
	indices []int
}

// detectAll runs the six detectors concurrently over an immutable
// assignment slice and joins their results in a fixed, deterministic
// order (faculty, room, cohort, capacity, room-type mismatch, faculty
// unavailability) regardless of goroutine completion order. All resource
// maps are derived from cat once so every pass sees the same snapshot.
func detectAll(ctx context.Context, assignments []models.Assignment, cat *catalog.Catalog) ([]detectedConflict, error) {
	roomCapacity := map[string]int{}
	roomType := map[string]models.RoomType{}
	for _, room := range cat.Rooms {
		roomCapacity[room.ID] = room.Capacity
		roomType[room.ID] = room.Type
	}
	cohortStrength := map[string]int{}
	for id, group := range cat.Cohorts {
		cohortStrength[id] = group.Strength
	}

	results := make([][]detectedConflict, 6)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		results[0] = detectByEntity(assignments, models.ConflictFacultyOverlap, func(a models.Assignment) string { return a.FacultyID })
		return nil
	})
	g.Go(func() error {
		results[1] = detectByEntity(assignments, models.ConflictRoomBooking, func(a models.Assignment) string { return a.RoomID })
		return nil
	})
	g.Go(func() error {
		results[2] = detectByEntity(assignments, models.ConflictStudentClash, func(a models.Assignment) string { return a.CohortID })
		return nil
	})
	g.Go(func() error {
		results[3] = detectCapacityExceeded(assignments, roomCapacity, cohortStrength)
		return nil
	})
	g.Go(func() error {
		results[4] = detectRoomTypeMismatch(assignments, roomType)
		return nil
	})
	g.Go(func() error {
		results[5] = detectFacultyUnavailable(assignments, cat.Faculty)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []detectedConflict
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// detectByEntity buckets every occupied (entity, day, period) cell and
// reports one conflict per bucket with more than one occupant.
func detectByEntity(assignments []models.Assignment, kind models.ConflictKind, entityOf func(models.Assignment) string) []detectedConflict {
	type cell struct {
		entity string
		day    int
		period int
	}
	buckets := map[cell][]int{}

	for i, a := range assignments {
		entity := entityOf(a)
		if entity == "" {
			continue
		}
		for _, slot := range a.Slots() {
			key := cell{entity, slot.Day, slot.Period}
			buckets[key] = append(buckets[key], i)
		}
	}

	var conflicts []detectedConflict
	for key, idxs := range buckets {
		if len(idxs) <= 1 {
			continue
		}
		conflicts = append(conflicts, detectedConflict{kind: kind, day: key.day, period: key.period, indices: idxs})
	}

	sort.Slice(conflicts, func(i, j int) bool {
		a, b := conflicts[i], conflicts[j]
		if a.day != b.day {
			return a.day < b.day
		}
		return a.period < b.period
	})
	return conflicts
}

// detectCapacityExceeded flags any class whose room capacity is smaller
// than its cohort's strength. If either map is empty (capacities or
// strengths unknown) it reports nothing rather than guess.
func detectCapacityExceeded(assignments []models.Assignment, roomCapacity map[string]int, cohortStrength map[string]int) []detectedConflict {
	if len(roomCapacity) == 0 || len(cohortStrength) == 0 {
		return nil
	}

	var conflicts []detectedConflict
	for i, a := range assignments {
		capacity, capOK := roomCapacity[a.RoomID]
		strength, strOK := cohortStrength[a.CohortID]
		if !capOK || !strOK || strength <= capacity {
			continue
		}
		conflicts = append(conflicts, detectedConflict{
			kind:    models.ConflictCapacityExceeded,
			day:     a.Day,
			period:  a.StartPeriod,
			indices: []int{i},
		})
	}

	sort.Slice(conflicts, func(i, j int) bool {
		a, b := conflicts[i], conflicts[j]
		if a.day != b.day {
			return a.day < b.day
		}
		return a.period < b.period
	})
	return conflicts
}

// detectRoomTypeMismatch flags any assignment whose room no longer matches
// the room_type its originating requirement demanded (I6). Genetic mutation
// reassigns room_id without regard to type, so this is the enforcement point
// spec.md §4.3 defers to "the repair phase."
func detectRoomTypeMismatch(assignments []models.Assignment, roomType map[string]models.RoomType) []detectedConflict {
	if len(roomType) == 0 {
		return nil
	}

	var conflicts []detectedConflict
	for i, a := range assignments {
		if a.RequiredRoomType == "" {
			continue
		}
		actual, ok := roomType[a.RoomID]
		if !ok || actual == a.RequiredRoomType {
			continue
		}
		conflicts = append(conflicts, detectedConflict{
			kind:    models.ConflictRoomTypeMismatch,
			day:     a.Day,
			period:  a.StartPeriod,
			indices: []int{i},
		})
	}

	sort.Slice(conflicts, func(i, j int) bool {
		a, b := conflicts[i], conflicts[j]
		if a.day != b.day {
			return a.day < b.day
		}
		return a.period < b.period
	})
	return conflicts
}

// detectFacultyUnavailable flags any assignment that covers a slot in its
// faculty's unavailable_slots (I4). Mutation picks day/period uniformly at
// random with no availability check, so a chromosome can carry this
// violation into the final generation.
func detectFacultyUnavailable(assignments []models.Assignment, faculty map[string]models.Faculty) []detectedConflict {
	if len(faculty) == 0 {
		return nil
	}

	var conflicts []detectedConflict
	for i, a := range assignments {
		f, ok := faculty[a.FacultyID]
		if !ok {
			continue
		}
		for _, slot := range a.Slots() {
			if f.Unavailable(slot) {
				conflicts = append(conflicts, detectedConflict{
					kind:    models.ConflictFacultyUnavailable,
					day:     a.Day,
					period:  a.StartPeriod,
					indices: []int{i},
				})
				break
			}
		}
	}

	sort.Slice(conflicts, func(i, j int) bool {
		a, b := conflicts[i], conflicts[j]
		if a.day != b.day {
			return a.day < b.day
		}
		return a.period < b.period
	})
	return conflicts
}

func describeConflict(kind models.ConflictKind, count int, entity string) string {
	switch kind {
	case models.ConflictFacultyOverlap:
		return fmt.Sprintf("faculty %s has %d classes at the same time", entity, count)
	case models.ConflictRoomBooking:
		return fmt.Sprintf("room %s is booked for %d classes at the same time", entity, count)
	case models.ConflictStudentClash:
		return fmt.Sprintf("cohort %s has %d classes at the same time", entity, count)
	case models.ConflictRoomTypeMismatch:
		return fmt.Sprintf("class for cohort %s is booked into a room of the wrong type", entity)
	case models.ConflictFacultyUnavailable:
		return fmt.Sprintf("faculty %s is booked during a declared unavailable slot", entity)
	default:
		return fmt.Sprintf("capacity exceeded for %s", entity)
	}
}

func suggestionsFor(kind models.ConflictKind) []string {
	switch kind {
	case models.ConflictRoomBooking, models.ConflictRoomTypeMismatch:
		return []string{"reassign room from the catalog's available room set"}
	case models.ConflictFacultyUnavailable:
		return []string{"reschedule to a slot outside the faculty's unavailable_slots"}
	default:
		return []string{
			"reschedule one class to a different time slot",
			"assign alternative faculty member",
			"split class into multiple sections",
		}
	}
}
