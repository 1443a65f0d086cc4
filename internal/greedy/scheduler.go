// Package greedy implements the constructive scheduler: it places every
// class requirement onto the weekly grid using an additive soft-score
// heuristic, never violating a hard constraint, and defers anything it
// cannot place to the caller as an unplaced requirement.
package greedy

import (
	"context"
	"fmt"
	"sort"

	"github.com/kasakgupta/timetable-scheduler/internal/catalog"
	"github.com/kasakgupta/timetable-scheduler/internal/models"
	"github.com/kasakgupta/timetable-scheduler/pkg/config"
)

// Scheduler builds an initial feasible-as-possible Schedule from a
// normalized Catalog.
type Scheduler struct {
	cfg config.SchedulerConfig
	cat *catalog.Catalog

	facultyBusy *busySet
	roomBusy    *busySet
	cohortBusy  *busySet

	heavySubjects map[string]bool
	assignments   []models.Assignment
}

// New builds a Scheduler over cat using cfg's grid dimensions.
func New(cfg config.SchedulerConfig, cat *catalog.Catalog, heavySubjects []string) *Scheduler {
	heavy := make(map[string]bool, len(heavySubjects))
	for _, id := range heavySubjects {
		heavy[id] = true
	}
	return &Scheduler{
		cfg:           cfg,
		cat:           cat,
		facultyBusy:   newBusySet(cfg.PeriodsPerDay),
		roomBusy:      newBusySet(cfg.PeriodsPerDay),
		cohortBusy:    newBusySet(cfg.PeriodsPerDay),
		heavySubjects: heavy,
	}
}

type candidate struct {
	day, period int
	room        models.Room
	score       float64
}

// Schedule places every requirement occurrence, checking for cancellation
// at each requirement boundary, and returns the resulting Schedule.
func (s *Scheduler) Schedule(ctx context.Context) (models.Schedule, error) {
	var unplaced []models.UnplacedRequirement

	for _, req := range s.cat.Requirements {
		if err := ctx.Err(); err != nil {
			return models.Schedule{}, fmt.Errorf("greedy scheduling cancelled: %w", err)
		}

		for occurrence := 0; occurrence < req.WeeklyFrequency; occurrence++ {
			best, ok := s.findBestSlot(req)
			if !ok {
				unplaced = append(unplaced, models.UnplacedRequirement{
					Requirement: req,
					Reason:      "no candidate cell satisfied hard constraints",
				})
				continue
			}
			s.commit(req, best)
		}
	}

	return models.Schedule{
		Assignments: s.sortedAssignments(),
		Unplaced:    unplaced,
	}, nil
}

func (s *Scheduler) findBestSlot(req models.ClassRequirement) (candidate, bool) {
	rooms := s.cat.RoomsByType[req.RequiredRoomType]
	var best candidate
	found := false

	for day := 0; day < s.cfg.Days; day++ {
		for period := 0; period+req.Duration <= s.cfg.PeriodsPerDay; period++ {
			for _, room := range rooms {
				if !s.satisfiesHardConstraints(req, day, period, room) {
					continue
				}
				score := s.evaluateSlot(req, day, period, room)
				if score <= 0 {
					continue
				}
				if !found || betterCandidate(score, day, period, room.ID, best) {
					best = candidate{day: day, period: period, room: room, score: score}
					found = true
				}
			}
		}
	}

	return best, found
}

// betterCandidate reports whether (score, day, period, roomID) beats cur:
// highest score wins; ties broken by lowest day, then lowest period, then
// lexicographic room id.
func betterCandidate(score float64, day, period int, roomID string, cur candidate) bool {
	if score != cur.score {
		return score > cur.score
	}
	if day != cur.day {
		return day < cur.day
	}
	if period != cur.period {
		return period < cur.period
	}
	return roomID < cur.room.ID
}

func (s *Scheduler) satisfiesHardConstraints(req models.ClassRequirement, day, period int, room models.Room) bool {
	faculty, ok := s.cat.Faculty[req.FacultyID]
	if !ok {
		return false
	}
	for p := period; p < period+req.Duration; p++ {
		slot := models.TimeSlot{Day: day, Period: p}
		if faculty.Unavailable(slot) {
			return false
		}
	}
	if !s.facultyBusy.isRangeFree(req.FacultyID, day, period, req.Duration) {
		return false
	}
	if !s.roomBusy.isRangeFree(room.ID, day, period, req.Duration) {
		return false
	}
	if !s.cohortBusy.isRangeFree(req.CohortID, day, period, req.Duration) {
		return false
	}
	return true
}

// evaluateSlot implements the additive soft-score formula from spec §4.2.
func (s *Scheduler) evaluateSlot(req models.ClassRequirement, day, period int, room models.Room) float64 {
	score := 100.0
	faculty := s.cat.Faculty[req.FacultyID]

	if isPreferredSlot(req.PreferredSlots, day, period) {
		score += 50
	}
	if faculty.PrefersDay(day) {
		score += 20
	}

	run := s.facultyBusy.consecutiveRun(req.FacultyID, day, period, req.Duration)
	if faculty.MaxConsecutiveHours > 0 && run > faculty.MaxConsecutiveHours {
		score -= 20 * float64(run-faculty.MaxConsecutiveHours)
	}

	if faculty.MinGap > 0 {
		gap := s.facultyBusy.nearestGap(req.FacultyID, day, period, req.Duration)
		if gap >= 0 && gap < faculty.MinGap {
			score -= 15
		}
	}

	score -= 25 * float64(s.adjacentDifferentRoomCount(req.FacultyID, day, period, req.Duration, room.ID))

	if s.heavySubjects[s.cat.Subjects[req.SubjectID].Name] && period >= (s.cfg.PeriodsPerDay/2)+1 {
		score -= 30
	}

	cohortLoad := s.cohortBusy.dayLoad(req.CohortID, day)
	if over := cohortLoad - 4; over > 0 {
		score -= 10 * float64(over)
	}

	if room.Capacity < 30 {
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	return score
}

// adjacentDifferentRoomCount counts existing same-faculty classes in the
// immediately preceding/following period that sit in a different room.
func (s *Scheduler) adjacentDifferentRoomCount(facultyID string, day, period, duration int, roomID string) int {
	count := 0
	for _, a := range s.assignments {
		if a.FacultyID != facultyID || a.Day != day {
			continue
		}
		if a.RoomID == roomID {
			continue
		}
		if a.StartPeriod+a.Duration == period || period+duration == a.StartPeriod {
			count++
		}
	}
	return count
}

func isPreferredSlot(preferred []models.TimeSlot, day, period int) bool {
	for _, slot := range preferred {
		if slot.Day == day && slot.Period == period {
			return true
		}
	}
	return false
}

func (s *Scheduler) commit(req models.ClassRequirement, c candidate) {
	s.facultyBusy.mark(req.FacultyID, c.day, c.period, req.Duration, s.cfg.Days)
	s.roomBusy.mark(c.room.ID, c.day, c.period, req.Duration, s.cfg.Days)
	s.cohortBusy.mark(req.CohortID, c.day, c.period, req.Duration, s.cfg.Days)

	s.assignments = append(s.assignments, models.Assignment{
		SubjectID:        req.SubjectID,
		FacultyID:        req.FacultyID,
		CohortID:         req.CohortID,
		RoomID:           c.room.ID,
		RequiredRoomType: req.RequiredRoomType,
		Day:              c.day,
		StartPeriod:      c.period,
		Duration:         req.Duration,
	})
}

// sortedAssignments returns a copy of the committed assignments ordered for
// deterministic downstream consumption.
func (s *Scheduler) sortedAssignments() []models.Assignment {
	out := append([]models.Assignment(nil), s.assignments...)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.StartPeriod != b.StartPeriod {
			return a.StartPeriod < b.StartPeriod
		}
		return a.SubjectID < b.SubjectID
	})
	return out
}
