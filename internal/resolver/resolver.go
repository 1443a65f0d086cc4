package resolver

import (
	"context"
	"fmt"

	"github.com/kasakgupta/timetable-scheduler/internal/catalog"
	"github.com/kasakgupta/timetable-scheduler/internal/models"
	"github.com/kasakgupta/timetable-scheduler/pkg/config"
)

// Resolver detects and repairs hard-constraint violations in a committed
// schedule. Its conflict-id counter is instance-local.
type Resolver struct {
	cfg     config.SchedulerConfig
	cat     *catalog.Catalog
	counter int
}

// New builds a Resolver bound to the given catalog.
func New(cfg config.SchedulerConfig, cat *catalog.Catalog) *Resolver {
	return &Resolver{cfg: cfg, cat: cat}
}

// Resolve detects conflicts, attempts repair, re-detects, and returns the
// schedule with its Assignments possibly mutated and Conflicts set to the
// residual list.
func (r *Resolver) Resolve(ctx context.Context, schedule models.Schedule) (models.Schedule, error) {
	found, err := detectAll(ctx, schedule.Assignments, r.cat)
	if err != nil {
		return schedule, err
	}
	if len(found) == 0 {
		schedule.Conflicts = nil
		return schedule, nil
	}

	repaired := autoRepair(r.cfg, r.cat, schedule.Assignments, found)

	residual, err := detectAll(ctx, repaired, r.cat)
	if err != nil {
		return schedule, err
	}

	schedule.Assignments = repaired
	schedule.Conflicts = r.buildConflictRecords(residual, repaired)
	return schedule, nil
}

func (r *Resolver) buildConflictRecords(found []detectedConflict, assignments []models.Assignment) []models.Conflict {
	records := make([]models.Conflict, 0, len(found))
	for _, c := range found {
		affected := make([]models.Assignment, 0, len(c.indices))
		var entity string
		for _, idx := range c.indices {
			a := assignments[idx]
			affected = append(affected, a)
			entity = entityLabel(c.kind, a)
		}

		records = append(records, models.Conflict{
			ID:                    fmt.Sprintf("%s_conflict_%d", c.kind, r.counter),
			Kind:                  c.kind,
			Severity:              models.SeverityCritical,
			Description:           describeConflict(c.kind, len(affected), entity),
			AffectedClasses:       affected,
			ResolutionSuggestions: suggestionsFor(c.kind),
			Day:                   c.day,
			Period:                c.period,
		})
		r.counter++
	}
	return records
}

func entityLabel(kind models.ConflictKind, a models.Assignment) string {
	switch kind {
	case models.ConflictFacultyOverlap, models.ConflictFacultyUnavailable:
		return a.FacultyID
	case models.ConflictRoomBooking:
		return a.RoomID
	case models.ConflictStudentClash:
		return a.CohortID
	default:
		return a.CohortID
	}
}
