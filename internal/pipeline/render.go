package pipeline

import (
	"github.com/kasakgupta/timetable-scheduler/internal/catalog"
	"github.com/kasakgupta/timetable-scheduler/internal/dto"
	"github.com/kasakgupta/timetable-scheduler/internal/models"
)

// render converts the resolved Schedule into the wire-level ScheduleDocument,
// grouping assignments by day name then period label the way the source
// material's weekly_schedule view does.
func (p *Pipeline) render(cat *catalog.Catalog, schedule models.Schedule) *dto.ScheduleDocument {
	dayNames := p.cfg.DayNames
	periodLabels := p.cfg.PeriodLabels

	weekly := map[string]map[string][]dto.AssignmentView{}
	placed := 0
	for _, name := range dayNames {
		weekly[name] = map[string][]dto.AssignmentView{}
	}

	for _, a := range schedule.Assignments {
		for _, slot := range a.Slots() {
			dayName := dayName(dayNames, slot.Day)
			periodLabel := periodLabel(periodLabels, slot.Period)

			if weekly[dayName] == nil {
				weekly[dayName] = map[string][]dto.AssignmentView{}
			}

			subjectName := ""
			if s, ok := cat.Subjects[a.SubjectID]; ok {
				subjectName = s.Name
			}
			roomName := a.RoomID
			for _, r := range cat.Rooms {
				if r.ID == a.RoomID {
					roomName = r.Name
					break
				}
			}

			weekly[dayName][periodLabel] = append(weekly[dayName][periodLabel], dto.AssignmentView{
				SubjectID:   a.SubjectID,
				SubjectName: subjectName,
				FacultyID:   a.FacultyID,
				CohortID:    a.CohortID,
				RoomID:      a.RoomID,
				RoomName:    roomName,
				Day:         slot.Day,
				Period:      slot.Period,
				PeriodLabel: periodLabel,
				Duration:    a.Duration,
			})
			placed++
		}
	}

	// placed counts occupied cells, one per view in the weekly grid, so a
	// duration-2 assignment counts twice.
	totalSlots := p.cfg.Days * p.cfg.PeriodsPerDay
	utilization := 0.0
	if totalSlots > 0 {
		utilization = float64(placed) / float64(totalSlots) * 100
	}

	return &dto.ScheduleDocument{
		WeeklySchedule: weekly,
		Statistics: dto.Statistics{
			TotalClassesScheduled: placed,
			TotalAvailableSlots:   totalSlots,
			UtilizationRate:       utilization,
		},
		OptimizationMetrics: dto.OptimizationMetrics{
			FitnessScore:      schedule.FitnessScore,
			ConflictCount:     len(schedule.Conflicts),
			UtilizationRate:   schedule.UtilizationRate,
			MovementReduction: schedule.MovementReduction,
			FatiguePrevention: schedule.FatiguePrevention,
		},
		Conflicts:  schedule.Conflicts,
		Compliance: schedule.Compliance,
		AIMetadata: dto.AIMetadata{
			Algorithm:       "Genetic",
			GenerationsUsed: schedule.GenerationsUsed,
			PopulationSize:  schedule.PopulationSize,
			FinalConflicts:  len(schedule.Conflicts),
		},
		Unplaced: schedule.Unplaced,
	}
}

func dayName(names []string, day int) string {
	if day >= 0 && day < len(names) {
		return names[day]
	}
	return ""
}

func periodLabel(labels []string, period int) string {
	if period >= 0 && period < len(labels) {
		return labels[period]
	}
	return ""
}
