package dto

import "github.com/kasakgupta/timetable-scheduler/internal/models"

// AssignmentView is one scheduled class as rendered in the weekly grid.
type AssignmentView struct {
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	FacultyID   string `json:"faculty_id"`
	CohortID    string `json:"cohort_id"`
	RoomID      string `json:"room_id"`
	RoomName    string `json:"room_name"`
	Day         int    `json:"day"`
	Period      int    `json:"period"`
	PeriodLabel string `json:"period_label"`
	Duration    int    `json:"duration"`
}

// Statistics summarizes raw occupancy of the final schedule.
type Statistics struct {
	TotalClassesScheduled int     `json:"total_classes_scheduled"`
	TotalAvailableSlots   int     `json:"total_available_slots"`
	UtilizationRate       float64 `json:"utilization_rate"`
}

// OptimizationMetrics reports the genetic optimizer's outcome for the run.
type OptimizationMetrics struct {
	FitnessScore      float64 `json:"fitness_score"`
	ConflictCount     int     `json:"conflict_count"`
	UtilizationRate   float64 `json:"utilization_rate"`
	MovementReduction float64 `json:"movement_reduction"`
	FatiguePrevention float64 `json:"fatigue_prevention"`
}

// AIMetadata records which algorithm produced the schedule and its budget.
type AIMetadata struct {
	Algorithm        string `json:"algorithm"`
	GenerationsUsed  int    `json:"generations_used"`
	PopulationSize   int    `json:"population_size"`
	FinalConflicts   int    `json:"final_conflicts"`
}

// ScheduleDocument is the final output document returned by the pipeline.
type ScheduleDocument struct {
	RunID          string                                  `json:"run_id"`
	WeeklySchedule map[string]map[string][]AssignmentView `json:"weekly_schedule"`
	Statistics     Statistics                  `json:"statistics"`
	OptimizationMetrics OptimizationMetrics    `json:"optimization_metrics"`
	Conflicts      []models.Conflict           `json:"conflicts"`
	Compliance     *models.ComplianceReport    `json:"compliance,omitempty"`
	AIMetadata     AIMetadata                  `json:"ai_metadata"`
	Unplaced       []models.UnplacedRequirement `json:"unplaced,omitempty"`
}
