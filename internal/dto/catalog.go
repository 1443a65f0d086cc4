package dto

// SubjectInput is the wire shape of one subject in a catalog snapshot.
type SubjectInput struct {
	ID             string   `json:"id" validate:"required"`
	Name           string   `json:"name" validate:"required"`
	Type           string   `json:"type" validate:"required"`
	Credits        int      `json:"credits" validate:"required,min=1"`
	TheoryHours    int      `json:"theory_hours" validate:"min=0"`
	PracticalHours int      `json:"practical_hours" validate:"min=0"`
	InternshipHours int     `json:"internship_hours" validate:"min=0"`
	Department     string   `json:"department"`
	Programs       []string `json:"programs" validate:"required,min=1"`
	Semester       int      `json:"semester" validate:"required,min=1"`
}

// FacultyInput is the wire shape of one faculty member in a catalog snapshot.
type FacultyInput struct {
	ID                  string   `json:"id" validate:"required"`
	Name                string   `json:"name" validate:"required"`
	TeachableSubjectIDs []string `json:"teachable_subject_ids" validate:"required,min=1"`
	MaxHoursPerDay      int      `json:"max_hours_per_day" validate:"omitempty,min=1"`
	PreferredDays       []string `json:"preferred_days"`
	UnavailableSlots    []string `json:"unavailable_slots"`
	MaxConsecutiveHours int      `json:"max_consecutive_hours" validate:"omitempty,min=1"`
	MinGap              int      `json:"min_gap" validate:"omitempty,min=0"`
}

// StudentGroupInput is the wire shape of one cohort in a catalog snapshot.
type StudentGroupInput struct {
	ID       string `json:"id" validate:"required"`
	Program  string `json:"program" validate:"required"`
	Semester int    `json:"semester" validate:"required,min=1"`
	Strength int     `json:"strength" validate:"min=0"`
}

// RoomInput is the wire shape of one room in a catalog snapshot.
type RoomInput struct {
	ID        string   `json:"id" validate:"required"`
	Name      string   `json:"name"`
	Type      string   `json:"type" validate:"required,oneof=lecture lab seminar"`
	Capacity  int      `json:"capacity" validate:"required,min=1"`
	Equipment []string `json:"equipment"`
}

// GenerateRequest is the full input document accepted by the pipeline.
type GenerateRequest struct {
	Subjects       []SubjectInput      `json:"subjects" validate:"required,min=1,dive"`
	Faculty        []FacultyInput      `json:"faculty" validate:"required,min=1,dive"`
	StudentGroups  []StudentGroupInput `json:"student_groups" validate:"required,min=1,dive"`
	Rooms          []RoomInput         `json:"rooms" validate:"required,min=1,dive"`
	ProgramType    string              `json:"program_type" validate:"required,oneof=FYUP ITEP B.Ed. M.Ed."`
	Semester       int                 `json:"semester" validate:"required,min=1"`
	OptimizationLevel string           `json:"optimization_level" validate:"omitempty,oneof=low med high"`
	RandomSeed     *int64              `json:"random_seed,omitempty"`
	HeavySubjects  []string            `json:"heavy_subjects,omitempty"`
	PeriodLabels   []string            `json:"period_labels,omitempty"`
}
