package models

// ConflictSeverity classifies how urgently a conflict must be addressed.
type ConflictSeverity string

const (
	SeverityCritical ConflictSeverity = "CRITICAL"
)

// ConflictKind enumerates the dimensions the resolver detects collisions on.
type ConflictKind string

const (
	ConflictFacultyOverlap     ConflictKind = "faculty_overlap"
	ConflictRoomBooking        ConflictKind = "room_booking"
	ConflictStudentClash       ConflictKind = "student_clash"
	ConflictCapacityExceeded   ConflictKind = "capacity_exceeded"
	ConflictRoomTypeMismatch   ConflictKind = "room_type_mismatch"
	ConflictFacultyUnavailable ConflictKind = "faculty_unavailable"
)

// Conflict describes a detected hard-constraint violation in a schedule.
type Conflict struct {
	ID                    string       `json:"id"`
	Kind                  ConflictKind `json:"kind"`
	Severity              ConflictSeverity `json:"severity"`
	Description           string       `json:"description"`
	AffectedClasses       []Assignment `json:"affected_classes"`
	ResolutionSuggestions []string     `json:"resolution_suggestions"`
	Day                   int          `json:"day"`
	Period                int          `json:"period"`
}
