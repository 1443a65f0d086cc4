package genetic

import "github.com/kasakgupta/timetable-scheduler/internal/models"

// Gene is the genetic representation of a single occupied (day, period)
// cell: one subject/faculty/room/cohort placement. RequiredRoomType is
// carried from the originating requirement; mutation reassigns RoomID
// without regard to it (§4.3), so it survives purely as provenance for the
// resolver's I6 check.
type Gene struct {
	SubjectID        string
	FacultyID        string
	RoomID           string
	CohortID         string
	RequiredRoomType models.RoomType
	Day              int
	Period           int
}

// Chromosome is a full candidate schedule plus its last-evaluated fitness
// breakdown. Gene order carries no phenotypic meaning but is preserved for
// deterministic single-point crossover.
type Chromosome struct {
	Genes []Gene

	FitnessScore  float64
	ConflictCount int
	Utilization   float64
	Green         float64
	Fatigue       float64
}

// Clone returns a deep copy so mutation never aliases a parent's genes.
func (c Chromosome) Clone() Chromosome {
	out := c
	out.Genes = append([]Gene(nil), c.Genes...)
	return out
}
