package genetic

import (
	"fmt"
	"sort"

	"github.com/kasakgupta/timetable-scheduler/pkg/config"
)

// evaluate computes the weighted fitness of a chromosome per spec §4.3:
// F = 0.40*Conflict + 0.25*Util + 0.20*Green + 0.15*Fatigue.
func evaluate(c Chromosome, weights config.FitnessWeights, facultyTarget, roomTarget int, heavySubjects map[string]bool) Chromosome {
	conflictScore, conflictCount := evaluateConflicts(c.Genes)
	utilScore := evaluateUtilization(c.Genes, facultyTarget, roomTarget)
	greenScore := evaluateGreen(c.Genes)
	fatigueScore := evaluateFatigue(c.Genes, heavySubjects)

	out := c
	out.ConflictCount = conflictCount
	out.Utilization = utilScore
	out.Green = greenScore
	out.Fatigue = fatigueScore
	out.FitnessScore = weights.Conflict*conflictScore + weights.Util*utilScore + weights.Green*greenScore + weights.Fatigue*fatigueScore
	return out
}

func evaluateConflicts(genes []Gene) (score float64, duplicates int) {
	if len(genes) == 0 {
		return 100, 0
	}

	facultySeen := map[string]bool{}
	roomSeen := map[string]bool{}
	cohortSeen := map[string]bool{}

	for _, g := range genes {
		key := fmt.Sprintf("%d_%d", g.Day, g.Period)

		fk := g.FacultyID + "|" + key
		if facultySeen[fk] {
			duplicates++
		} else {
			facultySeen[fk] = true
		}

		rk := g.RoomID + "|" + key
		if roomSeen[rk] {
			duplicates++
		} else {
			roomSeen[rk] = true
		}

		ck := g.CohortID + "|" + key
		if cohortSeen[ck] {
			duplicates++
		} else {
			cohortSeen[ck] = true
		}
	}

	conflictPercent := (float64(duplicates) / float64(len(genes))) * 100
	score = 100 - conflictPercent*2
	if score < 0 {
		score = 0
	}
	return score, duplicates
}

func evaluateUtilization(genes []Gene, facultyTarget, roomTarget int) float64 {
	if len(genes) == 0 {
		return 0
	}

	facultyHours := map[string]int{}
	roomHours := map[string]int{}
	for _, g := range genes {
		facultyHours[g.FacultyID]++
		roomHours[g.RoomID]++
	}

	var facultyUtils []float64
	for _, hours := range facultyHours {
		u := minFloat(100, float64(hours)/float64(facultyTarget)*100)
		if hours > facultyTarget {
			u = maxFloat(0, 100-float64(hours-facultyTarget)*10)
		}
		facultyUtils = append(facultyUtils, u)
	}

	var roomUtils []float64
	for _, hours := range roomHours {
		roomUtils = append(roomUtils, minFloat(100, float64(hours)/float64(roomTarget)*100))
	}

	return (mean(facultyUtils) + mean(roomUtils)) / 2
}

func evaluateGreen(genes []Gene) float64 {
	if len(genes) == 0 {
		return 100
	}

	type key struct {
		faculty string
		day     int
	}
	groups := map[key][]Gene{}
	for _, g := range genes {
		k := key{g.FacultyID, g.Day}
		groups[k] = append(groups[k], g)
	}

	var movements, possible int
	for _, day := range groups {
		if len(day) <= 1 {
			continue
		}
		sort.Slice(day, func(i, j int) bool { return day[i].Period < day[j].Period })
		for i := 0; i < len(day)-1; i++ {
			if day[i].RoomID != day[i+1].RoomID {
				movements++
			}
		}
		possible += len(day) - 1
	}

	if possible == 0 {
		return 100
	}
	rate := float64(movements) / float64(possible)
	return maxFloat(0, 100-rate*100)
}

func evaluateFatigue(genes []Gene, heavySubjects map[string]bool) float64 {
	if len(genes) == 0 {
		return 100
	}

	type key struct {
		cohort string
		day    int
	}
	groups := map[key][]Gene{}
	for _, g := range genes {
		k := key{g.CohortID, g.Day}
		groups[k] = append(groups[k], g)
	}

	var violations, checks int
	for _, day := range groups {
		if len(day) <= 1 {
			continue
		}
		sort.Slice(day, func(i, j int) bool { return day[i].Period < day[j].Period })
		for i := 0; i < len(day)-1; i++ {
			if day[i+1].Period != day[i].Period+1 {
				continue
			}
			checks++
			if heavySubjects[day[i].SubjectID] && heavySubjects[day[i+1].SubjectID] {
				violations++
			}
		}
	}

	if checks == 0 {
		return 100
	}
	rate := float64(violations) / float64(checks)
	return maxFloat(0, 100-rate*100)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
