package resolver

import (
	"fmt"

	"github.com/kasakgupta/timetable-scheduler/internal/models"
)

// HeatmapEntry summarizes one day's conflict pressure for visualization.
type HeatmapEntry struct {
	Day       int    `json:"day"`
	Level     string `json:"level"`
	Conflicts int    `json:"conflicts"`
}

// ConflictHeatmap buckets a schedule's residual conflicts by day and
// classifies severity: 0 is "low", up to 2 is "medium", anything higher is
// "high". Supplements the structured report with a compact per-day view
// for dashboards, keyed by day name.
func ConflictHeatmap(schedule models.Schedule, dayNames []string) map[string]HeatmapEntry {
	counts := make([]int, len(dayNames))
	for _, c := range schedule.Conflicts {
		if c.Day >= 0 && c.Day < len(counts) {
			counts[c.Day]++
		}
	}

	out := make(map[string]HeatmapEntry, len(dayNames))
	for day, count := range counts {
		level := "low"
		switch {
		case count == 0:
			level = "low"
		case count <= 2:
			level = "medium"
		default:
			level = "high"
		}
		name := dayNames[day]
		if name == "" {
			name = fmt.Sprintf("day_%d", day)
		}
		out[name] = HeatmapEntry{Day: day, Level: level, Conflicts: count}
	}
	return out
}
