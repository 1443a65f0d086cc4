package compliance

import (
	"fmt"
	"strings"

	"github.com/kasakgupta/timetable-scheduler/internal/models"
)

// checkTeacherEducation evaluates B.Ed./M.Ed. curricula against the four
// component-percentage floors (pedagogy, subject knowledge, practicum,
// electives) and the minimum practicum-hours threshold.
func (a *Auditor) checkTeacherEducation(subjects []models.Subject, report *models.ComplianceReport) {
	total := len(subjects)
	if total == 0 {
		return
	}

	var pedagogy, subjectKnowledge, practicum, electives, practicumHours int
	for _, s := range subjects {
		category := strings.ToLower(string(s.Category))
		switch {
		case strings.Contains(category, "pedagogy") || strings.Contains(category, "teaching"):
			pedagogy++
		case strings.Contains(category, "practical") || strings.Contains(category, "practicum"):
			practicum++
			hours := s.PracticalHours
			if hours == 0 {
				hours = 20
			}
			practicumHours += hours
		case strings.Contains(category, "elective"):
			electives++
		default:
			subjectKnowledge++
		}
	}

	min := a.cfg.TeacherEducationMin
	components := []struct {
		name    string
		count   int
		minimum float64
	}{
		{"pedagogy", pedagogy, min.PedagogyPercent},
		{"subject_knowledge", subjectKnowledge, min.SubjectKnowledgePercent},
		{"practicum", practicum, min.PracticumPercent},
		{"electives", electives, min.ElectivesPercent},
	}

	for _, c := range components {
		percentage := float64(c.count) / float64(total) * 100
		compliant := percentage >= c.minimum

		report.CategoryCompliance = append(report.CategoryCompliance, models.CategoryCompliance{
			Category:   c.name,
			Percentage: percentage,
			MinPercent: c.minimum,
			Compliant:  compliant,
		})

		if compliant {
			continue
		}
		report.OverallCompliant = false
		title := titleCase(strings.ReplaceAll(c.name, "_", " "))
		report.Violations = append(report.Violations, fmt.Sprintf(
			"%s component is below minimum (%.1f%% < %.1f%%)", title, percentage, c.minimum))
		report.Recommendations = append(report.Recommendations, fmt.Sprintf(
			"Increase %s courses by %.1f%%", c.name, c.minimum-percentage))
	}

	report.PracticumHours = practicumHours
	if practicumHours < min.PracticumHoursMin {
		report.Violations = append(report.Violations, fmt.Sprintf(
			"Teaching practice hours insufficient (%d < %d hours)", practicumHours, min.PracticumHoursMin))
		report.Recommendations = append(report.Recommendations, fmt.Sprintf(
			"Add %d more hours of teaching practice", min.PracticumHoursMin-practicumHours))
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
