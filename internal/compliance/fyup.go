package compliance

import (
	"fmt"
	"strings"

	"github.com/kasakgupta/timetable-scheduler/internal/models"
)

type categoryTotals struct {
	courses int
	credits int
}

// checkFYUP evaluates the five NEP 2020 credit categories (major, minor,
// skill, ability enhancement, value added) plus the multidisciplinary
// exposure score and the theory/practical/internship hour balance.
func (a *Auditor) checkFYUP(subjects []models.Subject, report *models.ComplianceReport) {
	totals := map[string]*categoryTotals{}
	for _, nc := range a.cfg.NEPCategories {
		totals[nc.Name] = &categoryTotals{}
	}

	totalCredits := 0
	for _, s := range subjects {
		key := strings.ToLower(string(s.Category))
		t, ok := totals[key]
		if !ok {
			continue
		}
		t.courses++
		t.credits += s.Credits
		totalCredits += s.Credits
	}

	for _, nc := range a.cfg.NEPCategories {
		t := totals[nc.Name]
		percentage := 0.0
		if totalCredits > 0 {
			percentage = float64(t.credits) / float64(totalCredits) * 100
		}

		compliant := percentage >= nc.MinPercent && percentage <= nc.MaxPercent && t.credits >= nc.MinCredits

		report.CategoryCompliance = append(report.CategoryCompliance, models.CategoryCompliance{
			Category:   nc.Name,
			Credits:    t.credits,
			Percentage: percentage,
			MinPercent: nc.MinPercent,
			MaxPercent: nc.MaxPercent,
			MinCredits: nc.MinCredits,
			Compliant:  compliant,
		})

		if compliant {
			continue
		}
		report.OverallCompliant = false

		title := titleCase(strings.ReplaceAll(nc.Name, "_", " "))
		if percentage < nc.MinPercent {
			report.Violations = append(report.Violations, fmt.Sprintf(
				"%s courses are below minimum requirement (%.1f%% < %.1f%%)", title, percentage, nc.MinPercent))
			report.Recommendations = append(report.Recommendations, fmt.Sprintf(
				"Increase %s course allocation by %.1f%%", nc.Name, nc.MinPercent-percentage))
		}
		if percentage > nc.MaxPercent {
			report.Violations = append(report.Violations, fmt.Sprintf(
				"%s courses exceed maximum limit (%.1f%% > %.1f%%)", title, percentage, nc.MaxPercent))
			report.Recommendations = append(report.Recommendations, fmt.Sprintf(
				"Reduce %s course allocation by %.1f%%", nc.Name, percentage-nc.MaxPercent))
		}
		if t.credits < nc.MinCredits {
			report.Violations = append(report.Violations, fmt.Sprintf(
				"%s credits are insufficient (%d < %d)", title, t.credits, nc.MinCredits))
			report.Recommendations = append(report.Recommendations, fmt.Sprintf(
				"Add %d more credits in %s courses", nc.MinCredits-t.credits, nc.Name))
		}
	}

	report.MultidisciplinaryScore = multidisciplinaryScore(subjects)
	if report.MultidisciplinaryScore < 70 {
		report.Violations = append(report.Violations, fmt.Sprintf(
			"Multidisciplinary exposure is low (%.1f%%)", report.MultidisciplinaryScore))
		report.Recommendations = append(report.Recommendations,
			"Increase interdisciplinary course offerings across different faculties")
	}

	report.CreditDistribution = theoryPracticalBalance(subjects)
	if report.CreditDistribution.PracticalPercent < 20 {
		report.Recommendations = append(report.Recommendations,
			"Increase practical/lab components to at least 20% of total hours")
	}
}

// multidisciplinaryScore rewards distinct department exposure: 3 or more
// distinct departments scores 100, 2 scores 70, 1 scores 40, none scores 0.
func multidisciplinaryScore(subjects []models.Subject) float64 {
	if len(subjects) == 0 {
		return 0
	}
	departments := map[string]bool{}
	for _, s := range subjects {
		dept := s.Department
		if dept == "" {
			dept = "general"
		}
		departments[dept] = true
	}

	switch {
	case len(departments) >= 3:
		return 100
	case len(departments) == 2:
		return 70
	case len(departments) == 1:
		return 40
	default:
		return 0
	}
}

func theoryPracticalBalance(subjects []models.Subject) models.CreditDistribution {
	dist := models.CreditDistribution{}
	for _, s := range subjects {
		dist.TheoryHours += s.TheoryHours
		dist.PracticalHours += s.PracticalHours
		if strings.Contains(strings.ToLower(string(s.Category)), "internship") {
			dist.InternshipHours += s.InternshipHours
		}
	}

	total := dist.TheoryHours + dist.PracticalHours + dist.InternshipHours
	if total == 0 {
		return dist
	}

	dist.TheoryPercent = float64(dist.TheoryHours) / float64(total) * 100
	dist.PracticalPercent = float64(dist.PracticalHours) / float64(total) * 100
	dist.InternshipPercent = float64(dist.InternshipHours) / float64(total) * 100
	return dist
}
