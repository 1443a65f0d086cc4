// Package compliance audits a normalized subject catalog against NEP 2020
// credit-distribution rules, dispatching on program type the way the source
// material's checker does.
package compliance

import (
	"sort"

	"github.com/kasakgupta/timetable-scheduler/internal/models"
	"github.com/kasakgupta/timetable-scheduler/pkg/config"
)

// Auditor checks one catalog's subject distribution against the NEP 2020
// thresholds configured for the deployment.
type Auditor struct {
	cfg config.SchedulerConfig
}

// New builds an Auditor bound to the configured NEP thresholds.
func New(cfg config.SchedulerConfig) *Auditor {
	return &Auditor{cfg: cfg}
}

// Audit produces a ComplianceReport for the given program type over the
// subject catalog. FYUP and ITEP share the credit-category check; B.Ed. and
// M.Ed. share the teacher-education component check. Any other program
// type yields an empty, trivially-compliant report.
func (a *Auditor) Audit(programType string, subjects map[string]models.Subject) *models.ComplianceReport {
	report := &models.ComplianceReport{
		ProgramType:      programType,
		OverallCompliant: true,
	}

	list := sortedSubjects(subjects)

	switch programType {
	case "FYUP", "ITEP":
		a.checkFYUP(list, report)
	case "B.Ed.", "M.Ed.":
		a.checkTeacherEducation(list, report)
	}

	report.OverallScore = a.overallScore(report)
	return report
}

func sortedSubjects(subjects map[string]models.Subject) []models.Subject {
	list := make([]models.Subject, 0, len(subjects))
	for _, s := range subjects {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// overallScore blends category-compliance rate, a multidisciplinary bonus,
// and a flat per-violation penalty, clamped to [0, 100].
func (a *Auditor) overallScore(report *models.ComplianceReport) float64 {
	if len(report.CategoryCompliance) == 0 {
		return 0
	}

	compliant := 0
	for _, c := range report.CategoryCompliance {
		if c.Compliant {
			compliant++
		}
	}
	base := float64(compliant) / float64(len(report.CategoryCompliance)) * 100
	bonus := report.MultidisciplinaryScore * 0.1
	penalty := float64(len(report.Violations)) * 5

	score := base + bonus - penalty
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return round2(score)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
