package compliance

import (
	"fmt"
	"strings"

	"github.com/kasakgupta/timetable-scheduler/internal/models"
)

// Summarize renders a ComplianceReport as the plain-text report a NEP
// coordinator would read, mirroring the source checker's human-readable
// output.
func Summarize(report *models.ComplianceReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "NEP 2020 Compliance Report\n")
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 50))

	status := "NON-COMPLIANT"
	if report.OverallCompliant {
		status = "COMPLIANT"
	}
	fmt.Fprintf(&b, "Overall Compliance: %s\n", status)
	fmt.Fprintf(&b, "Compliance Score: %.1f%%\n", report.OverallScore)
	fmt.Fprintf(&b, "Multidisciplinary Score: %.1f%%\n\n", report.MultidisciplinaryScore)

	fmt.Fprintf(&b, "Category-wise Compliance:\n")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 50))
	for _, c := range report.CategoryCompliance {
		mark := "FAIL"
		if c.Compliant {
			mark = "OK"
		}
		required := fmt.Sprintf("%.0f-%.0f%%", c.MinPercent, c.MaxPercent)
		if c.MaxPercent == 0 {
			required = fmt.Sprintf(">=%.0f%%", c.MinPercent)
		}
		fmt.Fprintf(&b, "[%s] %s: %.1f%% (Required: %s)\n", mark, titleCase(c.Category), c.Percentage, required)
	}

	if len(report.Violations) > 0 {
		fmt.Fprintf(&b, "\nViolations (%d):\n", len(report.Violations))
		fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 50))
		for i, v := range report.Violations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, v)
		}
	}

	if len(report.Recommendations) > 0 {
		fmt.Fprintf(&b, "\nRecommendations:\n")
		fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 50))
		for i, r := range report.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, r)
		}
	}

	if report.CreditDistribution.TheoryHours+report.CreditDistribution.PracticalHours+report.CreditDistribution.InternshipHours > 0 {
		fmt.Fprintf(&b, "\nCredit Distribution:\n")
		fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 50))
		fmt.Fprintf(&b, "Theory: %.1f%%\n", report.CreditDistribution.TheoryPercent)
		fmt.Fprintf(&b, "Practical: %.1f%%\n", report.CreditDistribution.PracticalPercent)
		fmt.Fprintf(&b, "Internship: %.1f%%\n", report.CreditDistribution.InternshipPercent)
	}

	return b.String()
}
