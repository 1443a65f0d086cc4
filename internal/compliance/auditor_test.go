package compliance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasakgupta/timetable-scheduler/internal/models"
	"github.com/kasakgupta/timetable-scheduler/pkg/config"
)

func testConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		NEPCategories: []config.NEPCategory{
			{Name: "major", MinPercent: 40, MaxPercent: 50, MinCredits: 10},
			{Name: "minor", MinPercent: 20, MaxPercent: 30, MinCredits: 4},
			{Name: "skill", MinPercent: 10, MaxPercent: 20, MinCredits: 2},
			{Name: "ability_enhancement", MinPercent: 8, MaxPercent: 15, MinCredits: 1},
			{Name: "value_added", MinPercent: 5, MaxPercent: 15, MinCredits: 1},
		},
		TeacherEducationMin: config.TeacherEducationMinimums{
			PedagogyPercent:         30,
			SubjectKnowledgePercent: 40,
			PracticumPercent:        20,
			ElectivesPercent:        10,
			PracticumHoursMin:       100,
		},
	}
}

func subject(id string, category models.Category, credits, theory, practical int, department string) models.Subject {
	return models.Subject{
		ID: id, Category: category, Credits: credits,
		TheoryHours: theory, PracticalHours: practical, Department: department,
	}
}

func TestAuditFYUPCompliantCatalogScoresFull(t *testing.T) {
	subjects := map[string]models.Subject{
		"s1": subject("s1", models.CategoryMajor, 9, 6, 0, "math"),
		"s2": subject("s2", models.CategoryMajor, 9, 6, 0, "physics"),
		"s3": subject("s3", models.CategoryMinor, 10, 4, 0, "chemistry"),
		"s4": subject("s4", models.CategorySkill, 6, 0, 4, "math"),
		"s5": subject("s5", models.CategoryAbilityEnhancement, 4, 2, 0, "math"),
		"s6": subject("s6", models.CategoryValueAdded, 3, 2, 0, "math"),
	}

	auditor := New(testConfig())
	report := auditor.Audit("FYUP", subjects)

	require.Len(t, report.CategoryCompliance, 5)
	assert.True(t, report.OverallCompliant)
	assert.Equal(t, float64(100), report.OverallScore)
	assert.Equal(t, float64(100), report.MultidisciplinaryScore)
	assert.True(t, report.CreditDistribution.PracticalPercent > 0)
}

func TestAuditFYUPBelowMinimumRaisesViolation(t *testing.T) {
	subjects := map[string]models.Subject{
		"s1": subject("s1", models.CategoryMajor, 2, 2, 0, "math"),
		"s2": subject("s2", models.CategoryMinor, 2, 2, 0, "math"),
	}

	auditor := New(testConfig())
	report := auditor.Audit("FYUP", subjects)

	assert.False(t, report.OverallCompliant)
	assert.NotEmpty(t, report.Violations)
	assert.NotEmpty(t, report.Recommendations)
}

func TestAuditTeacherEducationPracticumHoursShortfall(t *testing.T) {
	subjects := map[string]models.Subject{
		"s1": subject("s1", models.CategoryPedagogy, 4, 4, 0, "education"),
		"s2": {ID: "s2", Category: models.CategoryPracticum, Credits: 4, PracticalHours: 10, Department: "education"},
		"s3": subject("s3", "SUBJECT_KNOWLEDGE", 4, 4, 0, "education"),
	}

	auditor := New(testConfig())
	report := auditor.Audit("B.Ed.", subjects)

	assert.Less(t, report.PracticumHours, 100)
	found := false
	for _, v := range report.Violations {
		if strings.Contains(v, "Teaching practice hours insufficient") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAuditUnknownProgramTypeYieldsEmptyReport(t *testing.T) {
	auditor := New(testConfig())
	report := auditor.Audit("PhD", map[string]models.Subject{})
	assert.Empty(t, report.CategoryCompliance)
	assert.Equal(t, float64(0), report.OverallScore)
}

func TestSummarizeIncludesScoreAndCategories(t *testing.T) {
	auditor := New(testConfig())
	report := auditor.Audit("FYUP", map[string]models.Subject{
		"s1": subject("s1", models.CategoryMajor, 20, 10, 0, "math"),
	})

	out := Summarize(report)
	assert.Contains(t, out, "NEP 2020 Compliance Report")
	assert.Contains(t, out, "Major")
}
