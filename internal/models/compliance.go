package models

// CategoryCompliance is the NEP check result for one FYUP/ITEP credit
// category or one B.Ed./M.Ed. course-type bucket.
type CategoryCompliance struct {
	Category        string  `json:"category"`
	Credits         int     `json:"credits"`
	Percentage      float64 `json:"percentage"`
	MinPercent      float64 `json:"min_percent"`
	MaxPercent      float64 `json:"max_percent"`
	MinCredits      int     `json:"min_credits"`
	Compliant       bool    `json:"compliant"`
}

// CreditDistribution summarizes theory/practical/internship hour totals
// across the subject catalog used for a run.
type CreditDistribution struct {
	TheoryHours      int     `json:"theory_hours"`
	PracticalHours   int     `json:"practical_hours"`
	InternshipHours  int     `json:"internship_hours"`
	TheoryPercent    float64 `json:"theory_percent"`
	PracticalPercent float64 `json:"practical_percent"`
	InternshipPercent float64 `json:"internship_percent"`
}

// ComplianceReport is the final output of the auditor for one program
// profile (FYUP, ITEP, B.Ed., or M.Ed.).
type ComplianceReport struct {
	ProgramType           string                `json:"program_type"`
	OverallCompliant      bool                  `json:"overall_compliant"`
	OverallScore          float64               `json:"overall_score"`
	CategoryCompliance    []CategoryCompliance  `json:"category_compliance"`
	Violations            []string              `json:"violations"`
	Recommendations       []string              `json:"recommendations"`
	CreditDistribution    CreditDistribution    `json:"credit_distribution"`
	MultidisciplinaryScore float64              `json:"multidisciplinary_score"`
	PracticumHours        int                   `json:"practicum_hours,omitempty"`
}
