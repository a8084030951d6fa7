package schemas

// -- Finding Schemas --

// Table is an evidence table. Row 0 is the header; every row is a list of cells.
type Table [][]string

// Header returns the header row, or nil for an empty table.
func (t Table) Header() []string {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// Rows returns the data rows.
func (t Table) Rows() [][]string {
	if len(t) < 2 {
		return nil
	}
	return t[1:]
}

// RawAudit is an accessibility audit with a non-null score, built by merging
// an AuditRef with its AuditResult.
type RawAudit struct {
	ID          string
	Title       string
	Description string
	Weight      float64
	Score       float64
	Details     *Details
}

// StandardizedFinding is a single report entry produced by the pipeline.
type StandardizedFinding struct {
	UniqueName  string  `json:"uniqueName" yaml:"uniqueName"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Score       float64 `json:"score" yaml:"score"`
	// Recommendations is set only when Score < 1.
	Recommendations *string `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	Table           Table   `json:"table,omitempty" yaml:"table,omitempty"`
}

// TargetReport holds the ranked findings for one audited target.
type TargetReport struct {
	Target   string                `json:"target" yaml:"target"`
	RunID    string                `json:"runId" yaml:"runId"`
	Findings []StandardizedFinding `json:"findings" yaml:"findings"`
}
