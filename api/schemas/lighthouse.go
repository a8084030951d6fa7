package schemas

// -- Lighthouse Report Schemas --
//
// Only the subset of the Lighthouse Result (LHR) object that the accessibility
// pipeline reads is modeled here. Unknown fields are ignored on decode.

// CategoryAccessibility is the LHR category key for accessibility audits.
const CategoryAccessibility = "accessibility"

// OutputFormatJSON asks the engine for a machine-readable report.
const OutputFormatJSON = "json"

// AuditOptions are the per-run settings handed to an audit engine.
type AuditOptions struct {
	// Port is the remote-debugging port of the browser the engine attaches to.
	Port int
	// OutputFormat is the report format requested from the engine ("json").
	OutputFormat string
	// Categories restricts the engine to the listed categories.
	Categories []string
}

// AuditReport is the decoded engine report.
type AuditReport struct {
	LighthouseVersion string                 `json:"lighthouseVersion"`
	RequestedURL      string                 `json:"requestedUrl"`
	FinalURL          string                 `json:"finalUrl"`
	FetchTime         string                 `json:"fetchTime"`
	Categories        map[string]Category    `json:"categories"`
	Audits            map[string]AuditResult `json:"audits"`
}

// Category groups references to the audits that contribute to its score.
type Category struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Score     *float64   `json:"score"`
	AuditRefs []AuditRef `json:"auditRefs"`
}

// AuditRef points at an audit and carries its weight within the category.
type AuditRef struct {
	ID     string  `json:"id"`
	Weight float64 `json:"weight"`
	Group  string  `json:"group,omitempty"`
}

// AuditResult is a single audit record. A nil Score means the audit was not
// applicable, errored, or is informative only.
type AuditResult struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Score            *float64 `json:"score"`
	ScoreDisplayMode string   `json:"scoreDisplayMode,omitempty"`
	// Weight is normally carried by the AuditRef; when the record has one it wins.
	Weight  *float64 `json:"weight,omitempty"`
	Details *Details `json:"details,omitempty"`
}

// Details is the evidence payload of an audit.
type Details struct {
	Type     string    `json:"type,omitempty"`
	Headings []Heading `json:"headings"`
	Items    []Item    `json:"items"`
}

// Heading describes one column of an audit's evidence table.
type Heading struct {
	Key       string `json:"key"`
	ValueType string `json:"valueType,omitempty"`
	// ItemType is the older name for ValueType used by opportunity tables.
	ItemType string `json:"itemType,omitempty"`
	Text     string `json:"text,omitempty"`
	Label    string `json:"label,omitempty"`
}

// Type returns the declared value type of the column.
func (h Heading) Type() string {
	if h.ValueType != "" {
		return h.ValueType
	}
	return h.ItemType
}

// Title returns the display text for the column header.
func (h Heading) Title() string {
	if h.Text != "" {
		return h.Text
	}
	return h.Label
}

// Item maps a column key to a raw value. Values are primitives or objects
// (map[string]any) with optional snippet, selector and explanation fields.
type Item map[string]any
