package accessibility

import (
	"fmt"
	"strings"

	"github.com/xkilldash9x/a11y-lighthouse/api/schemas"
)

// explanationHeader labels the extra column added by the single-column expansion.
const explanationHeader = "Explanation"

// BuildTable assembles the evidence table of an audit: a header row followed
// by one row per evidence item. It returns ErrNoEvidence when the audit has no
// items and a wrapped ErrMalformedDetail when the details cannot be rendered.
func BuildTable(audit schemas.RawAudit) (schemas.Table, error) {
	details := audit.Details
	if details == nil || len(details.Items) == 0 {
		return nil, ErrNoEvidence
	}
	if len(details.Headings) == 0 {
		return nil, fmt.Errorf("%w: %d items without headings", ErrMalformedDetail, len(details.Items))
	}

	header := make([]string, 0, len(details.Headings))
	for _, h := range details.Headings {
		header = append(header, h.Title())
	}
	table := schemas.Table{header}

	for i, item := range details.Items {
		if item == nil {
			return nil, fmt.Errorf("%w: item %d is empty", ErrMalformedDetail, i)
		}

		row := make([]string, 0, len(details.Headings))
		for _, h := range details.Headings {
			lines, err := FormatDetail(h, item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}

			if expandSingleColumn(details.Headings, lines) {
				row = append(row, lines...)
				if len(table[0]) == 1 {
					table[0] = append(table[0], explanationHeader)
				}
				continue
			}
			row = append(row, strings.Join(lines, "\n"))
		}
		table = append(table, row)
	}

	return table, nil
}

// expandSingleColumn reports whether a multi-line cell of a one-column table
// is spread across several cells instead of being joined. Only one-column
// tables qualify; wider tables always join.
func expandSingleColumn(headings []schemas.Heading, lines []string) bool {
	return len(headings) == 1 && len(lines) > 1
}
