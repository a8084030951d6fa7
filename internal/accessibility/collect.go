package accessibility

import "github.com/xkilldash9x/a11y-lighthouse/api/schemas"

// CollectAudits walks the accessibility category's audit references and
// returns one RawAudit for every reference whose audit record exists and has
// a score. Reference order is preserved. A report without the category yields
// no audits.
func CollectAudits(report *schemas.AuditReport) []schemas.RawAudit {
	if report == nil {
		return nil
	}
	category, ok := report.Categories[schemas.CategoryAccessibility]
	if !ok {
		return nil
	}

	audits := make([]schemas.RawAudit, 0, len(category.AuditRefs))
	for _, ref := range category.AuditRefs {
		record, ok := report.Audits[ref.ID]
		if !ok || record.Score == nil {
			continue
		}
		audits = append(audits, mergeAudit(ref, record))
	}
	return audits
}

// mergeAudit copies the reference fields, then overwrites them with the
// audit record's fields.
func mergeAudit(ref schemas.AuditRef, record schemas.AuditResult) schemas.RawAudit {
	audit := schemas.RawAudit{
		ID:     ref.ID,
		Weight: ref.Weight,
	}

	if record.ID != "" {
		audit.ID = record.ID
	}
	if record.Weight != nil {
		audit.Weight = *record.Weight
	}
	audit.Title = record.Title
	audit.Description = record.Description
	audit.Score = *record.Score
	audit.Details = record.Details

	return audit
}
