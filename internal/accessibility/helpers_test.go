package accessibility

import "github.com/xkilldash9x/a11y-lighthouse/api/schemas"

// score returns a pointer for the nullable score fields of the report schema.
func score(v float64) *float64 { return &v }

func rawAudit(id string, weight, scoreValue float64, details *schemas.Details) schemas.RawAudit {
	return schemas.RawAudit{
		ID:          id,
		Title:       "Title of " + id,
		Description: "Description of " + id,
		Weight:      weight,
		Score:       scoreValue,
		Details:     details,
	}
}
