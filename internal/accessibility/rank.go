package accessibility

import (
	"sort"

	"github.com/xkilldash9x/a11y-lighthouse/api/schemas"
)

// Rank sorts findings in place: weight descending, then score ascending, then
// unique name ascending so equal entries always come out in the same order.
func Rank(findings []schemas.StandardizedFinding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		return a.UniqueName < b.UniqueName
	})
}
