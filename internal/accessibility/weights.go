package accessibility

import (
	"fmt"
	"math"
	"strings"

	"github.com/xkilldash9x/a11y-lighthouse/api/schemas"
)

// ZeroWeightPolicy decides what NormalizeWeights does when all weights are zero.
type ZeroWeightPolicy string

const (
	// ZeroWeightReject fails normalization with ErrZeroTotalWeight.
	ZeroWeightReject ZeroWeightPolicy = "reject"
	// ZeroWeightUniform gives every audit an equal share.
	ZeroWeightUniform ZeroWeightPolicy = "uniform"
)

// ParseZeroWeightPolicy maps a configuration string onto a policy.
// The empty string selects ZeroWeightReject.
func ParseZeroWeightPolicy(s string) (ZeroWeightPolicy, error) {
	switch p := ZeroWeightPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ZeroWeightReject, nil
	case ZeroWeightReject, ZeroWeightUniform:
		return p, nil
	default:
		return "", fmt.Errorf("unknown zero weight policy %q", s)
	}
}

// NormalizeWeights returns a copy of audits whose weights are rescaled to sum
// to 1.0. The input slice is not modified.
func NormalizeWeights(audits []schemas.RawAudit, policy ZeroWeightPolicy) ([]schemas.RawAudit, error) {
	normalized := make([]schemas.RawAudit, len(audits))
	copy(normalized, audits)
	if len(normalized) == 0 {
		return normalized, nil
	}

	var total float64
	for _, a := range normalized {
		if a.Weight < 0 || math.IsNaN(a.Weight) || math.IsInf(a.Weight, 0) {
			return nil, fmt.Errorf("%w: audit %q has weight %v", ErrInvalidWeight, a.ID, a.Weight)
		}
		total += a.Weight
	}
	if math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w: total weight overflows", ErrInvalidWeight)
	}

	if total == 0 {
		if policy != ZeroWeightUniform {
			return nil, fmt.Errorf("normalizing %d audits: %w", len(normalized), ErrZeroTotalWeight)
		}
		share := 1 / float64(len(normalized))
		for i := range normalized {
			normalized[i].Weight = share
		}
		return normalized, nil
	}

	for i := range normalized {
		normalized[i].Weight /= total
	}
	return normalized, nil
}
