package accessibility

import (
	"errors"

	"go.uber.org/zap"

	"github.com/xkilldash9x/a11y-lighthouse/api/schemas"
)

// Formatter maps normalized audits onto report findings.
type Formatter struct {
	logger *zap.Logger
}

// NewFormatter creates a Formatter. A nil logger disables logging.
func NewFormatter(logger *zap.Logger) *Formatter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Formatter{logger: logger.Named("formatter")}
}

// Format produces one finding per audit, in input order.
func (f *Formatter) Format(audits []schemas.RawAudit) []schemas.StandardizedFinding {
	findings := make([]schemas.StandardizedFinding, 0, len(audits))
	for _, audit := range audits {
		findings = append(findings, f.formatOne(audit))
	}
	return findings
}

func (f *Formatter) formatOne(audit schemas.RawAudit) schemas.StandardizedFinding {
	finding := schemas.StandardizedFinding{
		UniqueName:  audit.ID,
		Title:       audit.Title,
		Description: audit.Description,
		Weight:      audit.Weight,
		Score:       audit.Score,
	}

	if audit.Score < 1 {
		recommendations := audit.Description
		finding.Recommendations = &recommendations
	}

	table, err := BuildTable(audit)
	switch {
	case err == nil:
		finding.Table = table
	case errors.Is(err, ErrNoEvidence):
	default:
		f.logger.Debug("Dropping evidence table", zap.String("audit", audit.ID), zap.Error(err))
	}

	return finding
}
