package accessibility

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/a11y-lighthouse/api/schemas"
)

// Page is the browser page under audit.
type Page interface {
	// URL returns the page's current navigable URL.
	URL(ctx context.Context) (string, error)
	// DebuggerEndpoint returns the browser's remote-debugging endpoint URL.
	DebuggerEndpoint() string
}

// AuditEngine runs an audit against a URL through the browser listening on opts.Port.
type AuditEngine interface {
	RunAudit(ctx context.Context, url string, opts schemas.AuditOptions) (*schemas.AuditReport, error)
}

// AuditEngineFunc adapts a plain function to AuditEngine.
type AuditEngineFunc func(ctx context.Context, url string, opts schemas.AuditOptions) (*schemas.AuditReport, error)

// RunAudit implements AuditEngine.
func (f AuditEngineFunc) RunAudit(ctx context.Context, url string, opts schemas.AuditOptions) (*schemas.AuditReport, error) {
	return f(ctx, url, opts)
}

// closer is implemented by pages that own resources.
type closer interface {
	Close(ctx context.Context) error
}

// Tool runs the accessibility audit pipeline for a single page.
// A Tool is not safe for concurrent use; give each run its own Tool.
type Tool struct {
	page      Page
	engine    AuditEngine
	policy    ZeroWeightPolicy
	formatter *Formatter
	logger    *zap.Logger

	runID   string
	results []schemas.StandardizedFinding
}

// NewTool creates a Tool for page backed by engine.
func NewTool(page Page, engine AuditEngine, policy ZeroWeightPolicy, logger *zap.Logger) *Tool {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("tool")
	return &Tool{
		page:      page,
		engine:    engine,
		policy:    policy,
		formatter: NewFormatter(logger),
		logger:    logger,
	}
}

// Run invokes the engine and replaces the results with the ranked findings.
// Engine errors abort the run; previous results are discarded either way.
func (t *Tool) Run(ctx context.Context) error {
	t.results = nil
	t.runID = uuid.NewString()
	logger := t.logger.With(zap.String("run_id", t.runID))

	target, err := t.page.URL(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve page URL: %w", err)
	}
	port, err := endpointPort(t.page.DebuggerEndpoint())
	if err != nil {
		return err
	}

	logger.Info("Running accessibility audit", zap.String("url", target), zap.Int("port", port))

	report, err := t.engine.RunAudit(ctx, target, schemas.AuditOptions{
		Port:         port,
		OutputFormat: schemas.OutputFormatJSON,
		Categories:   []string{schemas.CategoryAccessibility},
	})
	if err != nil {
		return fmt.Errorf("audit engine failed for %s: %w", target, err)
	}

	audits := CollectAudits(report)
	logger.Debug("Collected scored audits", zap.Int("count", len(audits)))

	normalized, err := NormalizeWeights(audits, t.policy)
	if err != nil {
		return fmt.Errorf("failed to normalize audit weights: %w", err)
	}

	findings := t.formatter.Format(normalized)
	Rank(findings)
	t.results = findings

	logger.Info("Accessibility audit complete", zap.Int("findings", len(findings)))
	return nil
}

// Results returns a copy of the ranked findings from the last successful run.
func (t *Tool) Results() []schemas.StandardizedFinding {
	if t.results == nil {
		return nil
	}
	out := make([]schemas.StandardizedFinding, len(t.results))
	copy(out, t.results)
	return out
}

// RunID identifies the last run for log correlation.
func (t *Tool) RunID() string {
	return t.runID
}

// Cleanup releases the page when it owns resources.
func (t *Tool) Cleanup(ctx context.Context) error {
	if c, ok := t.page.(closer); ok {
		return c.Close(ctx)
	}
	return nil
}

// endpointPort extracts the port number from a remote-debugging endpoint URL.
func endpointPort(endpoint string) (int, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidEndpoint, endpoint, err)
	}
	raw := u.Port()
	if raw == "" {
		return 0, fmt.Errorf("%w: %q has no port", ErrInvalidEndpoint, endpoint)
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%w: %q has port %q", ErrInvalidEndpoint, endpoint, raw)
	}
	return port, nil
}
