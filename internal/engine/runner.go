package engine

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/a11y-lighthouse/api/schemas"
	"github.com/xkilldash9x/a11y-lighthouse/internal/accessibility"
)

// PageFactory opens a browser page on target. port is the debugging port
// reserved for this target; no two concurrent targets share one.
type PageFactory func(ctx context.Context, target string, port int) (accessibility.Page, error)

// Runner audits a batch of targets, each with its own page and Tool.
type Runner struct {
	pages       PageFactory
	engine      accessibility.AuditEngine
	policy      accessibility.ZeroWeightPolicy
	concurrency int
	basePort    int
	logger      *zap.Logger
}

// Options configures a Runner.
type Options struct {
	Concurrency int
	BasePort    int
	Policy      accessibility.ZeroWeightPolicy
}

// NewRunner creates a Runner.
func NewRunner(pages PageFactory, engine accessibility.AuditEngine, opts Options, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Runner{
		pages:       pages,
		engine:      engine,
		policy:      opts.Policy,
		concurrency: concurrency,
		basePort:    opts.BasePort,
		logger:      logger.Named("runner"),
	}
}

// Run audits every target and returns one report per target in input order.
// The first failure cancels the remaining audits and is returned.
func (r *Runner) Run(ctx context.Context, targets []string) ([]schemas.TargetReport, error) {
	for _, target := range targets {
		if err := validateTarget(target); err != nil {
			return nil, err
		}
	}

	reports := make([]schemas.TargetReport, len(targets))
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	r.logger.Info("Starting audits", zap.Int("targets", len(targets)), zap.Int("concurrency", r.concurrency))

	for i, target := range targets {
		g.Go(func() error {
			report, err := r.audit(groupCtx, target, r.basePort+i)
			if err != nil {
				return fmt.Errorf("audit of %s failed: %w", target, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	r.logger.Info("Audits complete", zap.Int("targets", len(targets)))
	return reports, nil
}

func (r *Runner) audit(ctx context.Context, target string, port int) (report schemas.TargetReport, err error) {
	if ctx.Err() != nil {
		return report, ctx.Err()
	}

	page, err := r.pages(ctx, target, port)
	if err != nil {
		return report, fmt.Errorf("failed to open page: %w", err)
	}

	tool := accessibility.NewTool(page, r.engine, r.policy, r.logger)
	defer func() {
		// Cleanup runs on its own context so a cancelled group still releases the browser.
		if cerr := tool.Cleanup(context.WithoutCancel(ctx)); cerr != nil {
			r.logger.Warn("Failed to release page", zap.String("target", target), zap.Error(cerr))
		}
	}()

	if err := tool.Run(ctx); err != nil {
		return report, err
	}

	return schemas.TargetReport{
		Target:   target,
		RunID:    tool.RunID(),
		Findings: tool.Results(),
	}, nil
}

func validateTarget(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid target %q: %w", target, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("target %q is not an absolute URL", target)
	}
	return nil
}
