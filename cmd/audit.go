package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/a11y-lighthouse/internal/accessibility"
	"github.com/xkilldash9x/a11y-lighthouse/internal/browser"
	"github.com/xkilldash9x/a11y-lighthouse/internal/config"
	"github.com/xkilldash9x/a11y-lighthouse/internal/engine"
	"github.com/xkilldash9x/a11y-lighthouse/internal/lighthouse"
	"github.com/xkilldash9x/a11y-lighthouse/internal/observability"
	"github.com/xkilldash9x/a11y-lighthouse/internal/reporting"
)

// Define function variables for dependency injection/mocking in tests.
var (
	newPageFactory = func(cfg config.BrowserConfig, logger *zap.Logger) engine.PageFactory {
		return func(ctx context.Context, target string, port int) (accessibility.Page, error) {
			page, err := browser.Open(ctx, cfg, target, port, logger)
			if err != nil {
				return nil, err
			}
			return page, nil
		}
	}
	newAuditEngine = func(cfg config.LighthouseConfig, logger *zap.Logger) accessibility.AuditEngine {
		return lighthouse.NewCLIEngine(cfg, logger)
	}
)

func newAuditCmd(a *app) *cobra.Command {
	var output, format string

	auditCmd := &cobra.Command{
		Use:   "audit <url>...",
		Short: "Audits one or more pages for accessibility issues",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()
			cfg := a.cfg

			outFormat, err := reporting.ParseFormat(format)
			if err != nil {
				return err
			}
			runner, err := newRunner(cfg, logger)
			if err != nil {
				return err
			}

			reports, err := runner.Run(ctx, args)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					logger.Warn("Audit aborted", zap.Strings("targets", args))
				}
				return err
			}

			reporter, err := reporting.New(outFormat, output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := reporter.Write(reports); err != nil {
				reporter.Close()
				return err
			}
			if err := reporter.Close(); err != nil {
				return fmt.Errorf("failed to finalize report: %w", err)
			}
			return nil
		},
	}

	auditCmd.Flags().StringVarP(&output, "output", "o", "", "write the report to this file instead of stdout")
	auditCmd.Flags().StringVarP(&format, "format", "f", reporting.FormatJSON, "report format (json, yaml)")
	auditCmd.Flags().Int("concurrency", 1, "number of targets audited at once")
	auditCmd.Flags().String("zero-weight-policy", "reject", "how to treat a zero total weight (reject, uniform)")
	auditCmd.Flags().Bool("headless", true, "run Chrome without a window")

	// Flags override config and environment values when set.
	for key, flag := range map[string]string{
		"engine.concurrency":       "concurrency",
		"audit.zero_weight_policy": "zero-weight-policy",
		"browser.headless":         "headless",
	} {
		_ = a.v.BindPFlag(key, auditCmd.Flags().Lookup(flag))
	}
	return auditCmd
}

// newRunner wires the page and engine collaborators from configuration.
func newRunner(cfg config.Interface, logger *zap.Logger) (*engine.Runner, error) {
	policy, err := accessibility.ParseZeroWeightPolicy(cfg.Audit().ZeroWeightPolicy)
	if err != nil {
		return nil, err
	}
	browserCfg := cfg.Browser()
	return engine.NewRunner(
		newPageFactory(browserCfg, logger),
		newAuditEngine(cfg.Lighthouse(), logger),
		engine.Options{
			Concurrency: cfg.Engine().Concurrency,
			BasePort:    browserCfg.DebuggingPort,
			Policy:      policy,
		},
		logger,
	), nil
}
