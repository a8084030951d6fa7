// Package lighthouse drives the Lighthouse CLI as the accessibility audit engine.
package lighthouse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/a11y-lighthouse/api/schemas"
	"github.com/xkilldash9x/a11y-lighthouse/internal/config"
)

// stderrTailLimit bounds how much of the CLI's stderr is quoted in errors.
const stderrTailLimit = 2048

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Allows mocking the process launch in tests.
var execCommandContext = exec.CommandContext

// CLIEngine runs audits through the lighthouse command line tool, attaching
// it to an existing browser over the remote-debugging port.
type CLIEngine struct {
	binary  string
	flags   []string
	timeout time.Duration
	logger  *zap.Logger
}

// NewCLIEngine creates an engine from configuration.
func NewCLIEngine(cfg config.LighthouseConfig, logger *zap.Logger) *CLIEngine {
	return &CLIEngine{
		binary:  cfg.Binary,
		flags:   cfg.Flags,
		timeout: cfg.Timeout,
		logger:  logger.Named("lighthouse"),
	}
}

// RunAudit executes lighthouse against url and decodes its JSON report.
func (e *CLIEngine) RunAudit(ctx context.Context, url string, opts schemas.AuditOptions) (*schemas.AuditReport, error) {
	args, err := buildArgs(url, opts, e.flags)
	if err != nil {
		return nil, err
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := execCommandContext(ctx, e.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("Starting lighthouse", zap.String("binary", e.binary), zap.Strings("args", args))
	start := time.Now()

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("lighthouse did not finish: %w", ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("lighthouse exited with code %d: %s: %w", exitErr.ExitCode(), stderrTail(stderr.String()), err)
		}
		return nil, fmt.Errorf("failed to run lighthouse: %w", err)
	}

	e.logger.Debug("Lighthouse finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.String("report_size", FormatBytes(int64(stdout.Len()))),
	)

	report, err := DecodeReport(stdout.Bytes())
	if err != nil {
		return nil, err
	}
	return report, nil
}

// buildArgs assembles the lighthouse command line. Extra flags come last so
// configuration can add settings, but the category and output flags are fixed.
func buildArgs(url string, opts schemas.AuditOptions, extra []string) ([]string, error) {
	if url == "" {
		return nil, fmt.Errorf("lighthouse: target URL is required")
	}
	if opts.Port <= 0 {
		return nil, fmt.Errorf("lighthouse: invalid debugging port %d", opts.Port)
	}
	format := opts.OutputFormat
	if format == "" {
		format = schemas.OutputFormatJSON
	}
	if format != schemas.OutputFormatJSON {
		return nil, fmt.Errorf("lighthouse: unsupported output format %q", format)
	}

	args := []string{
		url,
		"--port=" + strconv.Itoa(opts.Port),
		"--output=" + format,
		"--output-path=stdout",
		"--quiet",
	}
	if len(opts.Categories) > 0 {
		args = append(args, "--only-categories="+strings.Join(opts.Categories, ","))
	}
	return append(args, extra...), nil
}

// DecodeReport parses a Lighthouse JSON report.
func DecodeReport(data []byte) (*schemas.AuditReport, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("lighthouse produced an empty report")
	}
	var report schemas.AuditReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode lighthouse report: %w", err)
	}
	return &report, nil
}

func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrTailLimit {
		s = "..." + s[len(s)-stderrTailLimit:]
	}
	if s == "" {
		return "no output"
	}
	return s
}

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes renders a byte count with 1024-based units and at most two decimals.
func FormatBytes(n int64) string {
	if n == 0 {
		return "0 Bytes"
	}
	value := float64(n)
	i := 0
	for value >= 1024 && i < len(byteUnits)-1 {
		value /= 1024
		i++
	}
	return trimDecimals(value) + " " + byteUnits[i]
}

func trimDecimals(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
