package reporting

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/xkilldash9x/a11y-lighthouse/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Reporter writes audit reports to an output.
type Reporter interface {
	// Write encodes the reports as one document.
	Write(reports []schemas.TargetReport) error
	// Close releases the underlying output (e.g., file handles).
	Close() error
}

// nopWriteCloser wraps an io.Writer and provides a no-op Close method.
type nopWriteCloser struct {
	io.Writer
}

func (nwc *nopWriteCloser) Close() error {
	return nil
}

// ParseFormat normalizes a format name, accepting "yml" for YAML.
func ParseFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// New creates a reporter for format writing to outputPath. An empty path or
// "stdout" writes to stdout, or os.Stdout when stdout is nil.
func New(format, outputPath string, stdout io.Writer) (Reporter, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	var writer io.WriteCloser
	if outputPath == "" || outputPath == "stdout" {
		if stdout == nil {
			stdout = os.Stdout
		}
		writer = &nopWriteCloser{stdout}
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
		}
		writer = f
	}
	return NewWithWriter(format, writer), nil
}

// NewWithWriter creates a reporter for an already parsed format. The reporter
// takes ownership of w.
func NewWithWriter(format string, w io.WriteCloser) Reporter {
	return &encodingReporter{format: format, w: w}
}

type encodingReporter struct {
	mu     sync.Mutex
	format string
	w      io.WriteCloser
}

func (r *encodingReporter) Write(reports []schemas.TargetReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reports == nil {
		reports = []schemas.TargetReport{}
	}

	switch r.format {
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("failed to encode YAML report: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("failed to encode JSON report: %w", err)
		}
		return nil
	}
}

func (r *encodingReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.w.Close()
}
