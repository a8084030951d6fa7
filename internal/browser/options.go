package browser

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/chromedp/chromedp"

	"github.com/xkilldash9x/a11y-lighthouse/internal/config"
)

// launchFlag is a single Chrome command line switch.
type launchFlag struct {
	Name  string
	Value interface{}
}

// launchFlags assembles the switches for a launched browser on top of
// chromedp's defaults.
func launchFlags(cfg config.BrowserConfig, port int, goos string) []launchFlag {
	flags := []launchFlag{
		{"headless", cfg.Headless},
		{"ignore-certificate-errors", cfg.IgnoreTLSErrors},
		{"disable-gpu", cfg.Headless},
		{"disable-extensions", true},
		{"remote-debugging-port", strconv.Itoa(port)},
	}

	// Custom arguments from config.yaml, e.g. "--lang=en-US".
	for _, arg := range cfg.Args {
		parts := strings.SplitN(arg, "=", 2)
		name := strings.TrimPrefix(parts[0], "--")
		if name == "" {
			continue
		}
		if len(parts) == 2 {
			flags = append(flags, launchFlag{name, parts[1]})
		} else {
			flags = append(flags, launchFlag{name, true})
		}
	}

	// Required when running inside containers.
	if goos == "linux" {
		flags = append(flags,
			launchFlag{"no-sandbox", true},
			launchFlag{"disable-dev-shm-usage", true},
		)
	}
	return flags
}

func allocatorOptions(cfg config.BrowserConfig, port int) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	for _, f := range launchFlags(cfg, port, runtime.GOOS) {
		opts = append(opts, chromedp.Flag(f.Name, f.Value))
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	return opts
}
