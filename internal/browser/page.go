// internal/browser/page.go
package browser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/a11y-lighthouse/internal/config"
)

// launchTimeout bounds how long Chrome may take to expose its debugging endpoint.
const launchTimeout = 30 * time.Second

// ChromePage is a Chrome tab opened on the audit target. The audit engine
// attaches to the same browser through DebuggerEndpoint.
type ChromePage struct {
	logger   *zap.Logger
	endpoint string

	allocCancel context.CancelFunc
	tabCtx      context.Context
	tabCancel   context.CancelFunc

	closeOnce sync.Once
}

// Open launches (or attaches to) Chrome, navigates a tab to target and
// resolves the browser's websocket endpoint. port is the remote-debugging
// port for a launched browser and is ignored when cfg.RemoteURL is set.
func Open(ctx context.Context, cfg config.BrowserConfig, target string, port int, logger *zap.Logger) (*ChromePage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &ChromePage{logger: logger.Named("chrome_page").With(zap.String("target", target))}

	var allocCtx context.Context
	if cfg.RemoteURL != "" {
		allocCtx, p.allocCancel = chromedp.NewRemoteAllocator(ctx, cfg.RemoteURL)
		p.endpoint = cfg.RemoteURL
	} else {
		allocCtx, p.allocCancel = chromedp.NewExecAllocator(ctx, allocatorOptions(cfg, port)...)
	}

	// The first Run on the tab context starts the browser; it must not carry a timeout.
	p.tabCtx, p.tabCancel = chromedp.NewContext(allocCtx)
	if err := chromedp.Run(p.tabCtx, p.logVersion()); err != nil {
		p.close()
		return nil, fmt.Errorf("browser failed to start or respond: %w", err)
	}

	if p.endpoint == "" {
		discoverCtx, cancel := context.WithTimeout(ctx, launchTimeout)
		endpoint, err := discoverEndpoint(discoverCtx, http.DefaultClient, "http://127.0.0.1:"+strconv.Itoa(port))
		cancel()
		if err != nil {
			p.close()
			return nil, err
		}
		p.endpoint = endpoint
	}

	navCtx, cancel := context.WithTimeout(p.tabCtx, navigationTimeout(cfg))
	defer cancel()
	if err := chromedp.Run(navCtx, chromedp.Navigate(target)); err != nil {
		p.close()
		return nil, fmt.Errorf("failed to navigate to %s: %w", target, err)
	}

	p.logger.Info("Page ready", zap.String("endpoint", p.endpoint))
	return p, nil
}

// URL returns the tab's current location, after any redirects.
func (p *ChromePage) URL(ctx context.Context) (string, error) {
	var location string
	if err := chromedp.Run(p.tabCtx, chromedp.Location(&location)); err != nil {
		return "", fmt.Errorf("failed to read page location: %w", err)
	}
	return location, nil
}

// DebuggerEndpoint returns the browser's websocket debugging URL.
func (p *ChromePage) DebuggerEndpoint() string {
	return p.endpoint
}

// Close shuts the tab and, for launched browsers, the browser process.
func (p *ChromePage) Close(ctx context.Context) error {
	var err error
	p.closeOnce.Do(func() {
		err = chromedp.Cancel(p.tabCtx)
		p.tabCancel()
		p.allocCancel()
		p.logger.Debug("Page closed")
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to close browser tab: %w", err)
	}
	return nil
}

func (p *ChromePage) close() {
	_ = p.Close(context.Background())
}

func (p *ChromePage) logVersion() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		protocol, product, _, _, _, err := cdpbrowser.GetVersion().Do(ctx)
		if err != nil {
			return err
		}
		p.logger.Debug("Browser attached", zap.String("product", product), zap.String("protocol", protocol))
		return nil
	})
}

func navigationTimeout(cfg config.BrowserConfig) time.Duration {
	if cfg.NavigationTimeout > 0 {
		return cfg.NavigationTimeout
	}
	return 60 * time.Second
}

// versionInfo is the subset of Chrome's /json/version response we read.
type versionInfo struct {
	Browser              string `json:"Browser"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// discoverEndpoint asks the DevTools HTTP handler at base for the browser websocket URL.
func discoverEndpoint(ctx context.Context, client *http.Client, base string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(base, "/")+"/json/version", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build endpoint request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to query DevTools endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("DevTools endpoint returned status %d", resp.StatusCode)
	}

	var info versionInfo
	if err := jsoniter.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("failed to decode DevTools version: %w", err)
	}
	if info.WebSocketDebuggerURL == "" {
		return "", fmt.Errorf("DevTools endpoint did not report a websocket URL")
	}
	return info.WebSocketDebuggerURL, nil
}
