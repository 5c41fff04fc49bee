// Package browser drives a headless go-rod browser through a Prepare
// stage (click-listener interception, DOM annotation) and exposes a single
// outerHTML snapshot for the pure-Go Walk/Compress/Render stages to parse:
// Prepare mutates the live DOM, then the host reads one outerHTML string
// and never touches the browser again until the next navigation.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clawome/clawome/internal/config"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// PageHandle is the host's view of a live page: enough to run Prepare, read
// a snapshot, and execute node-addressed actions (internal/action).
type PageHandle interface {
	// Prepare runs the click-listener/icon/clone/switchable-group
	// annotation pass against the live DOM.
	Prepare(ctx context.Context, cfg *config.Config) error
	// Snapshot returns the current document's outerHTML.
	Snapshot(ctx context.Context) (string, error)
	// Eval runs an arbitrary JS expression and decodes its JSON result
	// into out (used by internal/action to act on a resolved selector).
	Eval(ctx context.Context, js string, args []any, out any) error
	// Navigate loads url and waits for the page to settle.
	Navigate(ctx context.Context, url string) error
	// URL returns the current document location.
	URL(ctx context.Context) (string, error)
	// Screenshot captures the current viewport as PNG bytes, used by
	// internal/record to build a session GIF.
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}

// RodPage is the go-rod-backed PageHandle.
type RodPage struct {
	browser *rod.Browser
	page    *rod.Page
}

// Options configures browser launch, mirroring crawler.Options.
type Options struct {
	Width, Height int
	NavTimeout    time.Duration
	SettleTimeout time.Duration
	ProfileDir    string
	Headless      bool
}

func DefaultOptions() Options {
	return Options{
		Width: 1440, Height: 900,
		NavTimeout:    30 * time.Second,
		SettleTimeout: 5 * time.Second,
		Headless:      true,
	}
}

// Launch starts a browser and opens a blank page with the click
// interceptor installed as a new-document script, before any page script
// can run.
func Launch(opts Options) (*RodPage, error) {
	path, _ := launcher.LookPath()
	l := launcher.New().Bin(path).Headless(opts.Headless)
	if opts.ProfileDir != "" {
		l = l.UserDataDir(opts.ProfileDir)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}); err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}
	if _, err := page.EvalOnNewDocument(clickInterceptorScript); err != nil {
		return nil, fmt.Errorf("install click interceptor: %w", err)
	}
	return &RodPage{browser: b, page: page}, nil
}

func (p *RodPage) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}
	page.Timeout(5 * time.Second).WaitRequestIdle(500*time.Millisecond, nil, nil, nil)()
	waitForInteractiveElements(page, 5*time.Second)
	return nil
}

func (p *RodPage) URL(ctx context.Context) (string, error) {
	res, err := p.page.Context(ctx).Eval(`() => window.location.href`)
	if err != nil {
		return "", err
	}
	return res.Value.String(), nil
}

// Prepare evaluates prepareScriptTemplate with cfg's icon/clone/state hints
// substituted in. Prepare-level failures (e.g. the page navigated away
// mid-eval) fail the whole extraction; probes inside the script are
// individually try/catch-guarded in JS itself.
func (p *RodPage) Prepare(ctx context.Context, cfg *config.Config) error {
	jsCfg := buildPrepareConfig(cfg)
	_, err := p.page.Context(ctx).Eval(prepareScriptTemplate, jsCfg)
	if err != nil {
		return fmt.Errorf("prepare dom: %w", err)
	}
	return nil
}

func (p *RodPage) Snapshot(ctx context.Context) (string, error) {
	res, err := p.page.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("snapshot outerHTML: %w", err)
	}
	return res.Value.String(), nil
}

func (p *RodPage) Eval(ctx context.Context, js string, args []any, out any) error {
	res, err := p.page.Context(ctx).Eval(js, args...)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	raw, err := res.Value.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// Screenshot returns raw PNG bytes instead of a decoded image.Image so
// PageHandle stays free of an image-library dependency; internal/record
// decodes it.
func (p *RodPage) Screenshot(ctx context.Context) ([]byte, error) {
	quality := 90
	data, err := p.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatPng,
		Quality: &quality,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return data, nil
}

func (p *RodPage) Close() error {
	if p.page != nil {
		p.page.Close()
	}
	if p.browser != nil {
		return p.browser.Close()
	}
	return nil
}

// waitForInteractiveElements polls until at least one visible interactive
// element appears, covering SPA hydration that finishes after WaitLoad.
func waitForInteractiveElements(page *rod.Page, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		res, err := page.Eval(`() => {
			const sels = 'button, [role="button"], input[type="submit"], a[href], input:not([type="hidden"]), textarea, select'
			let visible = 0
			document.querySelectorAll(sels).forEach(el => { if (el.offsetParent) visible++ })
			return visible
		}`)
		if err == nil && res.Value.Int() > 0 {
			time.Sleep(200 * time.Millisecond)
			return
		}
		time.Sleep(150 * time.Millisecond)
	}
}

// buildPrepareConfig assembles the JS-bound config object prepareScriptTemplate
// expects.
func buildPrepareConfig(cfg *config.Config) map[string]any {
	return map[string]any{
		"prefixRe":       joinAlt(cfg.IconPrefixes),
		"materialRe":     materialRegex(cfg.MaterialClasses),
		"semantic":       cfg.SemanticKeywords,
		"cloneSel":       joinComma(cfg.CloneSelectors),
		"stateClasses":   cfg.StateClasses,
		"grayTextMinRgb": cfg.GrayTextMinRGB,
		"grayTextMaxDiff": cfg.GrayTextMaxDiff,
	}
}

func joinAlt(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += "|"
		}
		out += s
	}
	return out
}

func joinComma(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

// materialRegex turns "material-icons" style class names into a JS regex
// alternation tolerant of the "_"/"-" variants Material Design ships under.
func materialRegex(classes []string) string {
	out := ""
	for i, c := range classes {
		if i > 0 {
			out += "|"
		}
		for _, ch := range c {
			if ch == '-' {
				out += "[_-]"
			} else {
				out += string(ch)
			}
		}
	}
	return out
}
