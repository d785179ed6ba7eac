// Package browser implements the studio.RemoteUI capability on top of a real
// Chrome session reached over the DevTools protocol. It attaches to an
// already-running Chrome with remote debugging enabled, optionally launching
// one first.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"yt-studio-uploader/internal/studio"
)

const DefaultDebuggerURL = "http://127.0.0.1:9222"

// Options configures how a browser session is acquired.
type Options struct {
	// DebuggerURL is the DevTools endpoint of a Chrome started with
	// --remote-debugging-port. Defaults to DefaultDebuggerURL.
	DebuggerURL string
	// ChromePath overrides the per-OS default Chrome binary, used only
	// when LaunchChrome is set.
	ChromePath string
	// LaunchChrome starts a local Chrome with remote debugging before
	// attaching.
	LaunchChrome bool
	// StartupWait is how long to give a freshly launched Chrome before
	// attaching. Defaults to 4 seconds, matching Chrome's usual cold start.
	StartupWait time.Duration
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.DebuggerURL) == "" {
		o.DebuggerURL = DefaultDebuggerURL
	}
	if o.StartupWait <= 0 {
		o.StartupWait = 4 * time.Second
	}
	return o
}

// Session is the single owned browser handle for the whole process. It is
// acquired once at startup and released exactly once via Close, regardless
// of how many jobs ran.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	closeOnce   sync.Once
}

// Connect attaches to the Chrome debugger endpoint and verifies the session
// is usable. When opts.LaunchChrome is set, a local Chrome is started first.
func Connect(ctx context.Context, opts Options) (*Session, error) {
	opts = opts.withDefaults()

	if opts.LaunchChrome {
		if err := launchChrome(opts); err != nil {
			return nil, err
		}
	}

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, opts.DebuggerURL)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// Handshake with a bounded wait so a dead endpoint fails fast instead
	// of hanging the whole startup.
	probeCtx, probeCancel := context.WithTimeout(browserCtx, 15*time.Second)
	defer probeCancel()
	if err := chromedp.Run(probeCtx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("attach to chrome debugger at %s: %w", opts.DebuggerURL, err)
	}

	return &Session{
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
	}, nil
}

// Close releases the debugger connection. Safe to call more than once; only
// the first call does anything.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.allocCancel()
	})
}

var _ studio.RemoteUI = (*Session)(nil)

// selOpt picks the chromedp selector strategy: XPath expressions start with
// "//", everything else is a CSS query.
func selOpt(selector string) chromedp.QueryOption {
	if strings.HasPrefix(selector, "//") {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	runCtx, cancel := s.bind(ctx, 0)
	defer cancel()
	if err := chromedp.Run(runCtx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

func (s *Session) Click(ctx context.Context, selector string, timeout time.Duration) error {
	runCtx, cancel := s.bind(ctx, timeout)
	defer cancel()
	err := chromedp.Run(runCtx,
		chromedp.WaitVisible(selector, selOpt(selector)),
		chromedp.Click(selector, selOpt(selector)),
	)
	if err == nil {
		return nil
	}
	// An overlay can intercept the regular click; a JavaScript click
	// bypasses it (CSS selectors only).
	if !strings.HasPrefix(selector, "//") && !errors.Is(err, context.Canceled) {
		jsCtx, jsCancel := s.bind(ctx, timeout)
		defer jsCancel()
		js := fmt.Sprintf(`document.querySelector(%q).click()`, selector)
		if jsErr := chromedp.Run(jsCtx, chromedp.Evaluate(js, nil)); jsErr == nil {
			return nil
		}
	}
	return classify(fmt.Errorf("click %s: %w", selector, err))
}

func (s *Session) Type(ctx context.Context, selector, text string, timeout time.Duration) error {
	runCtx, cancel := s.bind(ctx, timeout)
	defer cancel()
	err := chromedp.Run(runCtx,
		chromedp.WaitVisible(selector, selOpt(selector)),
		chromedp.Clear(selector, selOpt(selector)),
		chromedp.SendKeys(selector, text, selOpt(selector)),
	)
	if err != nil {
		return classify(fmt.Errorf("type into %s: %w", selector, err))
	}
	return nil
}

func (s *Session) SetFileInput(ctx context.Context, selector, path string, timeout time.Duration) error {
	runCtx, cancel := s.bind(ctx, timeout)
	defer cancel()
	err := chromedp.Run(runCtx,
		chromedp.SetUploadFiles(selector, []string{path}, selOpt(selector)),
	)
	if err != nil {
		return classify(fmt.Errorf("set file input %s: %w", selector, err))
	}
	return nil
}

func (s *Session) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	runCtx, cancel := s.bind(ctx, timeout)
	defer cancel()
	if err := chromedp.Run(runCtx, chromedp.WaitVisible(selector, selOpt(selector))); err != nil {
		return fmt.Errorf("wait for %s: %w", selector, err)
	}
	return nil
}

func (s *Session) Text(ctx context.Context, selector string, timeout time.Duration) (string, error) {
	runCtx, cancel := s.bind(ctx, timeout)
	defer cancel()
	var out string
	if err := chromedp.Run(runCtx, chromedp.Text(selector, &out, selOpt(selector))); err != nil {
		return "", classify(fmt.Errorf("read text of %s: %w", selector, err))
	}
	return out, nil
}

func (s *Session) ScrollBy(ctx context.Context, selector string, pixels int, timeout time.Duration) error {
	if strings.HasPrefix(selector, "//") {
		return fmt.Errorf("scroll requires a CSS selector, got %q", selector)
	}
	runCtx, cancel := s.bind(ctx, timeout)
	defer cancel()
	js := fmt.Sprintf(`document.querySelector(%q).scrollTop += %d`, selector, pixels)
	if err := chromedp.Run(runCtx, chromedp.Evaluate(js, nil)); err != nil {
		return classify(fmt.Errorf("scroll %s: %w", selector, err))
	}
	return nil
}

// bind merges the caller's cancellation with the session's browser context
// and applies the per-call timeout when one is given.
func (s *Session) bind(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(s.ctx)
	stop := context.AfterFunc(ctx, cancel)
	if timeout <= 0 {
		return runCtx, func() { stop(); cancel() }
	}
	tctx, tcancel := context.WithTimeout(runCtx, timeout)
	return tctx, func() { stop(); tcancel(); cancel() }
}

// classify marks the errors chromedp produces for elements that have not
// rendered yet as retryable, so the machine's backoff gets a chance before
// the stage is declared failed.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return studio.Retryable(err)
	}
	msg := err.Error()
	if strings.Contains(msg, "could not find node") ||
		strings.Contains(msg, "node not visible") ||
		strings.Contains(msg, "Could not find node with given id") {
		return studio.Retryable(err)
	}
	return err
}
