// Package browser drives a real Chromium instance through go-rod and
// implements the page operations the purchase flow needs. One run
// exclusively owns one browser profile; Close releases everything on
// every exit path.
package browser

import (
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"

	"github.com/orshemtov/auto10bis/internal/types"
)

// Options configures the browser launch.
type Options struct {
	// UserDataDir is the persistent profile directory. The login
	// session lives here between runs.
	UserDataDir string

	// Headless runs Chromium without a visible window
	Headless bool

	// Logger for debug logging
	Logger types.Logger
}

// Browser owns the launched Chromium process and its single page.
type Browser struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *Page
	logger   types.Logger
}

// Open launches Chromium with the configured profile and opens one
// blank page. The caller must Close the returned Browser.
func Open(opts *Options) (*Browser, error) {
	if opts == nil {
		opts = &Options{Headless: true}
	}

	l := launcher.New().
		Headless(opts.Headless).
		Leakless(true)

	if opts.UserDataDir != "" {
		l = l.UserDataDir(opts.UserDataDir)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, errors.Wrap(err, "failed to launch browser")
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, errors.Wrap(err, "failed to connect to browser")
	}

	rodPage, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close()
		l.Cleanup()
		return nil, errors.Wrap(err, "failed to open page")
	}

	if opts.Logger != nil {
		opts.Logger.Debug("Browser launched",
			"headless", opts.Headless,
			"user_data_dir", opts.UserDataDir)
	}

	return &Browser{
		launcher: l,
		browser:  b,
		page:     &Page{page: rodPage, logger: opts.Logger},
		logger:   opts.Logger,
	}, nil
}

// Page returns the single driven page.
func (b *Browser) Page() *Page {
	return b.page
}

// Close shuts the page, the browser, and the launched process down.
// Safe to defer immediately after Open.
func (b *Browser) Close() error {
	var firstErr error

	if b.page != nil && b.page.page != nil {
		if err := b.page.page.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "failed to close page")
		}
	}

	if b.browser != nil {
		if err := b.browser.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "failed to close browser")
		}
	}

	if b.launcher != nil {
		b.launcher.Cleanup()
	}

	if b.logger != nil {
		b.logger.Debug("Browser closed")
	}

	return firstErr
}
