package tenbis

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/orshemtov/auto10bis/internal/otp"
	internalTypes "github.com/orshemtov/auto10bis/internal/types"
)

// Client is the main 10bis automation client
type Client struct {
	// Service interfaces
	Session  SessionService
	Budget   BudgetService
	Purchase PurchaseService

	// Internal fields
	page    Page
	options *ClientOptions
	now     func() time.Time
}

// ClientOptions configures the client
type ClientOptions struct {
	// Page is the driven browser page. Required.
	Page Page

	// Logger for debug logging
	Logger Logger

	// OTP supplies the one-time authentication code during login.
	// Defaults to a blocking stdin prompt.
	OTP otp.Provider

	// ScreenshotsDir receives order confirmation screenshots
	ScreenshotsDir string

	// OrdersDir receives order confirmation PDFs
	OrdersDir string

	// SessionFile path for session metadata persistence
	SessionFile string

	// Clock overrides the artifact timestamp source, mainly for tests
	Clock func() time.Time

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Logger interface for logging
type Logger = internalTypes.Logger

// Page abstracts the remote-controlled browser page. The production
// implementation drives Chromium through go-rod; tests substitute a
// mock. Every wait is bounded: the call either succeeds within its
// window or fails, nothing retries.
type Page interface {
	// Navigate opens url and waits for DOM content to load.
	Navigate(ctx context.Context, url string) error

	// WaitLoad waits for the current navigation to settle.
	WaitLoad(ctx context.Context) error

	// WaitVisible waits until target is visible or the window elapses.
	WaitVisible(ctx context.Context, target Target, timeout time.Duration) error

	// Visible probes for target; a wait window elapsing is false, not
	// an error.
	Visible(ctx context.Context, target Target, timeout time.Duration) (bool, error)

	// Click waits for target to be visible, then clicks it.
	Click(ctx context.Context, target Target, timeout time.Duration) error

	// Fill waits for target to be visible, then types value into it.
	Fill(ctx context.Context, target Target, value string, timeout time.Duration) error

	// TextByLabel locates the unique element whose text equals label,
	// resolves its layout-adjacent node per rel, and returns that
	// node's text.
	TextByLabel(ctx context.Context, label string, rel Relation, timeout time.Duration) (string, error)

	// Screenshot captures a PNG of the current viewport.
	Screenshot(ctx context.Context) ([]byte, error)

	// PDF renders the current page for print: A4, backgrounds on.
	PDF(ctx context.Context) ([]byte, error)
}

// NewClient creates a new 10bis automation client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil || opts.Page == nil {
		return nil, ErrNoPage
	}

	// Initialize Sentry if DSN is provided
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}

		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}

		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}

		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		if err := sentry.Init(sentryOpts); err != nil {
			// Log error but don't fail client creation
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	if opts.OTP == nil {
		opts.OTP = otp.NewPrompt(nil, nil)
	}

	now := time.Now
	if opts.Clock != nil {
		now = opts.Clock
	}

	c := &Client{
		page:    opts.Page,
		options: opts,
		now:     now,
	}

	c.initServices()

	return c, nil
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Session = &sessionService{client: c}
	c.Budget = &budgetService{client: c}
	c.Purchase = &purchaseService{client: c}
}

// Close flushes any pending Sentry events and performs cleanup
func (c *Client) Close() {
	sentry.Flush(2 * time.Second)
}

// logger returns the configured logger or a no-op
func (c *Client) logger() Logger {
	if c.options.Logger != nil {
		return c.options.Logger
	}
	return nopLogger{}
}

// captureError forwards err to Sentry with flow context attached.
func (c *Client) captureError(ctx context.Context, step string, err error) {
	if err == nil {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("flow.step", step)
		hub.CaptureException(err)
	})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
