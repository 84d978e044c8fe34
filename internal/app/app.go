// Package app sequences one purchase run: open storefront, ensure
// authentication, read the budget report, gate on affordability, and
// purchase when allowed. Data flows forward only; any step error
// aborts the run.
package app

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/orshemtov/auto10bis/internal/config"
	"github.com/orshemtov/auto10bis/internal/types"
	"github.com/orshemtov/auto10bis/pkg/tenbis"
)

// App holds everything one run needs.
type App struct {
	settings *config.Settings
	client   *tenbis.Client
	page     tenbis.Page
	logger   types.Logger
}

// New creates an App.
func New(settings *config.Settings, client *tenbis.Client, page tenbis.Page, logger types.Logger) *App {
	return &App{
		settings: settings,
		client:   client,
		page:     page,
		logger:   logger,
	}
}

// Run executes one purchase attempt end to end. A skipped purchase or
// a completed dry run is a successful run.
func (a *App) Run(ctx context.Context) error {
	runID := uuid.New().String()

	if a.settings.SentryDSN != "" {
		sentry.CurrentHub().ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("run.id", runID)
		})
	}

	a.logger.Info("Starting run",
		"run_id", runID,
		"dry_run", a.settings.DryRun,
		"item_price", a.settings.ItemPrice.String())

	if err := a.page.Navigate(ctx, a.settings.BaseURL); err != nil {
		return errors.Wrap(err, "failed to open storefront")
	}

	if err := a.client.Session.EnsureAuthenticated(ctx, a.settings.Email); err != nil {
		return err
	}

	budget, err := a.client.Budget.Read(ctx)
	if err != nil {
		return err
	}

	if tenbis.ShouldSkip(budget, a.settings.ItemPrice) {
		a.logger.Info("Insufficient balance, skipping purchase",
			"run_id", runID,
			"monthly_balance", budget.MonthlyBalance.String(),
			"daily_balance", budget.DailyBalance.String(),
			"item_price", a.settings.ItemPrice.String())
		return nil
	}

	if err := a.client.Purchase.AddToCart(ctx, a.settings.ItemURL); err != nil {
		return err
	}

	if a.settings.DryRun {
		a.logger.Info("Dry run, stopping before checkout", "run_id", runID)
		return nil
	}

	order, err := a.client.Purchase.Checkout(ctx)
	if err != nil {
		return err
	}

	a.logger.Info("Purchase complete",
		"run_id", runID,
		"order_id", order.ID,
		"screenshot", order.ScreenshotPath,
		"receipt", order.ReceiptPath)

	return nil
}
