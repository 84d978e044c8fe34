package tenbis

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	internalTypes "github.com/orshemtov/auto10bis/internal/types"
)

// purchaseService implements the PurchaseService interface
type purchaseService struct {
	client *Client
}

// AddToCart opens the item page, adds the item and proceeds to
// payment. Controls with a dynamic price suffix are prefix-matched.
func (s *purchaseService) AddToCart(ctx context.Context, itemURL string) error {
	log := s.client.logger()

	if err := s.client.page.Navigate(ctx, itemURL); err != nil {
		return errors.Wrap(err, "failed to open item page")
	}

	addItem := Target{Role: RoleButton, Name: "Add item", Prefix: true}
	if err := s.client.page.Click(ctx, addItem, internalTypes.CartTimeout); err != nil {
		return errors.Wrap(err, "failed to add item to cart")
	}

	payment := Target{Role: RoleButton, Name: "Proceed to payment"}
	if err := s.client.page.Click(ctx, payment, internalTypes.CartTimeout); err != nil {
		return errors.Wrap(err, "failed to proceed to payment")
	}

	log.Info("Item added to cart", "item_url", itemURL)

	return nil
}

// Checkout places the order, waits for the confirmation marker and
// archives the proof of purchase. An absent confirmation is fatal:
// the funds may be committed, so the error surfaces instead of a
// retry that could double-submit.
func (s *purchaseService) Checkout(ctx context.Context) (*Order, error) {
	log := s.client.logger()

	placeOrder := Target{Role: RoleButton, Name: "Place order", Prefix: true}
	if err := s.client.page.Click(ctx, placeOrder, internalTypes.CartTimeout); err != nil {
		return nil, errors.Wrap(err, "failed to place order")
	}

	confirmation := Target{Role: RoleText, Name: "Coupon ordered successfully"}
	if err := s.client.page.WaitVisible(ctx, confirmation, internalTypes.ConfirmTimeout); err != nil {
		s.client.captureError(ctx, "checkout", err)
		return nil, errors.Wrap(ErrCheckoutUnconfirmed, err.Error())
	}

	placedAt := s.client.now()
	order := &Order{
		ID:       "order-" + placedAt.Format("20060102-150405"),
		PlacedAt: placedAt,
	}

	log.Info("Order confirmed", "order_id", order.ID)

	screenshotPath, err := s.archiveScreenshot(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.ScreenshotPath = screenshotPath

	receiptPath, err := s.archiveReceipt(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.ReceiptPath = receiptPath

	return order, nil
}

// archiveScreenshot writes the confirmation PNG.
func (s *purchaseService) archiveScreenshot(ctx context.Context, orderID string) (string, error) {
	data, err := s.client.page.Screenshot(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to capture confirmation screenshot")
	}

	path := filepath.Join(s.client.options.ScreenshotsDir, orderID+".png")
	if err := writeArtifact(path, data); err != nil {
		return "", err
	}

	return path, nil
}

// archiveReceipt writes the print-rendered PDF receipt.
func (s *purchaseService) archiveReceipt(ctx context.Context, orderID string) (string, error) {
	data, err := s.client.page.PDF(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to render receipt PDF")
	}

	path := filepath.Join(s.client.options.OrdersDir, orderID+".pdf")
	if err := writeArtifact(path, data); err != nil {
		return "", err
	}

	return path, nil
}

func writeArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create artifact directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write artifact %s", path)
	}
	return nil
}
