package tenbis

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPurchaseClient(t *testing.T, page *MockPage) (*Client, string, string) {
	t.Helper()

	screenshotsDir := filepath.Join(t.TempDir(), "screenshots")
	ordersDir := filepath.Join(t.TempDir(), "orders")

	client, err := NewClient(&ClientOptions{
		Page:           page,
		ScreenshotsDir: screenshotsDir,
		OrdersDir:      ordersDir,
		Clock: func() time.Time {
			return time.Date(2026, 8, 30, 12, 30, 45, 0, time.UTC)
		},
	})
	require.NoError(t, err)

	return client, screenshotsDir, ordersDir
}

func TestPurchaseService_AddToCart(t *testing.T) {
	mockPage := new(MockPage)
	client, _, _ := newPurchaseClient(t, mockPage)

	itemURL := "https://shop.example.com/item/42"

	mockPage.On("Navigate", mock.Anything, itemURL).Return(nil)
	mockPage.On("Click", mock.Anything, mock.MatchedBy(func(target Target) bool {
		return target.Name == "Add item" && target.Prefix
	}), mock.Anything).Return(nil)
	mockPage.On("Click", mock.Anything, clickTarget("Proceed to payment"), mock.Anything).Return(nil)

	err := client.Purchase.AddToCart(context.Background(), itemURL)

	require.NoError(t, err)
	mockPage.AssertExpectations(t)
}

func TestPurchaseService_AddToCart_ButtonMissing(t *testing.T) {
	mockPage := new(MockPage)
	client, _, _ := newPurchaseClient(t, mockPage)

	mockPage.On("Navigate", mock.Anything, mock.Anything).Return(nil)
	mockPage.On("Click", mock.Anything, clickTarget("Add item"), mock.Anything).
		Return(ErrElementNotFound)

	err := client.Purchase.AddToCart(context.Background(), "https://shop.example.com/item/42")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrElementNotFound)
	mockPage.AssertNotCalled(t, "Click", mock.Anything, clickTarget("Proceed to payment"), mock.Anything)
}

func TestPurchaseService_Checkout(t *testing.T) {
	mockPage := new(MockPage)
	client, screenshotsDir, ordersDir := newPurchaseClient(t, mockPage)

	mockPage.On("Click", mock.Anything, mock.MatchedBy(func(target Target) bool {
		return target.Name == "Place order" && target.Prefix
	}), mock.Anything).Return(nil)
	mockPage.On("WaitVisible", mock.Anything, clickTarget("Coupon ordered successfully"), mock.Anything).Return(nil)
	mockPage.On("Screenshot", mock.Anything).Return([]byte("png-bytes"), nil)
	mockPage.On("PDF", mock.Anything).Return([]byte("pdf-bytes"), nil)

	order, err := client.Purchase.Checkout(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "order-20260830-123045", order.ID)
	assert.Equal(t, filepath.Join(screenshotsDir, "order-20260830-123045.png"), order.ScreenshotPath)
	assert.Equal(t, filepath.Join(ordersDir, "order-20260830-123045.pdf"), order.ReceiptPath)

	png, err := os.ReadFile(order.ScreenshotPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), png)

	pdf, err := os.ReadFile(order.ReceiptPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), pdf)
}

func TestPurchaseService_Checkout_ConfirmationTimeout(t *testing.T) {
	mockPage := new(MockPage)
	client, screenshotsDir, ordersDir := newPurchaseClient(t, mockPage)

	mockPage.On("Click", mock.Anything, clickTarget("Place order"), mock.Anything).Return(nil)
	mockPage.On("WaitVisible", mock.Anything, clickTarget("Coupon ordered successfully"), mock.Anything).
		Return(ErrElementNotFound)

	order, err := client.Purchase.Checkout(context.Background())

	require.Error(t, err)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrCheckoutUnconfirmed)
	assert.True(t, IsFatalPurchaseError(err))

	// No artifacts may exist without a confirmed order.
	for _, dir := range []string{screenshotsDir, ordersDir} {
		entries, readErr := os.ReadDir(dir)
		if readErr == nil {
			assert.Empty(t, entries)
		}
	}
	mockPage.AssertNotCalled(t, "Screenshot", mock.Anything)
	mockPage.AssertNotCalled(t, "PDF", mock.Anything)
}
