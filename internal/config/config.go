package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/orshemtov/auto10bis/internal/types"
)

// Settings holds all auto10bis configuration. It is constructed once
// at process entry and passed down read-only; there is no ambient
// global settings state.
type Settings struct {
	// BaseURL is the storefront entry page
	BaseURL string

	// ItemURL is the voucher page to purchase from
	ItemURL string

	// ItemPrice is the expected item price, currency-agnostic
	ItemPrice decimal.Decimal

	// Email is the account to authenticate as
	Email string

	// UserDataDir holds the persistent browser profile
	UserDataDir string

	// ScreenshotsDir receives order confirmation screenshots
	ScreenshotsDir string

	// OrdersDir receives order confirmation PDFs
	OrdersDir string

	// OTPInboxURL, when set, enables the automated inbox code source
	// instead of the interactive prompt
	OTPInboxURL string

	// SentryDSN enables error tracking when set
	SentryDSN string

	Headless bool
	DryRun   bool
	Debug    bool
}

// Load builds Settings from an optional .env file and the process
// environment. An explicitly named env file must exist; the implicit
// default .env may be absent.
func Load(envFile string) (*Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Wrapf(err, "failed to load env file %s", envFile)
		}
	} else {
		_ = godotenv.Load()
	}

	price, err := parsePrice(getenv("ITEM_PRICE", types.DefaultItemPrice))
	if err != nil {
		return nil, err
	}

	s := &Settings{
		BaseURL:        getenv("BASE_URL", types.DefaultBaseURL),
		ItemURL:        getenv("ITEM_URL", types.DefaultItemURL),
		ItemPrice:      price,
		Email:          os.Getenv("EMAIL"),
		UserDataDir:    getenv("USER_DATA_DIR", "profile"),
		ScreenshotsDir: getenv("SCREENSHOTS_DIR", "screenshots"),
		OrdersDir:      getenv("ORDERS_DIR", "orders"),
		OTPInboxURL:    os.Getenv("OTP_INBOX_URL"),
		SentryDSN:      os.Getenv("SENTRY_DSN"),
		Headless:       getbool("HEADLESS", true),
		DryRun:         getbool("DRY_RUN", false),
		Debug:          getbool("DEBUG", false),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks required values are present.
func (s *Settings) Validate() error {
	if s.BaseURL == "" {
		return errors.New("BASE_URL is required")
	}
	if s.ItemURL == "" {
		return errors.New("ITEM_URL is required")
	}
	if s.ItemPrice.IsNegative() {
		return errors.Errorf("ITEM_PRICE must be non-negative, got %s", s.ItemPrice)
	}
	if s.Email == "" {
		return errors.New("EMAIL is required")
	}
	return nil
}

// SessionFile is where session metadata lives, inside the profile so
// it shares the profile's lifecycle.
func (s *Settings) SessionFile() string {
	return filepath.Join(s.UserDataDir, "session.json")
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "invalid ITEM_PRICE %q", raw)
	}
	return price, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
