package otp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

const defaultPollInterval = 3 * time.Second

// Inbox polls an HTTP endpoint that relays the login email, e.g. a
// mail-webhook bridge. It is the unattended counterpart of Prompt.
type Inbox struct {
	url      string
	client   *retryablehttp.Client
	interval time.Duration
}

// inboxResponse is the relay payload. A missing or empty code means
// the email has not arrived yet. receivedAt is optional; relays that
// omit it deliver codes without staleness filtering.
type inboxResponse struct {
	Code       string    `json:"code"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// NewInbox creates an Inbox polling url.
func NewInbox(url string) *Inbox {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil
	client.HTTPClient.Timeout = 10 * time.Second

	return &Inbox{
		url:      url,
		client:   client,
		interval: defaultPollInterval,
	}
}

// Code polls the relay until a code shows up or ctx is done. Codes
// older than the poll start are ignored so a stale email from a
// previous run cannot be replayed.
func (i *Inbox) Code(ctx context.Context) (string, error) {
	start := time.Now()

	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()

	for {
		code, err := i.fetch(ctx, start)
		if err != nil {
			return "", err
		}
		if code != "" {
			return code, nil
		}

		select {
		case <-ctx.Done():
			return "", errors.Wrap(ctx.Err(), "one-time code never arrived")
		case <-ticker.C:
		}
	}
}

func (i *Inbox) fetch(ctx context.Context, notBefore time.Time) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, i.url, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to build inbox request")
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "inbox request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Nothing delivered yet.
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("inbox returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read inbox response")
	}

	var payload inboxResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", errors.Wrap(err, "failed to parse inbox response")
	}

	if payload.Code == "" {
		return "", nil
	}
	if !payload.ReceivedAt.IsZero() && payload.ReceivedAt.Before(notBefore) {
		return "", nil
	}

	return payload.Code, nil
}
