package otp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInbox_Code(t *testing.T) {
	var calls int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The email lands on the second poll.
		if atomic.AddInt64(&calls, 1) < 2 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(inboxResponse{
			Code:       "654321",
			ReceivedAt: time.Now().Add(time.Second),
		})
	}))
	defer server.Close()

	inbox := NewInbox(server.URL)
	inbox.interval = 10 * time.Millisecond

	code, err := inbox.Code(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "654321", code)
	assert.GreaterOrEqual(t, atomic.LoadInt64(&calls), int64(2))
}

func TestInbox_Code_IgnoresStaleCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A code from a previous run, delivered before this poll began.
		_ = json.NewEncoder(w).Encode(inboxResponse{
			Code:       "111111",
			ReceivedAt: time.Now().Add(-time.Hour),
		})
	}))
	defer server.Close()

	inbox := NewInbox(server.URL)
	inbox.interval = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := inbox.Code(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "one-time code never arrived")
}

func TestInbox_Code_AcceptsCodeWithoutTimestamp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A relay that never reports receivedAt.
		_ = json.NewEncoder(w).Encode(inboxResponse{Code: "222333"})
	}))
	defer server.Close()

	inbox := NewInbox(server.URL)
	inbox.interval = 10 * time.Millisecond

	code, err := inbox.Code(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "222333", code)
}

func TestInbox_Code_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	inbox := NewInbox(server.URL)

	_, err := inbox.Code(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}
