package otp

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt_Code(t *testing.T) {
	var out bytes.Buffer
	prompt := NewPrompt(strings.NewReader("123456\n"), &out)

	code, err := prompt.Code(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "123456", code)
	assert.Contains(t, out.String(), "Enter the OTP")
}

func TestPrompt_Code_TrimsWhitespace(t *testing.T) {
	prompt := NewPrompt(strings.NewReader("  123456  \n"), &bytes.Buffer{})

	code, err := prompt.Code(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "123456", code)
}

func TestPrompt_Code_Empty(t *testing.T) {
	prompt := NewPrompt(strings.NewReader("\n"), &bytes.Buffer{})

	_, err := prompt.Code(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty one-time code")
}

func TestPrompt_Code_ContextCanceled(t *testing.T) {
	// A reader that never yields a line: the prompt must honor ctx.
	blocked, unblock := blockedReader()
	defer unblock()

	prompt := NewPrompt(blocked, &bytes.Buffer{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := prompt.Code(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// blockedReader blocks Read until unblock is called.
func blockedReader() (*blockingReader, func()) {
	ch := make(chan struct{})
	return &blockingReader{ch: ch}, func() { close(ch) }
}

type blockingReader struct {
	ch chan struct{}
}

func (r *blockingReader) Read(p []byte) (int, error) {
	<-r.ch
	return 0, context.Canceled
}
