// Package otp supplies one-time authentication codes. The login flow
// only sees the Provider interface, so the interactive prompt can be
// swapped for an automated source without touching it.
package otp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Provider obtains a time-boxed secret from an out-of-band channel.
type Provider interface {
	// Code blocks until a code is available, ctx is done, or the
	// channel fails.
	Code(ctx context.Context) (string, error)
}

// Prompt is the default Provider: a blocking console prompt.
type Prompt struct {
	in  io.Reader
	out io.Writer
}

// NewPrompt creates a Prompt. Nil in/out default to stdin/stderr.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	return &Prompt{in: in, out: out}
}

// Code prompts for the one-time code and blocks until a line arrives.
func (p *Prompt) Code(ctx context.Context) (string, error) {
	fmt.Fprint(p.out, "Enter the OTP sent to your email or phone: ")

	type result struct {
		code string
		err  error
	}

	ch := make(chan result, 1)
	go func() {
		reader := bufio.NewReader(p.in)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			ch <- result{err: errors.Wrap(err, "failed to read one-time code")}
			return
		}
		ch <- result{code: strings.TrimSpace(line)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return "", r.err
		}
		if r.code == "" {
			return "", errors.New("empty one-time code")
		}
		return r.code, nil
	}
}
