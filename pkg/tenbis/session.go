package tenbis

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	internalTypes "github.com/orshemtov/auto10bis/internal/types"
)

// greeting is the post-login indicator: the account menu button named
// "Hi, <first name>". Prefix-matched since the name is per-account.
var greeting = Target{Role: RoleButton, Name: "Hi,", Prefix: true}

// sessionService implements the SessionService interface
type sessionService struct {
	client *Client
}

// IsAuthenticated probes for the greeting control. A wait window
// elapsing means logged out, not an error.
func (s *sessionService) IsAuthenticated(ctx context.Context) (bool, error) {
	return s.client.page.Visible(ctx, greeting, internalTypes.AuthProbeTimeout)
}

// EnsureAuthenticated runs the interactive login and one-time-code
// flow unless the session is already authenticated.
func (s *sessionService) EnsureAuthenticated(ctx context.Context, email string) error {
	log := s.client.logger()

	ok, err := s.IsAuthenticated(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to probe authentication state")
	}
	if ok {
		log.Info("Already authenticated", "email", email)
		return nil
	}

	log.Info("Logging in", "email", email)

	if err := s.client.page.Click(ctx, Target{Role: RoleButton, Name: "Login"}, internalTypes.LoginTimeout); err != nil {
		return errors.Wrap(err, "failed to open login form")
	}

	if err := s.client.page.Fill(ctx, Target{Role: RoleInput, Name: "Email address"}, email, internalTypes.LoginTimeout); err != nil {
		return errors.Wrap(err, "failed to fill email")
	}

	if err := s.client.page.Click(ctx, Target{Role: RoleButton, Name: "Login"}, internalTypes.LoginTimeout); err != nil {
		return errors.Wrap(err, "failed to submit email")
	}

	// The one-time code arrives out of band; give it a minute.
	otpInput := Target{Role: RoleInput, Name: "Insert the code"}
	if err := s.client.page.WaitVisible(ctx, otpInput, internalTypes.OTPPromptTimeout); err != nil {
		return errors.Wrap(err, "one-time code prompt did not appear")
	}

	code, err := s.client.options.OTP.Code(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to obtain one-time code")
	}

	if err := s.client.page.Fill(ctx, otpInput, code, internalTypes.LoginTimeout); err != nil {
		return errors.Wrap(err, "failed to fill one-time code")
	}

	if err := s.client.page.Click(ctx, Target{Role: RoleButton, Name: "Accept"}, internalTypes.LoginTimeout); err != nil {
		return errors.Wrap(err, "failed to submit one-time code")
	}

	// A rejected code surfaces here: the greeting never shows up.
	if err := s.client.page.WaitVisible(ctx, greeting, internalTypes.MenuTimeout); err != nil {
		if ctx.Err() != nil {
			return errors.Wrap(ctx.Err(), "login aborted")
		}
		s.client.captureError(ctx, "login", err)
		return errors.Wrapf(ErrLoginFailed, "greeting did not appear: %v", err)
	}

	log.Info("Login successful", "email", email)

	if path := s.client.options.SessionFile; path != "" {
		if err := s.saveSession(path, email); err != nil {
			log.Warn("Failed to save session metadata", "error", err)
		}
	}

	return nil
}

// saveSession persists session metadata next to the browser profile.
// It is log context only; authentication truth always comes from the
// live page probe.
func (s *sessionService) saveSession(path, email string) error {
	session := &Session{
		Email:           email,
		AuthenticatedAt: s.client.now(),
		DeviceUUID:      uuid.New().String(),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrap(err, "failed to create session directory")
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write session file")
	}

	return nil
}

// LoadSession reads previously saved session metadata. Missing or
// stale files only mean there is nothing to report.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotAuthenticated
		}
		return nil, errors.Wrap(err, "failed to read session file")
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session")
	}

	if session.AuthenticatedAt.IsZero() || session.AuthenticatedAt.After(time.Now()) {
		return nil, ErrNotAuthenticated
	}

	return &session, nil
}
