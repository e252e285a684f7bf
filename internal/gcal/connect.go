package gcal

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Settings locates the OAuth files and names the target calendar.
type Settings struct {
	CredentialsPath string
	TokenPath       string
	CalendarName    string
}

// Connect returns a client for the configured calendar. The cached token is
// used when present; login, or a missing cache, runs Authorize first and
// saves the new token.
func Connect(ctx context.Context, s Settings, login bool, out io.Writer) (*Client, error) {
	cfg, err := LoadConfig(s.CredentialsPath)
	if err != nil {
		return nil, err
	}

	tok, err := LoadToken(s.TokenPath)
	if errors.Is(err, ErrNotAuthorized) && !login {
		return nil, err
	}
	if err != nil && !errors.Is(err, ErrNotAuthorized) {
		return nil, err
	}
	if login {
		if tok, err = Authorize(ctx, cfg, out); err != nil {
			return nil, err
		}
		if err := SaveToken(s.TokenPath, tok); err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "Authorized. Token saved to %s\n", s.TokenPath)
	}

	srv, err := NewService(ctx, HTTPClient(ctx, cfg, tok, s.TokenPath))
	if err != nil {
		return nil, err
	}
	return NewClient(ctx, srv, s.CalendarName)
}
