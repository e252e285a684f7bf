package gcal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// ErrNotAuthorized is returned when no cached token exists yet.
var ErrNotAuthorized = errors.New("google calendar is not authorized (run 'planwise sync --login' first)")

// Scopes are the OAuth scopes PlanWise asks for.
var Scopes = []string{calendar.CalendarEventsScope, calendar.CalendarReadonlyScope}

// LoadConfig reads an OAuth client from a credentials.json downloaded from
// the Google Cloud console.
func LoadConfig(credentialsPath string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("reading client secret file %s: %w", credentialsPath, err)
	}
	cfg, err := google.ConfigFromJSON(b, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing client secret file: %w", err)
	}
	return cfg, nil
}

func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotAuthorized
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decoding token from %s: %w", path, err)
	}
	return tok, nil
}

// SaveToken writes the token readable by the owner only.
func SaveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("caching oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}

// Authorize runs the installed-app flow: it listens on a loopback port,
// prints the consent URL to out and exchanges the code the browser is
// redirected back with.
func Authorize(ctx context.Context, cfg *oauth2.Config, out io.Writer) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("starting oauth callback listener: %w", err)
	}

	flow := *cfg
	flow.RedirectURL = fmt.Sprintf("http://%s/callback", ln.Addr())
	state := uuid.NewString()

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	var once sync.Once
	finish := func(code string, err error) {
		once.Do(func() {
			if err != nil {
				errCh <- err
				return
			}
			codeCh <- code
		})
	}

	srv := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/callback" {
				http.NotFound(w, r)
				return
			}
			q := r.URL.Query()
			switch {
			case q.Get("state") != state:
				http.Error(w, "state mismatch", http.StatusBadRequest)
				finish("", errors.New("oauth callback state mismatch"))
			case q.Get("error") != "":
				http.Error(w, q.Get("error"), http.StatusBadRequest)
				finish("", fmt.Errorf("authorization denied: %s", q.Get("error")))
			case q.Get("code") == "":
				http.Error(w, "authorization code not found", http.StatusBadRequest)
				finish("", errors.New("authorization code not found in redirect"))
			default:
				fmt.Fprintln(w, "PlanWise is authorized. You can close this window.")
				finish(q.Get("code"), nil)
			}
		}),
	}
	go srv.Serve(ln)
	defer srv.Close()

	authURL := flow.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Fprintf(out, "Open this URL in your browser to authorize PlanWise:\n%s\n", authURL)

	select {
	case code := <-codeCh:
		tok, err := flow.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("exchanging authorization code: %w", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for authorization: %w", ctx.Err())
	}
}

// savingTokenSource writes refreshed tokens back to the cache file.
type savingTokenSource struct {
	mu   sync.Mutex
	base oauth2.TokenSource
	path string
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		if err := SaveToken(s.path, tok); err != nil {
			return nil, err
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}

// HTTPClient returns a client that refreshes tok as needed and keeps the
// cache at tokenPath current.
func HTTPClient(ctx context.Context, cfg *oauth2.Config, tok *oauth2.Token, tokenPath string) *http.Client {
	src := &savingTokenSource{base: cfg.TokenSource(ctx, tok), path: tokenPath, last: tok.AccessToken}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, src))
}
