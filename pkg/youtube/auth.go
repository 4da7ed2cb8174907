package youtube

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const readonlyScope = "https://www.googleapis.com/auth/youtube.readonly"

// Authenticator runs the OAuth2 installed-app flow for the read-only
// YouTube scope. The token is cached as JSON and refreshed silently;
// when the cached token is missing or irrecoverable the user is
// prompted for a fresh authorization code.
type Authenticator struct {
	config    *oauth2.Config
	tokenFile string
	in        io.Reader
	out       io.Writer
}

func NewAuthenticator(clientID, clientSecret, tokenFile string) *Authenticator {
	return &Authenticator{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
			Scopes:       []string{readonlyScope},
			Endpoint:     google.Endpoint,
		},
		tokenFile: tokenFile,
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

// Client returns an authorized HTTP client, establishing or refreshing
// the session token as needed. The refreshed token is written back to
// the cache file so the next run skips the prompt.
func (a *Authenticator) Client(ctx context.Context) (*http.Client, error) {
	token, err := a.loadToken()
	if err != nil {
		return nil, err
	}

	if token != nil {
		token, err = a.refresh(ctx, token)
		if err != nil {
			log.Printf("Cached token unusable (%v), re-authorizing", err)
			token = nil
		}
	}

	if token == nil {
		token, err = a.promptForToken(ctx)
		if err != nil {
			return nil, err
		}
	}

	if err := a.saveToken(token); err != nil {
		return nil, err
	}
	return a.config.Client(ctx, token), nil
}

func (a *Authenticator) refresh(ctx context.Context, token *oauth2.Token) (*oauth2.Token, error) {
	if token.Valid() {
		return token, nil
	}
	fresh, err := a.config.TokenSource(ctx, token).Token()
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	return fresh, nil
}

func (a *Authenticator) promptForToken(ctx context.Context) (*oauth2.Token, error) {
	url := a.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(a.out, "Open the following link in your browser, then paste the authorization code:\n%s\n> ", url)

	var code string
	if _, err := fmt.Fscan(bufio.NewReader(a.in), &code); err != nil {
		return nil, fmt.Errorf("read authorization code: %w", err)
	}

	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return token, nil
}

func (a *Authenticator) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(a.tokenFile)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("parse token cache %s: %w", a.tokenFile, err)
	}
	return token, nil
}

func (a *Authenticator) saveToken(token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.tokenFile, data, 0o600); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	return nil
}
