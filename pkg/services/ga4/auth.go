package ga4

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

const analyticsReadonlyScope = "https://www.googleapis.com/auth/analytics.readonly"

// clientOptions resolves the client options for the analytics service from
// the profile's auth mode: a service account key file, or the installed-app
// OAuth flow with a token cached next to the profile.
func clientOptions(ctx context.Context, cfg Config) ([]option.ClientOption, error) {
	switch cfg.AuthMode {
	case AuthModeServiceAccount:
		return []option.ClientOption{
			option.WithCredentialsFile(cfg.CredentialsFile),
			option.WithScopes(analyticsReadonlyScope),
		}, nil
	case AuthModeOAuth:
		ts, err := oauthTokenSource(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return []option.ClientOption{option.WithTokenSource(ts)}, nil
	}
	return nil, fmt.Errorf("unsupported auth_mode %q", cfg.AuthMode)
}

func oauthTokenSource(ctx context.Context, cfg Config) (oauth2.TokenSource, error) {
	secret, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read client secret file: %w", err)
	}

	conf, err := google.ConfigFromJSON(secret, analyticsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secret file: %w", err)
	}

	token, err := readCachedToken(cfg.TokenFile)
	if err != nil {
		token, err = exchangeInteractive(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err := writeCachedToken(cfg.TokenFile, token); err != nil {
			return nil, err
		}
	}
	return conf.TokenSource(ctx, token), nil
}

// exchangeInteractive runs the installed-app consent flow on the terminal.
func exchangeInteractive(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	url := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following link in your browser, then paste the authorization code:\n%s\n> ", url)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

func readCachedToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode cached token: %w", err)
	}
	return token, nil
}

func writeCachedToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create token cache file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return nil
}
