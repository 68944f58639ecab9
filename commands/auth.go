package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// authorize returns the client options for the Google APIs. Service account credentials are used
// as is, otherwise the OAuth2 token is loaded from the tokens directory (or requested
// interactively and saved there).
func authorize(ctx context.Context, credentials string, tokens string, scopes ...string) ([]option.ClientOption, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	var kind struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(b, &kind); err != nil {
		return nil, fmt.Errorf("invalid credentials file %v (%w)", credentials, err)
	}

	if kind.Type == "service_account" {
		config, err := google.JWTConfigFromJSON(b, scopes...)
		if err != nil {
			return nil, err
		}

		return []option.ClientOption{option.WithHTTPClient(config.Client(ctx))}, nil
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, err
	}

	_, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))
	path := filepath.Join(tokens, fmt.Sprintf("%s.tokens", name))

	token, err := tokenFromFile(path)
	if err != nil {
		if token, err = tokenFromWeb(ctx, config); err != nil {
			return nil, err
		} else if err := saveToken(path, token); err != nil {
			warnf("unable to save OAuth2 token (%v)", err)
		}
	}

	return []option.ClientOption{option.WithHTTPClient(config.Client(ctx, token))}, nil
}

// Requests a token from the web, then returns the retrieved token.
func tokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	url := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	fmt.Printf("Go to the following link in your browser then type the authorization code: \n%v\n", url)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("unable to read authorization code (%w)", err)
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web (%w)", err)
	}

	return token, nil
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	token := oauth2.Token{}
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, err
	}

	return &token, nil
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	defer f.Close()

	infof("Saving OAuth2 token to %v", path)

	return json.NewEncoder(f).Encode(token)
}
