package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/restclient/internal/auth"
	"github.com/oshokin/restclient/internal/config"
	"github.com/oshokin/restclient/internal/logger"
	"github.com/oshokin/restclient/internal/utils"
)

// maskedSecret replaces secrets in the printed payload.
const maskedSecret = "***"

// PayloadView is the JSON form of an auth payload.
type PayloadView struct {
	AuthType     string            `json:"auth_type"`
	ClientID     string            `json:"client_id,omitempty"`
	ClientSecret string            `json:"client_secret,omitempty"`
	Site         string            `json:"site,omitempty"`
	Token        string            `json:"token,omitempty"`
	GrantType    string            `json:"grant_type,omitempty"`
	Username     string            `json:"username,omitempty"`
	Password     string            `json:"password,omitempty"`
	Headers      map[string]string `json:"headers"`
}

// ExecuteAuthPayloadCommand prints the auth payload, with extra headers merged in, as JSON.
func ExecuteAuthPayloadCommand(ctx context.Context, cfg *config.Config, extra map[string]string, showSecrets bool) {
	application, err := New(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize client: %v", err)
	}

	defer application.Close()

	if err = application.PrintPayload(os.Stdout, extra, showSecrets); err != nil {
		logger.Fatalf(ctx, "Failed to print auth payload: %v", err)
	}
}

// ExecuteAuthTokenCommand fetches an OAuth2 access token and saves it to the configuration file.
func ExecuteAuthTokenCommand(ctx context.Context, cfg *config.Config) {
	application, err := New(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize client: %v", err)
	}

	defer application.Close()

	if err = application.FetchToken(ctx); err != nil {
		logger.Fatalf(ctx, "Failed to fetch token: %v", err)
	}

	logger.Infof(ctx, "Token saved to '%s'", cfg.Filename)
}

// PrintPayload writes the auth payload as indented JSON to out.
// Secrets are masked unless showSecrets is set.
func (a *App) PrintPayload(out io.Writer, extra map[string]string, showSecrets bool) error {
	view := newPayloadView(a.client.BuildAuthPayloadWithHeaders(extra), showSecrets)

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(view); err != nil {
		return fmt.Errorf("failed to encode auth payload: %w", err)
	}

	return nil
}

// FetchToken requests an access token with the configured OAuth2 credentials
// and stores it in the configuration file.
func (a *App) FetchToken(ctx context.Context) error {
	payload := a.client.BuildAuthPayload()
	if payload.Type() != auth.TypeOAuth2 {
		return fmt.Errorf("%w, got '%s'", ErrTokenNotSupported, payload.Type())
	}

	token, err := a.authorizer.Token(ctx, payload)
	if err != nil {
		return err
	}

	if utils.IsBlank(token.AccessToken) {
		return ErrEmptyAccessToken
	}

	logger.Debugf(ctx, "Received %s token expiring at %s", token.Type(), token.Expiry)

	a.cfg.Token = token.AccessToken

	return config.SaveConfig(a.cfg)
}

func newPayloadView(payload auth.Payload, showSecrets bool) PayloadView {
	secret := func(value string) string {
		if showSecrets || value == "" {
			return value
		}

		return maskedSecret
	}

	credentials := payload.Credentials()

	return PayloadView{
		AuthType:     credentials.Type.String(),
		ClientID:     credentials.ClientID,
		ClientSecret: secret(credentials.ClientSecret),
		Site:         credentials.Site,
		Token:        secret(credentials.Token),
		GrantType:    credentials.GrantType,
		Username:     credentials.Username,
		Password:     secret(credentials.Password),
		Headers:      payload.Headers(),
	}
}
