package app

import (
	"fmt"

	"github.com/oshokin/restclient/internal/auth"
	"github.com/oshokin/restclient/internal/client/rest"
	"github.com/oshokin/restclient/internal/config"
	"github.com/oshokin/restclient/internal/metrics"
	"github.com/oshokin/restclient/internal/network"
)

// App is the composition root: one transport provider, one metrics collector,
// and the REST client configured from the loaded configuration.
type App struct {
	cfg        *config.Config
	collector  *metrics.Collector
	provider   *rest.TransportProvider
	authorizer *auth.AuthorizerImpl
	client     *rest.Client
	netCtx     network.Context
}

// New builds the application from a validated configuration.
// The shared transport client is created here, so later clients cannot change its timeouts.
func New(cfg *config.Config) (*App, error) {
	collector := metrics.NewCollector()
	provider := rest.NewTransportProvider(collector)

	if cfg.ParsedCertificatePinner != nil {
		if err := provider.SetCertificatePinner(cfg.ParsedCertificatePinner); err != nil {
			return nil, fmt.Errorf("failed to set certificate pinner: %w", err)
		}
	}

	clientConfig := ClientConfig(cfg)

	client := rest.NewClient(clientConfig, provider, nil)

	transportClient, err := client.Transport()
	if err != nil {
		return nil, fmt.Errorf("failed to create transport client: %w", err)
	}

	authorizer, err := auth.NewAuthorizer(transportClient.HTTPClient(), auth.DefaultTokenSourcesCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorizer: %w", err)
	}

	return &App{
		cfg:        cfg,
		collector:  collector,
		provider:   provider,
		authorizer: authorizer,
		client:     rest.NewClient(clientConfig, provider, authorizer),
		netCtx:     network.NewSystemContext(),
	}, nil
}

// Client returns the REST client.
func (a *App) Client() *rest.Client {
	return a.client
}

// Authorizer returns the authorizer shared by every client of the application.
func (a *App) Authorizer() auth.Authorizer {
	return a.authorizer
}

// Collector returns the metrics collector of the shared dispatcher.
func (a *App) Collector() *metrics.Collector {
	return a.collector
}

// Provider returns the transport provider.
func (a *App) Provider() *rest.TransportProvider {
	return a.provider
}

// Close releases idle connections of the shared transport client.
func (a *App) Close() {
	if transportClient := a.provider.Current(); transportClient != nil {
		transportClient.CloseIdleConnections()
	}
}

// ClientConfig converts the file configuration into a REST client configuration.
func ClientConfig(cfg *config.Config) rest.Config {
	return rest.Config{
		ClientID:       cfg.ClientID,
		ClientSecret:   cfg.ClientSecret,
		Site:           cfg.Site,
		Token:          cfg.Token,
		GrantType:      cfg.GrantType,
		Username:       cfg.Username,
		Password:       cfg.Password,
		AuthType:       cfg.ParsedAuthType,
		Headers:        cfg.Headers,
		ConnectTimeout: cfg.ParsedConnectTimeout,
		ReadTimeout:    cfg.ParsedReadTimeout,
		WriteTimeout:   cfg.ParsedWriteTimeout,
		DebugEnabled:   cfg.DebugEnabled,
		Platform:       cfg.Platform,
		MaxLogLength:   cfg.ParsedMaxLogLength,
		MaxRequests:    cfg.MaxRequests,
	}
}
