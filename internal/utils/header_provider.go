package utils

import "maps"

//go:generate $MOCKGEN -source=header_provider.go -destination=mocks/header_provider_mock.go

// HeaderProvider is an interface that defines a method for retrieving headers
// that must be present on every outgoing request.
type HeaderProvider interface {
	// GetHeaders returns header names mapped to their values.
	GetHeaders() map[string]string
}

// StaticHeaderProvider is a basic implementation of the HeaderProvider interface.
// It provides a fixed set of headers that is set during initialization.
type StaticHeaderProvider struct {
	// headers are the headers to return.
	headers map[string]string
}

// NewStaticHeaderProvider creates and returns a new instance of StaticHeaderProvider.
// The given map is copied, so later changes by the caller are not observed.
func NewStaticHeaderProvider(headers map[string]string) HeaderProvider {
	return &StaticHeaderProvider{headers: maps.Clone(headers)}
}

// GetHeaders returns a copy of the configured headers.
func (p *StaticHeaderProvider) GetHeaders() map[string]string {
	return maps.Clone(p.headers)
}
