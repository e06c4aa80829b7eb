package http

import (
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// pinPrefix is the only supported pin hash algorithm.
const pinPrefix = "sha256/"

// Static error definitions for better error handling.
var (
	// ErrInvalidPin indicates that a pin is not of the form "sha256/<base64 digest>".
	ErrInvalidPin = errors.New("invalid certificate pin")
	// ErrInvalidPinPattern indicates that a host pattern cannot be used for pinning.
	ErrInvalidPinPattern = errors.New("invalid certificate pin host pattern")
	// ErrCertificatePinMismatch indicates that no certificate in the chain matched the host pins.
	ErrCertificatePinMismatch = errors.New("certificate pinning failure")
)

// CertificatePinner constrains which certificates are trusted for a host.
// A host with pins is trusted only if at least one certificate of its chain has a
// matching SubjectPublicKeyInfo SHA-256 digest. Hosts without pins are not constrained.
//
// Patterns are either exact host names, "*.example.com" (exactly one extra label),
// or "**.example.com" (any number of extra labels, including none).
type CertificatePinner struct {
	// pins maps normalized host patterns to raw SHA-256 digests.
	pins map[string][][]byte
}

// NewCertificatePinner validates the given host pattern → pins mapping and returns a pinner.
func NewCertificatePinner(pins map[string][]string) (*CertificatePinner, error) {
	parsed := make(map[string][][]byte, len(pins))

	for pattern, hostPins := range pins {
		normalized := strings.ToLower(strings.TrimSpace(pattern))
		if normalized == "" || strings.Contains(strings.TrimPrefix(strings.TrimPrefix(normalized, "**."), "*."), "*") {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidPinPattern, pattern)
		}

		for _, pin := range hostPins {
			digest, err := parsePin(pin)
			if err != nil {
				return nil, err
			}

			parsed[normalized] = append(parsed[normalized], digest)
		}
	}

	return &CertificatePinner{pins: parsed}, nil
}

// Pin returns the pin of a certificate in "sha256/<base64>" form.
func Pin(cert *x509.Certificate) string {
	digest := sha256.Sum256(cert.RawSubjectPublicKeyInfo)

	return pinPrefix + base64.StdEncoding.EncodeToString(digest[:])
}

// Check verifies that chain satisfies the pins configured for host.
func (p *CertificatePinner) Check(host string, chain []*x509.Certificate) error {
	expected := p.pinsFor(host)
	if len(expected) == 0 {
		return nil
	}

	for _, cert := range chain {
		digest := sha256.Sum256(cert.RawSubjectPublicKeyInfo)

		for _, pin := range expected {
			if string(pin) == string(digest[:]) {
				return nil
			}
		}
	}

	return fmt.Errorf("%w for host '%s'", ErrCertificatePinMismatch, host)
}

// VerifyConnection can be assigned to tls.Config.VerifyConnection.
// It checks the verified chains when available and the peer certificates otherwise.
func (p *CertificatePinner) VerifyConnection(state tls.ConnectionState) error {
	chain := state.PeerCertificates

	if len(state.VerifiedChains) > 0 {
		chain = make([]*x509.Certificate, 0, len(state.PeerCertificates))
		for _, verified := range state.VerifiedChains {
			chain = append(chain, verified...)
		}
	}

	return p.Check(state.ServerName, chain)
}

// Apply installs the pinner on cfg, chaining any VerifyConnection callback already set.
func (p *CertificatePinner) Apply(cfg *tls.Config) {
	previous := cfg.VerifyConnection

	cfg.VerifyConnection = func(state tls.ConnectionState) error {
		if previous != nil {
			if err := previous(state); err != nil {
				return err
			}
		}

		return p.VerifyConnection(state)
	}
}

func (p *CertificatePinner) pinsFor(host string) [][]byte {
	host = strings.ToLower(strings.TrimSuffix(host, "."))

	var result [][]byte

	for pattern, digests := range p.pins {
		if matchesPattern(pattern, host) {
			result = append(result, digests...)
		}
	}

	return result
}

func matchesPattern(pattern, host string) bool {
	switch {
	case strings.HasPrefix(pattern, "**."):
		suffix := pattern[len("**."):]

		return host == suffix || strings.HasSuffix(host, "."+suffix)
	case strings.HasPrefix(pattern, "*."):
		suffix := pattern[len("*."):]
		if !strings.HasSuffix(host, "."+suffix) {
			return false
		}

		label := strings.TrimSuffix(host, "."+suffix)

		return label != "" && !strings.Contains(label, ".")
	default:
		return pattern == host
	}
}

func parsePin(pin string) ([]byte, error) {
	encoded, found := strings.CutPrefix(strings.TrimSpace(pin), pinPrefix)
	if !found {
		return nil, fmt.Errorf("%w: '%s' must start with '%s'", ErrInvalidPin, pin, pinPrefix)
	}

	digest, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %w", ErrInvalidPin, pin, err)
	}

	if len(digest) != sha256.Size {
		return nil, fmt.Errorf("%w: '%s' has %d bytes, want %d", ErrInvalidPin, pin, len(digest), sha256.Size)
	}

	return digest, nil
}
