package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/restclient/internal/auth"
	"github.com/oshokin/restclient/internal/constants"
	"github.com/oshokin/restclient/internal/logger"
	http_transport "github.com/oshokin/restclient/internal/transport/http"
	"github.com/oshokin/restclient/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// ClientID is the OAuth2 client identifier.
	ClientID string `mapstructure:"client_id"`
	// ClientSecret is the OAuth2 client secret.
	ClientSecret string `mapstructure:"client_secret"`
	// Site is the base URL of the authorization server.
	Site string `mapstructure:"site"`
	// Token is the stored access token. "auth token" rewrites it.
	Token string `mapstructure:"token"`
	// GrantType is the OAuth2 grant type: "password" or "client_credentials".
	GrantType string `mapstructure:"grant_type"`
	// Username is the resource owner name.
	Username string `mapstructure:"username"`
	// Password is the resource owner password.
	Password string `mapstructure:"password"`
	// AuthType is one of "none", "basic", "oauth2", "token".
	AuthType string `mapstructure:"auth_type"`
	// Headers are sent with every request. Keys are case-insensitive.
	Headers map[string]string `mapstructure:"headers"`
	// ConnectTimeoutMS is the connect timeout in milliseconds.
	ConnectTimeoutMS int64 `mapstructure:"connect_timeout_ms"`
	// ReadTimeoutMS is the per-read timeout in milliseconds.
	ReadTimeoutMS int64 `mapstructure:"read_timeout_ms"`
	// WriteTimeoutMS is the per-write timeout in milliseconds.
	WriteTimeoutMS int64 `mapstructure:"write_timeout_ms"`
	// DebugEnabled attaches the request/response logger to the transport client.
	DebugEnabled bool `mapstructure:"debug_enabled"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// MaxLogLength limits logged request and response bodies (e.g., "1MB", "512KB").
	MaxLogLength string `mapstructure:"max_log_length"`
	// MaxRequests is the maximum number of calls running at once.
	MaxRequests int64 `mapstructure:"max_requests"`
	// Platform is sent in the "os" header of every request.
	Platform string `mapstructure:"platform"`
	// CertificatePins lists the public key pins of pinned hosts.
	CertificatePins []CertificatePin `mapstructure:"certificate_pins"`
	// Filename is the file the configuration was loaded from (set automatically).
	Filename string `mapstructure:"-"`
	// ParsedAuthType is the parsed authentication type.
	ParsedAuthType auth.Type
	// ParsedConnectTimeout is the parsed connect timeout.
	ParsedConnectTimeout time.Duration
	// ParsedReadTimeout is the parsed read timeout.
	ParsedReadTimeout time.Duration
	// ParsedWriteTimeout is the parsed write timeout.
	ParsedWriteTimeout time.Duration
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedMaxLogLength is the parsed body logging limit in bytes.
	ParsedMaxLogLength uint64
	// ParsedCertificatePinner is the pinner built from CertificatePins, nil when there are no pins.
	ParsedCertificatePinner *http_transport.CertificatePinner
}

// CertificatePin holds the pins of one host pattern.
// It is a list entry rather than a map key because viper splits keys on dots.
type CertificatePin struct {
	// Host is an exact host name, "*.example.com", or "**.example.com".
	Host string `mapstructure:"host"`
	// Pins are "sha256/<base64>" SubjectPublicKeyInfo digests.
	Pins []string `mapstructure:"pins"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".restclient.yaml"

	// DefaultConnectTimeoutMS is the default connect timeout in milliseconds.
	DefaultConnectTimeoutMS = 60
	// DefaultReadTimeoutMS is the default per-read timeout in milliseconds.
	DefaultReadTimeoutMS = 30
	// DefaultWriteTimeoutMS is the default per-write timeout in milliseconds.
	DefaultWriteTimeoutMS = 30

	// DefaultMaxLogLength is the default limit of logged bodies.
	DefaultMaxLogLength = "1MB"

	// DefaultPlatform is the default value of the "os" header.
	DefaultPlatform = "go"

	// tokenKey is the configuration key rewritten by SaveConfig.
	tokenKey = "token"
)

// Static error definitions for better error handling.
var (
	// ErrInvalidTimeout indicates that a timeout setting is negative.
	ErrInvalidTimeout = errors.New("timeout cannot be negative")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidMaxRequests indicates that the max requests setting is negative.
	ErrInvalidMaxRequests = errors.New("max_requests cannot be negative")
	// ErrEmptySite indicates that oauth2 authentication has no authorization server.
	ErrEmptySite = errors.New("site cannot be empty for oauth2 authentication")
	// ErrEmptyUsername indicates that basic or password authentication has no username.
	ErrEmptyUsername = errors.New("username cannot be empty")
)

// setDefaults registers the default value of every optional setting.
func setDefaults() {
	viper.SetDefault("auth_type", string(auth.TypeNone))
	viper.SetDefault("connect_timeout_ms", DefaultConnectTimeoutMS)
	viper.SetDefault("read_timeout_ms", DefaultReadTimeoutMS)
	viper.SetDefault("write_timeout_ms", DefaultWriteTimeoutMS)
	viper.SetDefault("debug_enabled", true)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("max_log_length", DefaultMaxLogLength)
	viper.SetDefault("max_requests", http_transport.DefaultMaxRequests)
	viper.SetDefault("platform", DefaultPlatform)
}

// LoadConfig loads configuration settings from a YAML file.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	setDefaults()
	viper.SetConfigFile(configFilename)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Filename = configFilename

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:funlen,cyclop // Validation functions naturally have high complexity and length due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	cfg.ParsedAuthType, err = auth.ParseType(cfg.AuthType)
	if err != nil {
		return err
	}

	switch cfg.ParsedAuthType {
	case auth.TypeBasic:
		if utils.IsBlank(cfg.Username) {
			return fmt.Errorf("%w for basic authentication", ErrEmptyUsername)
		}
	case auth.TypeOAuth2:
		if utils.IsBlank(cfg.Site) {
			return ErrEmptySite
		}

		if strings.EqualFold(strings.TrimSpace(cfg.GrantType), auth.GrantTypePassword) && utils.IsBlank(cfg.Username) {
			return fmt.Errorf("%w for the password grant", ErrEmptyUsername)
		}
	case auth.TypeNone, auth.TypeToken:
	}

	timeouts := []struct {
		name   string
		value  int64
		parsed *time.Duration
	}{
		{name: "connect_timeout_ms", value: cfg.ConnectTimeoutMS, parsed: &cfg.ParsedConnectTimeout},
		{name: "read_timeout_ms", value: cfg.ReadTimeoutMS, parsed: &cfg.ParsedReadTimeout},
		{name: "write_timeout_ms", value: cfg.WriteTimeoutMS, parsed: &cfg.ParsedWriteTimeout},
	}

	for _, timeout := range timeouts {
		if timeout.value < 0 {
			return fmt.Errorf("%w: %s is %d", ErrInvalidTimeout, timeout.name, timeout.value)
		}

		*timeout.parsed = time.Duration(timeout.value) * time.Millisecond
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !(isLogLevelCorrect) {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	maxLogLength := strings.TrimSpace(cfg.MaxLogLength)
	if maxLogLength != "" && maxLogLength != "0" {
		cfg.ParsedMaxLogLength, err = humanize.ParseBytes(maxLogLength)
		if err != nil {
			return fmt.Errorf("failed to parse max log length: %w", err)
		}
	}

	if cfg.MaxRequests < 0 {
		return ErrInvalidMaxRequests
	}

	if utils.IsBlank(cfg.Platform) {
		cfg.Platform = DefaultPlatform
	}

	if len(cfg.CertificatePins) > 0 {
		pins := make(map[string][]string, len(cfg.CertificatePins))
		for _, pin := range cfg.CertificatePins {
			pins[pin.Host] = append(pins[pin.Host], pin.Pins...)
		}

		cfg.ParsedCertificatePinner, err = http_transport.NewCertificatePinner(pins)
		if err != nil {
			return fmt.Errorf("failed to parse certificate pins: %w", err)
		}
	}

	return nil
}

// SaveConfig saves the token to the configuration file while preserving the original format and order.
func SaveConfig(cfg *Config) error {
	configFile := getConfigFilePath(cfg)

	// Read the original file content.
	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		return handleMissingConfigFile(configFile, cfg.Token, err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Update or append the token value in the node tree.
	updateTokenInNode(&node, cfg.Token)

	// Marshal back to YAML (preserves order).
	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	// Write the file back with preserved order.
	if err = os.WriteFile(configFile, newContent, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getConfigFilePath returns the file the config was loaded from, the file viper used, or the default.
func getConfigFilePath(cfg *Config) string {
	if cfg.Filename != "" {
		return cfg.Filename
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		return DefaultConfigFilename
	}

	return configFile
}

// handleMissingConfigFile creates a new config file if it doesn't exist.
func handleMissingConfigFile(configFile, token string, err error) error {
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// File doesn't exist, create it with viper.
	viper.Set(tokenKey, token)

	if err = viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// updateTokenInNode updates the token value in the YAML node tree, appending the key when missing.
func updateTokenInNode(node *yaml.Node, token string) {
	// The root node is a document node, content[0] is the actual map.
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return
	}

	mapNode := node.Content[0]

	// Iterate through key-value pairs (stored as alternating nodes).
	for i := 0; i+1 < len(mapNode.Content); i += 2 {
		keyNode := mapNode.Content[i]
		valueNode := mapNode.Content[i+1]

		if keyNode.Value == tokenKey {
			// Update the value while preserving style.
			valueNode.Value = token
			valueNode.Tag = "!!str"

			// Ensure it's quoted if it contains special characters.
			if valueNode.Style == 0 {
				valueNode.Style = yaml.DoubleQuotedStyle
			}

			return
		}
	}

	mapNode.Content = append(mapNode.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: tokenKey},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: token, Style: yaml.DoubleQuotedStyle},
	)
}
