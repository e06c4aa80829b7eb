package auth

import (
	"errors"
	"fmt"
	"strings"
)

// Type is the authentication scheme of a client.
type Type string

const (
	// TypeNone sends requests without credentials.
	TypeNone Type = "none"
	// TypeBasic sends the username and password as Basic credentials.
	TypeBasic Type = "basic"
	// TypeOAuth2 obtains an access token from the site's token endpoint.
	TypeOAuth2 Type = "oauth2"
	// TypeToken sends the stored token as a Bearer token.
	TypeToken Type = "token"
)

// ErrUnknownType indicates that an authentication type is not recognized.
var ErrUnknownType = errors.New("unknown authentication type")

// ParseType parses an authentication type name. An empty name means TypeNone.
// "oauth" is accepted as an alias of "oauth2".
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(TypeNone):
		return TypeNone, nil
	case string(TypeBasic):
		return TypeBasic, nil
	case string(TypeOAuth2), "oauth":
		return TypeOAuth2, nil
	case string(TypeToken):
		return TypeToken, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnknownType, name)
	}
}

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}
