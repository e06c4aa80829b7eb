//nolint:nolintlint,revive // utils is a common and acceptable package name for utility functions.
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsTextContentType tests the IsTextContentType function.
func TestIsTextContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		expected    bool
	}{
		{
			name:        "text/plain",
			contentType: "text/plain",
			expected:    true,
		},
		{
			name:        "text/html with charset",
			contentType: "text/html; charset=utf-8",
			expected:    true,
		},
		{
			name:        "application/json",
			contentType: "application/json",
			expected:    true,
		},
		{
			name:        "application/samlmetadata+xml",
			contentType: "application/samlmetadata+xml",
			expected:    true,
		},
		{
			name:        "application/text",
			contentType: "application/text",
			expected:    true,
		},
		{
			name:        "form urlencoded",
			contentType: "application/x-www-form-urlencoded",
			expected:    true,
		},
		{
			name:        "image/jpeg",
			contentType: "image/jpeg",
			expected:    false,
		},
		{
			name:        "text with invalid charset",
			contentType: "text/plain; charset=invalid",
			expected:    false,
		},
		{
			name:        "invalid content type",
			contentType: "invalid/type",
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := IsTextContentType(tt.contentType)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestIsBlank tests the IsBlank function.
func TestIsBlank(t *testing.T) {
	t.Parallel()

	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   \t"))
	assert.False(t, IsBlank(" x "))
}

// TestParseKeyValuePairs tests the ParseKeyValuePairs function.
func TestParseKeyValuePairs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       []string
		expected    map[string]string
		expectError bool
	}{
		{
			name:     "empty input",
			input:    nil,
			expected: map[string]string{},
		},
		{
			name:     "single pair",
			input:    []string{"X-Trace=1"},
			expected: map[string]string{"X-Trace": "1"},
		},
		{
			name:     "value containing equals sign",
			input:    []string{"Filter=a=b", " Y =2"},
			expected: map[string]string{"Filter": "a=b", "Y": "2"},
		},
		{
			name:     "empty value",
			input:    []string{"X="},
			expected: map[string]string{"X": ""},
		},
		{
			name:        "missing separator",
			input:       []string{"broken"},
			expectError: true,
		},
		{
			name:        "empty key",
			input:       []string{"=value"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := ParseKeyValuePairs(tt.input)
			if tt.expectError {
				require.ErrorIs(t, err, ErrInvalidKeyValuePair)
				assert.Nil(t, result)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestSortedKeys tests the SortedKeys function.
func TestSortedKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(map[string]int{"c": 3, "a": 1, "b": 2}))
	assert.Empty(t, SortedKeys(map[string]int{}))
}

// TestStaticHeaderProvider_GetHeaders tests that the provider returns isolated copies.
func TestStaticHeaderProvider_GetHeaders(t *testing.T) {
	t.Parallel()

	source := map[string]string{"os": "go"}
	provider := NewStaticHeaderProvider(source)
	assert.Implements(t, (*HeaderProvider)(nil), provider)

	source["os"] = "changed"

	headers := provider.GetHeaders()
	assert.Equal(t, map[string]string{"os": "go"}, headers)

	headers["extra"] = "1"
	assert.Equal(t, map[string]string{"os": "go"}, provider.GetHeaders())
}
