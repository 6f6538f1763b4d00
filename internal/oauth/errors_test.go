package oauth

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderError_ErrorText(t *testing.T) {
	tests := []struct {
		name     string
		err      *ProviderError
		expected string
	}{
		{
			name:     "oauth error code wins",
			err:      &ProviderError{Op: OpExchange, StatusCode: 400, Code: "invalid_grant", Message: "Bad Request"},
			expected: "invalid_grant",
		},
		{
			name:     "message when no code",
			err:      &ProviderError{Op: OpFetch, StatusCode: 404, Message: "Requested entity was not found."},
			expected: "Requested entity was not found.",
		},
		{
			name:     "status text fallback",
			err:      &ProviderError{Op: OpRefresh, StatusCode: 503},
			expected: "Service Unavailable",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.ErrorText())
			assert.Contains(t, tc.err.Error(), tc.expected)
			assert.Contains(t, tc.err.Error(), string(tc.err.Op))
		})
	}
}

func TestRawJSON(t *testing.T) {
	assert.Nil(t, RawJSON(nil))
	assert.Equal(t, `{"error":"x"}`, string(RawJSON([]byte(`{"error":"x"}`))))
	assert.Equal(t, `"<html>oops</html>"`, string(RawJSON([]byte("<html>oops</html>"))))
	assert.Equal(t, `"line one\nline \"two\""`, string(RawJSON([]byte("line one\nline \"two\""))))

	var decoded string
	require.NoError(t, json.Unmarshal(RawJSON([]byte("a & b <c>")), &decoded))
	assert.Equal(t, "a & b <c>", decoded)
}

func TestErrRefreshTokenMissing_IsUnauthenticated(t *testing.T) {
	assert.True(t, errors.Is(ErrRefreshTokenMissing, ErrUnauthenticated))
	assert.False(t, errors.Is(ErrUnauthenticated, ErrRefreshTokenMissing))
}
