package oauth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRecord_IsExpired(t *testing.T) {
	expiresAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	record := TokenRecord{AccessToken: "at", ExpiresAt: expiresAt}

	assert.False(t, record.IsExpired(expiresAt.Add(-time.Second)), "before expiry")
	assert.False(t, record.IsExpired(expiresAt), "exactly at expiry is still valid")
	assert.True(t, record.IsExpired(expiresAt.Add(time.Nanosecond)), "after expiry")
}

func TestTokenRecord_JSON(t *testing.T) {
	record := TokenRecord{
		AccessToken:  "AT1",
		RefreshToken: "RT1",
		ExpiresAt:    time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, `{"accessToken":"AT1","refreshToken":"RT1","expiresAt":"2026-01-01T12:00:00Z"}`, string(data))
}

func TestTokenRecord_FormattingRedactsTokens(t *testing.T) {
	record := TokenRecord{
		AccessToken:  "secret-access",
		RefreshToken: "secret-refresh",
		ExpiresAt:    time.Now(),
	}

	for _, format := range []string{"%s", "%v", "%+v", "%#v"} {
		out := fmt.Sprintf(format, record)
		assert.NotContains(t, out, "secret-access", format)
		assert.NotContains(t, out, "secret-refresh", format)
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("stored", "record", record)
	assert.False(t, strings.Contains(buf.String(), "secret-"), "slog output leaked a token: %s", buf.String())
	assert.Contains(t, buf.String(), "has_refresh_token=true")
}
