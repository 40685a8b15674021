package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	c := Cursor{
		Timestamp: time.Date(2023, 5, 15, 14, 30, 45, 123456000, time.UTC),
		ID:        "3f1c2b9e-8a4d-4c1e-9b7a-2d5e6f708192",
	}

	token := EncodeToken(c)
	assert.NotEmpty(t, token, "Token should not be empty")
	assert.NotContains(t, token, "=", "Token should be safe to put in a query string")

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, c.Timestamp.Equal(decoded.Timestamp), "Timestamp should match after decode")
	assert.Equal(t, c.ID, decoded.ID)

	// Non-UTC input decodes to the same instant
	local := Cursor{Timestamp: c.Timestamp.In(time.FixedZone("X", 3600)), ID: "a"}
	decodedLocal, err := DecodeToken(EncodeToken(local))
	require.NoError(t, err)
	assert.True(t, c.Timestamp.Equal(decodedLocal.Timestamp))
}

func TestDecodeTokenError(t *testing.T) {
	_, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.RawURLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z"))
	_, err = DecodeToken(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.RawURLEncoding.EncodeToString([]byte("notadate|abc"))
	_, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timestamp parse")
}

func TestCursorBefore(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := Cursor{Timestamp: ts, ID: "m"}

	assert.True(t, c.Before(ts.Add(-time.Second), "z"))
	assert.False(t, c.Before(ts.Add(time.Second), "a"))
	assert.True(t, c.Before(ts, "a"))
	assert.False(t, c.Before(ts, "m"))
	assert.False(t, c.Before(ts, "z"))
}
