package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	cursor := JournalCursor{
		JournalDate: time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC),
		JournalID:   "9b2f6c1e-0f5a-4f0e-9d4b-2f1f7a1f0c11",
	}

	token := EncodeToken(cursor)
	assert.NotEmpty(t, token)
	assert.NotContains(t, token, "=")

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, cursor, decoded)
}

func TestEncodeDecodeToken_ZeroTimes(t *testing.T) {
	cursor := JournalCursor{JournalID: "j1"}

	decoded, err := DecodeToken(EncodeToken(cursor))

	require.NoError(t, err)
	assert.True(t, decoded.JournalDate.IsZero())
	assert.True(t, decoded.CreatedAt.IsZero())
	assert.Equal(t, "j1", decoded.JournalID)
}

func TestDecodeTokenError(t *testing.T) {
	cases := []struct {
		name  string
		token string
		want  string
	}{
		{"not base64", "this is not base64!", "base64 decode"},
		{"missing parts", base64.RawURLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z")), "split"},
		{"empty id", base64.RawURLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z|2023-05-15T00:00:00Z|")), "split"},
		{"bad date", base64.RawURLEncoding.EncodeToString([]byte("yesterday|2023-05-15T00:00:00Z|j1")), "journal date parse"},
		{"bad created_at", base64.RawURLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z|noon|j1")), "created_at parse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeToken(tc.token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
