package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// JournalCursor marks the last journal of a page. Journals are listed newest
// first by (journal_date, created_at, journal_id), so the cursor carries all three.
type JournalCursor struct {
	JournalDate time.Time
	CreatedAt   time.Time
	JournalID   string
}

// EncodeToken turns a cursor into an opaque URL-safe token.
func EncodeToken(c JournalCursor) string {
	tokenStr := fmt.Sprintf("%s|%s|%s", c.JournalDate.Format(timeFormat), c.CreatedAt.Format(timeFormat), c.JournalID)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (JournalCursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return JournalCursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return JournalCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	journalDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return JournalCursor{}, fmt.Errorf("invalid pagination token format (journal date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return JournalCursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return JournalCursor{JournalDate: journalDate, CreatedAt: createdAt, JournalID: parts[2]}, nil
}
