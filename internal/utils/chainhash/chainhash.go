// Package chainhash computes the content hash that links ledger entries into a chain.
//
// The canonical encoding is versioned. Version 1 renders the hashed fields as a
// JSON object with lexicographically sorted keys, ", " and ": " separators and
// ASCII-only string escaping. Stored hashes depend on this byte layout, so any
// change to it must ship as a new version.
package chainhash

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/shopspring/decimal"
)

// CurrentVersion is the encoding version used for new ledger entries.
const CurrentVersion = 1

// GenesisHash is the previous-hash marker of the first entry in a chain.
const GenesisHash = "0000000000000000000000000000000000000000000000000000000000000000"

// ErrUnsupportedVersion is returned for encoding versions this package does not know.
var ErrUnsupportedVersion = errors.New("unsupported canonical encoding version")

// Fields is the immutable content of a ledger entry that goes into its hash.
// Nil pointers are encoded as JSON null.
type Fields struct {
	TransactionID     string
	SenderAccountID   string
	ReceiverAccountID *string
	Amount            decimal.Decimal
	TransactionType   string
	Description       *string
	Timestamp         time.Time
	PreviousBlockHash string
	Status            string
}

// FormatAmount renders an amount as a fixed-point string with two decimals.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatTimestamp renders t in UTC as ISO-8601 with an explicit +00:00 offset.
// Microseconds are included only when non-zero; anything finer is dropped.
func FormatTimestamp(t time.Time) string {
	t = t.UTC().Truncate(time.Microsecond)
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02T15:04:05-07:00")
	}
	return t.Format("2006-01-02T15:04:05.000000-07:00")
}

// Canonical returns the version 1 hash input for f.
func Canonical(f Fields) []byte {
	// keys are listed in sorted order
	members := []struct {
		key   string
		value *string
	}{
		{"amount", strPtr(FormatAmount(f.Amount))},
		{"description", f.Description},
		{"previous_block_hash", strPtr(f.PreviousBlockHash)},
		{"receiver_account_id", f.ReceiverAccountID},
		{"sender_account_id", strPtr(f.SenderAccountID)},
		{"status", strPtr(f.Status)},
		{"timestamp", strPtr(FormatTimestamp(f.Timestamp))},
		{"transaction_id", strPtr(f.TransactionID)},
		{"transaction_type", strPtr(f.TransactionType)},
	}

	var b strings.Builder
	b.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			b.WriteString(", ")
		}
		writeString(&b, m.key)
		b.WriteString(": ")
		if m.value == nil {
			b.WriteString("null")
			continue
		}
		writeString(&b, *m.value)
	}
	b.WriteByte('}')
	return []byte(b.String())
}

// Sum returns the lowercase hex SHA-256 digest of the current canonical encoding of f.
func Sum(f Fields) string {
	digest := sha256.Sum256(Canonical(f))
	return hex.EncodeToString(digest[:])
}

// SumVersion computes the digest of f under the given encoding version.
func SumVersion(version int, f Fields) (string, error) {
	switch version {
	case 1:
		return Sum(f), nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
}

// IsHash reports whether s looks like a digest produced by Sum.
func IsHash(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func strPtr(s string) *string {
	return &s
}

const hexDigits = "0123456789abcdef"

// writeString writes s as a quoted JSON string using only printable ASCII.
func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r >= 0x20 && r <= 0x7e {
				b.WriteRune(r)
				continue
			}
			if r > 0xffff {
				hi, lo := utf16.EncodeRune(r)
				writeUnicodeEscape(b, hi)
				writeUnicodeEscape(b, lo)
				continue
			}
			writeUnicodeEscape(b, r)
		}
	}
	b.WriteByte('"')
}

func writeUnicodeEscape(b *strings.Builder, r rune) {
	b.WriteString(`\u`)
	b.WriteByte(hexDigits[(r>>12)&0xf])
	b.WriteByte(hexDigits[(r>>8)&0xf])
	b.WriteByte(hexDigits[(r>>4)&0xf])
	b.WriteByte(hexDigits[r&0xf])
}
