// Package confirmation generates and hashes the single-use codes that
// prove control of an e-mail address. Only the hash is ever stored.
package confirmation

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

func GenerateCode() string {
	return uuid.NewString()
}

func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// EncodeEmailForLink URL-encodes an address for use in a confirmation
// link, escaping literal plus signs as %2B so they survive transport.
func EncodeEmailForLink(email string) string {
	return strings.ReplaceAll(url.QueryEscape(email), "+", "%2B")
}
