// Package material generates the random secret material the installer
// provisions: database passwords and the at-rest encryption keyring.
package material

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// MinPasswordLength is the shortest password this package will produce.
// The database server enforces its own minimum of 8; staying well above
// that costs nothing.
const MinPasswordLength = 16

// Password returns a random password of the given length built from
// URL-safe base64 characters, which satisfies the server's complexity
// categories (upper, lower, digit).
func Password(length int) (string, error) {
	if length < MinPasswordLength {
		return "", fmt.Errorf("password length %d below minimum %d", length, MinPasswordLength)
	}

	// base64 expands 3 bytes to 4 characters; over-provision and trim.
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(raw)
	return encoded[:length], nil
}

// EncryptionKey is one entry of the platform's at-rest encryption keyring.
type EncryptionKey struct {
	Name     string `json:"name"`
	Version  int    `json:"version"`
	Primary  bool   `json:"primary"`
	Material string `json:"material"`
}

// keyBytes is the AES-256 key length the platform expects.
const keyBytes = 32

// NewKeyring generates a fresh single-entry keyring as the JSON document
// the platform reads. Callers must treat the result as immutable once it
// has been written to the cluster: regenerating the ring orphans all data
// encrypted with the previous material.
func NewKeyring() ([]byte, error) {
	key := make([]byte, keyBytes)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate encryption key: %w", err)
	}

	ring := []EncryptionKey{
		{
			Name:     "general",
			Version:  1,
			Primary:  true,
			Material: base64.StdEncoding.EncodeToString(key),
		},
	}

	return json.Marshal(ring)
}

// ParseKeyring decodes a keyring document. Used to validate carried-forward
// material before reusing it.
func ParseKeyring(data []byte) ([]EncryptionKey, error) {
	var ring []EncryptionKey
	if err := json.Unmarshal(data, &ring); err != nil {
		return nil, fmt.Errorf("invalid keyring document: %w", err)
	}
	if len(ring) == 0 {
		return nil, fmt.Errorf("keyring document has no entries")
	}
	return ring, nil
}
