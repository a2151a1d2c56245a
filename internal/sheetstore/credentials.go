package sheetstore

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoCredentials is returned when the credential blob is empty. Surfaced at
// first store use, not at startup.
var ErrNoCredentials = errors.New("sheetstore: google credentials not configured")

// ParseCredentials accepts service-account JSON either raw or base64-encoded.
// Direct parse is attempted first; base64 is the fallback.
func ParseCredentials(blob string) ([]byte, error) {
	trimmed := strings.TrimSpace(blob)
	if trimmed == "" {
		return nil, ErrNoCredentials
	}
	if json.Valid([]byte(trimmed)) {
		return []byte(trimmed), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("sheetstore: credentials are neither JSON nor base64: %w", err)
	}
	if !json.Valid(decoded) {
		return nil, errors.New("sheetstore: base64-decoded credentials are not valid JSON")
	}
	return decoded, nil
}
