package auth

import (
	"os"
	"strings"
)

// SaveSession writes the session token next to the working directory so the
// next run can resume. Mode 0600: the token grants a login.
func SaveSession(path, token string) error {
	return os.WriteFile(path, []byte(token), 0o600)
}

// LoadSession reads and validates a previously saved token. Any failure
// (missing file, expired or tampered token) just means no session.
func LoadSession(path, secret string) (*Claims, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	c, err := ParseToken(strings.TrimSpace(string(b)), secret)
	if err != nil {
		return nil, false
	}
	return c, true
}

// ClearSession removes the saved token, if any.
func ClearSession(path string) {
	_ = os.Remove(path)
}
