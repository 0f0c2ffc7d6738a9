package auth

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Credential is one entry of the static credential list.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Match reports whether the supplied password matches this entry. An
// entry whose stored password starts with "$2" is treated as a bcrypt
// hash; anything else is compared in constant time as plaintext.
func (c Credential) Match(password string) bool {
	if strings.HasPrefix(c.Password, "$2") {
		return ComparePassword(c.Password, password) == nil
	}
	return subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1
}

// LoadCredentials reads the JSON credential file:
// [{"username": ..., "password": ...}, ...].
func LoadCredentials(path string) ([]Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	var creds []Credential
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}
	return creds, nil
}
