package auth

import (
	"crypto/subtle"

	"github.com/devyanshh69/feedback-box-backend/pkg/utils"
)

// Verifier checks admin credentials. The board ships with a single
// administrator identity, but the check itself is pluggable so a real
// credential store can replace the configured pair.
type Verifier interface {
	Verify(username, password string) bool
}

// StaticVerifier compares against one configured username/password pair
// in constant time.
type StaticVerifier struct {
	Username string
	Password string
}

func (v StaticVerifier) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(v.Password)) == 1
	return userOK && passOK
}

// HashVerifier compares the password against an Argon2id hash so the
// plaintext never has to live in config.
type HashVerifier struct {
	Username     string
	PasswordHash string
}

func (v HashVerifier) Verify(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) != 1 {
		return false
	}
	ok, err := utils.VerifyPassword(password, v.PasswordHash)
	return err == nil && ok
}
