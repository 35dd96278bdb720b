package utils

import (
	"strings"
	"testing"

	isLib "github.com/matryer/is"
)

func TestHashAndVerifyPassword(t *testing.T) {
	is := isLib.New(t)

	hash, err := HashPassword("secret")
	is.NoErr(err)
	is.True(strings.HasPrefix(hash, "$argon2id$v=19$"))

	ok, err := VerifyPassword("secret", hash)
	is.NoErr(err)
	is.True(ok)

	ok, err = VerifyPassword("wrong", hash)
	is.NoErr(err)
	is.True(!ok)

	// Two hashes of the same password differ (random salt).
	other, err := HashPassword("secret")
	is.NoErr(err)
	is.True(hash != other)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	is := isLib.New(t)

	_, err := VerifyPassword("secret", "not-a-hash")
	is.True(err != nil)
	_, err = VerifyPassword("secret", "$bcrypt$v=19$m=65536,t=3,p=2$abc$def")
	is.True(err != nil)
}
