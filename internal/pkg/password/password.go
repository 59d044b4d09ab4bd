package password

import (
	appErr "github.com/gridwatch/gridboard/internal/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

// Hash digests a plaintext password with bcrypt. The output embeds a
// random salt, so two calls with the same input produce different
// strings; Compare is the only valid way to check a digest.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", appErr.ErrInvalid
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare reports whether plain was the input that produced hash.
// bcrypt's comparison does not early-exit on the first differing byte,
// which keeps mismatch timing independent of where the difference is.
func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
