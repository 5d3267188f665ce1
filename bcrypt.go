package bearer

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword will generate a salted password hash
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost())
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password. bcrypt performs the
// comparison in constant time.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}

// HashResult is the completion value of HashPasswordAsync.
type HashResult struct {
	Hash string
	Err  error
}

// HashPasswordAsync runs HashPassword off the calling goroutine and delivers
// the outcome on the returned channel. Hashing is intentionally expensive;
// this keeps a slow hash from blocking callers that have other work to do.
func HashPasswordAsync(password string) <-chan HashResult {
	out := make(chan HashResult, 1)
	go func() {
		hash, err := HashPassword(password)
		out <- HashResult{Hash: hash, Err: err}
		close(out)
	}()
	return out
}

// RandomPasswordHash is a temporary password
func RandomPasswordHash() string {
	pwd := uuid.New()

	h, err := HashPassword(pwd.String())
	if err != nil {
		return RandomPasswordHash()
	}

	return h
}
