package hashcrack

import (
	"github.com/GehirnInc/crypt/sha512_crypt"
	"github.com/pkg/errors"
)

// Hasher is the salted one-way function. Hash must be deterministic and
// return the salt followed by the digest.
type Hasher interface {
	Hash(password, salt string) (string, error)
}

type sha512CryptHasher struct{}

func NewSHA512CryptHasher() Hasher {
	return sha512CryptHasher{}
}

func (sha512CryptHasher) Hash(password, salt string) (string, error) {
	out, err := sha512_crypt.New().Generate([]byte(password), []byte(salt))
	if err != nil {
		return "", errors.Wrap(err, "sha512-crypt")
	}
	return out, nil
}
