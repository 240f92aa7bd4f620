package service

import (
	"golang.org/x/crypto/bcrypt"

	"flixnet/internal/worker"
)

// BcryptCost is the work factor applied to newly stored credentials.
const BcryptCost = 12

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// ComparePassword reports whether password matches the stored bcrypt hash.
// bcrypt compares in constant time.
func ComparePassword(hash, password string) error {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password))
}

// HashPasswordOn runs HashPassword on the worker pool and waits for the
// result, so a burst of registrations cannot saturate every request
// goroutine with hashing work.
func HashPasswordOn(wp worker.Pool, password string) (string, error) {
	type result struct {
		hash string
		err  error
	}
	ch := make(chan result, 1)
	wp.Submit(func() {
		h, err := HashPassword(password)
		ch <- result{hash: h, err: err}
	})
	r := <-ch
	return r.hash, r.err
}

// ComparePasswordOn runs ComparePassword on the worker pool and waits.
func ComparePasswordOn(wp worker.Pool, hash, password string) error {
	ch := make(chan error, 1)
	wp.Submit(func() {
		ch <- ComparePassword(hash, password)
	})
	return <-ch
}
