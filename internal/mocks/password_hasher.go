package mocks

import (
	"errors"
	"strings"
	"sync"

	"github.com/phrazzld/taskdeck/internal/service/auth"
)

// hashPrefix marks values produced by the default Hash implementation.
const hashPrefix = "hashed:"

// ErrPasswordMismatch is returned by the default Compare on mismatch.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordHasher implements auth.PasswordHasher for testing. With no
// function fields set it "hashes" by prefixing, which keeps tests fast and
// deterministic.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	mu           sync.Mutex
	HashCalls    int
	CompareCalls int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	m.mu.Lock()
	m.HashCalls++
	m.mu.Unlock()

	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return hashPrefix + password, nil
}

// Compare implements auth.PasswordHasher.
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.mu.Lock()
	m.CompareCalls++
	m.mu.Unlock()

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if !strings.HasPrefix(hashedPassword, hashPrefix) || hashedPassword[len(hashPrefix):] != password {
		return ErrPasswordMismatch
	}
	return nil
}
