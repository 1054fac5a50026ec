// internal/domain/session/state.go
package session

import (
	"strings"
	"sync"

	"panastore/internal/domain/commerce"
)

// State tracks whether a visitor is authenticated, holding the bearer
// credential and the resolved profile.
//
// Invariant: the token is non-empty iff authenticated is true. A transient
// mismatch is allowed only while a stored credential is being validated;
// validation failure resets the state to unauthenticated.
type State struct {
	mu            sync.Mutex
	authenticated bool
	token         string
	customer      *commerce.Customer
}

func NewState() *State {
	return &State{}
}

// SetAuthenticated records a successful login.
func (s *State) SetAuthenticated(token string, customer *commerce.Customer) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = strings.TrimSpace(token)
	s.customer = customer
	s.authenticated = s.token != ""
}

// SetCustomer updates the resolved profile without touching the credential.
func (s *State) SetCustomer(customer *commerce.Customer) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customer = customer
}

// Reset clears the credential and profile (logout or validation failure).
func (s *State) Reset() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = false
	s.token = ""
	s.customer = nil
}

// Snapshot returns a consistent view of the state.
func (s *State) Snapshot() (authenticated bool, token string, customer *commerce.Customer) {
	if s == nil {
		return false, "", nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.authenticated, s.token, s.customer
}

func (s *State) IsAuthenticated() bool {
	ok, _, _ := s.Snapshot()
	return ok
}
