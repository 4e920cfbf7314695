// Package auth is the session gate in front of the employee endpoints.
//
// There is exactly one administrator credential pair and one boolean
// "logged in" flag. It is a convenience gate, not a security boundary.
package auth

import (
	"crypto/subtle"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login when the pair does not match.
var ErrInvalidCredentials = errors.New("Invalid username or password")

// Gate holds the credential pair and the session flag.
type Gate struct {
	username string
	hash     []byte
	delay    time.Duration
	sleep    func(time.Duration)

	loggedIn atomic.Bool
	user     atomic.Value // string
}

// NewGate hashes password with bcrypt and returns a logged-out gate.
// delay is waited on every login attempt before the verdict.
func NewGate(username, password string, delay time.Duration) (*Gate, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	g := &Gate{
		username: username,
		hash:     hash,
		delay:    delay,
		sleep:    time.Sleep,
	}
	g.user.Store("")
	return g, nil
}

// Login waits the fixed delay, then checks the credentials. The wait cannot
// be cancelled.
func (g *Gate) Login(username, password string) error {
	if g.delay > 0 {
		g.sleep(g.delay)
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(g.hash, []byte(password)) == nil
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}

	g.user.Store(username)
	g.loggedIn.Store(true)
	return nil
}

// Logout clears the session flag.
func (g *Gate) Logout() {
	g.loggedIn.Store(false)
	g.user.Store("")
}

// LoggedIn reports the session flag.
func (g *Gate) LoggedIn() bool { return g.loggedIn.Load() }

// User returns the logged-in username, or "" when logged out.
func (g *Gate) User() string { return g.user.Load().(string) }
