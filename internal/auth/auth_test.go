package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T, delay time.Duration) (*Gate, *[]time.Duration) {
	t.Helper()
	g, err := NewGate("admin", "admin123", delay)
	require.NoError(t, err)

	var slept []time.Duration
	g.sleep = func(d time.Duration) { slept = append(slept, d) }
	return g, &slept
}

func TestLogin_Success(t *testing.T) {
	g, slept := newTestGate(t, time.Second)
	require.False(t, g.LoggedIn())

	require.NoError(t, g.Login("admin", "admin123"))

	assert.True(t, g.LoggedIn())
	assert.Equal(t, "admin", g.User())
	assert.Equal(t, []time.Duration{time.Second}, *slept)
}

func TestLogin_RejectsWrongPair(t *testing.T) {
	g, slept := newTestGate(t, time.Second)

	for _, pair := range [][2]string{{"admin", "wrong"}, {"root", "admin123"}, {"", ""}} {
		err := g.Login(pair[0], pair[1])
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, "Invalid username or password", err.Error())
	}

	assert.False(t, g.LoggedIn())
	// Failed attempts wait too.
	assert.Len(t, *slept, 3)
}

func TestLogout(t *testing.T) {
	g, _ := newTestGate(t, 0)
	require.NoError(t, g.Login("admin", "admin123"))

	g.Logout()

	assert.False(t, g.LoggedIn())
	assert.Empty(t, g.User())
}

func TestLogin_ZeroDelaySkipsWait(t *testing.T) {
	g, slept := newTestGate(t, 0)

	require.NoError(t, g.Login("admin", "admin123"))

	assert.Empty(t, *slept)
}
