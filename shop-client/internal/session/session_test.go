package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagebound/bookstore/shop-client/internal/localstore"
)

func newGate(t *testing.T) *Gate {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store)
}

func TestGate_RegisterAndLogin(t *testing.T) {
	gate := newGate(t)

	require.NoError(t, gate.Register("Asha", "Asha@X.com ", "secret"))

	// email is stored lower case
	sess, err := gate.Login("asha@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Asha", sess.Name)
	assert.Equal(t, "asha@x.com", sess.Email)
	assert.False(t, sess.IsAdmin)

	current, err := gate.Current()
	require.NoError(t, err)
	assert.Equal(t, sess, current)
}

func TestGate_DuplicateEmail(t *testing.T) {
	gate := newGate(t)

	require.NoError(t, gate.Register("One", "a@x.com", "pw1"))
	assert.ErrorIs(t, gate.Register("Two", "a@x.com", "pw2"), ErrUserExists)
}

func TestGate_MissingFields(t *testing.T) {
	gate := newGate(t)

	assert.ErrorIs(t, gate.Register("", "a@x.com", "pw"), ErrMissingFields)
	assert.ErrorIs(t, gate.Register("A", "", "pw"), ErrMissingFields)
	assert.ErrorIs(t, gate.Register("A", "a@x.com", ""), ErrMissingFields)
}

func TestGate_InvalidCredentials(t *testing.T) {
	gate := newGate(t)
	require.NoError(t, gate.Register("Asha", "a@x.com", "secret"))

	_, err := gate.Login("a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = gate.Login("nobody@x.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGate_AdminSentinel(t *testing.T) {
	gate := newGate(t)
	require.NoError(t, gate.Register("Root", AdminEmail, "pw"))

	sess, err := gate.Login(AdminEmail, "pw")
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin)
}

func TestGate_Logout(t *testing.T) {
	gate := newGate(t)
	require.NoError(t, gate.Register("Asha", "a@x.com", "secret"))
	_, err := gate.Login("a@x.com", "secret")
	require.NoError(t, err)

	require.NoError(t, gate.Logout())
	_, err = gate.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestGate_CurrentWithoutLogin(t *testing.T) {
	gate := newGate(t)
	_, err := gate.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestGate_TamperedMarker(t *testing.T) {
	store, err := localstore.Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	gate := New(store)

	require.NoError(t, store.Put(localstore.KeySession, []byte("not a token")))
	_, err = gate.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
