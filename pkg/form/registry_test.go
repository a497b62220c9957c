package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nursemoves/beta-signup/internal/testutil"
)

func TestRegistryOpenGetClose(t *testing.T) {
	r := NewRegistry(newService(testutil.NewStore(), &testutil.Sender{}), time.Hour)
	defer r.Stop()
	r.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }

	c := r.Open()
	assert.NotEmpty(t, c.ID())
	assert.Equal(t, "3/1/2025", c.Snapshot().Date)
	assert.Equal(t, PhaseIdle, c.Snapshot().Phase)
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(c.ID())
	require.NoError(t, err)
	assert.Same(t, c, got)

	require.NoError(t, r.Close(c.ID()))
	_, err = r.Get(c.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, r.Close(c.ID()), ErrSessionNotFound)
}

func TestRegistryUnknownID(t *testing.T) {
	r := NewRegistry(nil, time.Hour)
	defer r.Stop()

	_, err := r.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistryExpiresIdleForms(t *testing.T) {
	r := NewRegistry(nil, 50*time.Millisecond)
	defer r.Stop()

	c := r.Open()
	time.Sleep(200 * time.Millisecond)

	_, err := r.Get(c.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistryFormsAreIndependent(t *testing.T) {
	r := NewRegistry(nil, time.Hour)
	defer r.Stop()

	a := r.Open()
	b := r.Open()
	assert.NotEqual(t, a.ID(), b.ID())

	require.NoError(t, a.SetField("fullName", "Jane Doe"))
	assert.Empty(t, b.Fields().FullName)
}
