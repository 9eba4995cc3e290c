package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) map[string]Store {
	t.Helper()

	bolt, err := NewBolt(filepath.Join(t.TempDir(), "fsm.db"), "")
	require.NoError(t, err)
	mem := NewMemory(0)

	t.Cleanup(func() {
		assert.NoError(t, bolt.Close())
		assert.NoError(t, mem.Close())
	})

	return map[string]Store{
		"bolt":   bolt,
		"memory": mem,
	}
}

func TestStoreContract(t *testing.T) {
	for name, st := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := st.Get(ctx, "door-1")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, st.Put(ctx, "door-1", []byte("open")))
			got, err := st.Get(ctx, "door-1")
			require.NoError(t, err)
			assert.Equal(t, []byte("open"), got)

			// overwrite
			require.NoError(t, st.Put(ctx, "door-1", []byte("locked")))
			got, err = st.Get(ctx, "door-1")
			require.NoError(t, err)
			assert.Equal(t, []byte("locked"), got)

			// returned slices are private copies
			got[0] = 'X'
			again, err := st.Get(ctx, "door-1")
			require.NoError(t, err)
			assert.Equal(t, []byte("locked"), again)

			require.NoError(t, st.Delete(ctx, "door-1"))
			_, err = st.Get(ctx, "door-1")
			require.ErrorIs(t, err, ErrNotFound)

			// deleting a missing key is fine
			require.NoError(t, st.Delete(ctx, "door-1"))
		})
	}
}

func TestStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, st := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Get(ctx, "k")
			require.ErrorIs(t, err, context.Canceled)
			require.ErrorIs(t, st.Put(ctx, "k", []byte("v")), context.Canceled)
			require.ErrorIs(t, st.Delete(ctx, "k"), context.Canceled)
		})
	}
}

func TestMemoryPutCopies(t *testing.T) {
	ctx := context.Background()
	st := NewMemory(0)

	value := []byte("idle")
	require.NoError(t, st.Put(ctx, "k", value))
	value[0] = 'X'

	got, err := st.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("idle"), got)
}

func TestMemoryTTL(t *testing.T) {
	ctx := context.Background()
	st := NewMemory(20 * time.Millisecond)
	defer st.Close()

	require.NoError(t, st.Put(ctx, "k", []byte("v")))
	_, err := st.Get(ctx, "k")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := st.Get(ctx, "k")
		return err != nil
	}, time.Second, 10*time.Millisecond)
}

func TestBoltReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fsm.db")

	st, err := NewBolt(path, "doors")
	require.NoError(t, err)
	require.NoError(t, st.Put(ctx, "front", []byte{1, 2, 3}))
	require.NoError(t, st.Close())

	st, err = NewBolt(path, "doors")
	require.NoError(t, err)
	defer st.Close()

	got, err := st.Get(ctx, "front")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}
