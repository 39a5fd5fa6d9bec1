package memory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := OpenRegistry(filepath.Join(t.TempDir(), "memory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestOpenRegistryRequiresPath(t *testing.T) {
	_, err := OpenRegistry("")
	assert.Error(t, err)
}

func TestGetIsIdempotent(t *testing.T) {
	r := openTestRegistry(t)

	a, err := r.Get("bull_memory")
	require.NoError(t, err)
	b, err := r.Get("bull_memory")
	require.NoError(t, err)
	assert.Same(t, a, b)

	// Distinct names get distinct stores over the same database.
	c, err := r.Get("bear_memory")
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}

func TestAddAndGetMemories(t *testing.T) {
	r := openTestRegistry(t)
	store, err := r.Get("trader_memory")
	require.NoError(t, err)

	require.NoError(t, store.AddMemory(
		"tech stock with strong earnings momentum and high valuation",
		"lean bullish but size the position down"))
	require.NoError(t, store.AddMemory(
		"utility company with stable dividends in a rate cut cycle",
		"hold through the cycle"))

	recs, err := store.GetMemories("tech stock with strong earnings and stretched valuation", 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	// The overlapping situation ranks first.
	assert.Equal(t, "lean bullish but size the position down", recs[0].Recommendation)
}

func TestGetMemoriesLimit(t *testing.T) {
	r := openTestRegistry(t)
	store, err := r.Get("bull_memory")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.AddMemory("some market situation", "some advice"))
	}

	recs, err := store.GetMemories("some market situation", 3)
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	// Non-positive n falls back to the default of two.
	recs, err = store.GetMemories("some market situation", 0)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestGetMemoriesEmptyStore(t *testing.T) {
	r := openTestRegistry(t)
	store, err := r.Get("risk_manager_memory")
	require.NoError(t, err)

	recs, err := store.GetMemories("anything", 2)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "bull_memory", sanitizeName("bull_memory"))
	assert.Equal(t, "weird_name_", sanitizeName("weird-name;"))
}
