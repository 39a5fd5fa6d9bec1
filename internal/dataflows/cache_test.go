package dataflows

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPayload struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

func TestCacheRoundTrip(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Hour, true)
	params := map[string]string{"symbol": "AAPL"}

	var miss cachedPayload
	assert.False(t, cm.Get("yahoo", "quote", params, &miss))

	require.NoError(t, cm.Set("yahoo", "quote", params, cachedPayload{Symbol: "AAPL", Price: 187.5}))

	var hit cachedPayload
	require.True(t, cm.Get("yahoo", "quote", params, &hit))
	assert.Equal(t, "AAPL", hit.Symbol)
	assert.InDelta(t, 187.5, hit.Price, 1e-9)
}

func TestCacheKeyedByParams(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Hour, true)
	require.NoError(t, cm.Set("yahoo", "quote", map[string]string{"symbol": "AAPL"}, cachedPayload{Symbol: "AAPL"}))

	var out cachedPayload
	assert.False(t, cm.Get("yahoo", "quote", map[string]string{"symbol": "MSFT"}, &out))
}

func TestCacheExpires(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Nanosecond, true)
	params := map[string]string{"symbol": "AAPL"}
	require.NoError(t, cm.Set("yahoo", "quote", params, cachedPayload{Symbol: "AAPL"}))

	time.Sleep(time.Millisecond)
	var out cachedPayload
	assert.False(t, cm.Get("yahoo", "quote", params, &out))
}

func TestCacheDisabled(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Hour, false)
	params := map[string]string{"symbol": "AAPL"}

	require.NoError(t, cm.Set("yahoo", "quote", params, cachedPayload{Symbol: "AAPL"}))
	var out cachedPayload
	assert.False(t, cm.Get("yahoo", "quote", params, &out))
}
