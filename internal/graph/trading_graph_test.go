package graph

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmuse/tradecouncil/internal/config"
)

func graphTestConfig(t *testing.T) *config.Config {
	t.Helper()

	tmp := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.LLMProvider = "openai"
	cfg.OpenAIAPIKey = "test-key"
	cfg.ResultsDir = filepath.Join(tmp, "results")
	cfg.EvalDir = filepath.Join(tmp, "eval_results")
	cfg.DataDir = filepath.Join(tmp, "data")
	cfg.DataCacheDir = filepath.Join(tmp, "data", "cache")
	cfg.MemoryDBPath = filepath.Join(tmp, "data", "memory.db")
	return cfg
}

func TestNewTradingAgentsGraphValidatesConfig(t *testing.T) {
	cfg := graphTestConfig(t)
	cfg.OpenAIAPIKey = ""

	_, err := NewTradingAgentsGraph(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestPropagateRejectsForeignGoroutine(t *testing.T) {
	g, err := NewTradingAgentsGraph(context.Background(), graphTestConfig(t), nil)
	require.NoError(t, err)
	defer g.Close()

	errCh := make(chan error, 1)
	go func() {
		_, _, err := g.Propagate(context.Background(), "AAPL", "2024-05-01")
		errCh <- err
	}()

	err = <-errCh
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrThreadAffinity))
}

func TestReflectRejectsForeignGoroutine(t *testing.T) {
	g, err := NewTradingAgentsGraph(context.Background(), graphTestConfig(t), nil)
	require.NoError(t, err)
	defer g.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- g.ReflectAndRemember(context.Background(), 0.01)
	}()
	assert.True(t, errors.Is(<-errCh, ErrThreadAffinity))
}

func TestPropagateRejectsBadDate(t *testing.T) {
	g, err := NewTradingAgentsGraph(context.Background(), graphTestConfig(t), nil)
	require.NoError(t, err)
	defer g.Close()

	_, _, err = g.Propagate(context.Background(), "AAPL", "05/01/2024")
	assert.Error(t, err)
}

func TestReflectRequiresFinishedRun(t *testing.T) {
	g, err := NewTradingAgentsGraph(context.Background(), graphTestConfig(t), nil)
	require.NoError(t, err)
	defer g.Close()

	assert.Error(t, g.ReflectAndRemember(context.Background(), 0.01))
}
