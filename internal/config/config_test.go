package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.LLMProvider = "openai"
	cfg.OpenAIAPIKey = "test-key"
	return cfg
}

func TestValidateAcceptsDefaults(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRequiresProviderKey(t *testing.T) {
	cfg := validConfig()
	cfg.OpenAIAPIKey = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.LLMProvider = "deepseek"
	cfg.DeepSeekAPIKey = ""
	assert.Error(t, cfg.Validate())

	cfg.DeepSeekAPIKey = "test-key"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := validConfig()
	cfg.LLMProvider = "llamacpp"
	assert.Error(t, cfg.Validate())
}

func TestValidateRoundBounds(t *testing.T) {
	cfg := validConfig()
	cfg.MaxDebateRounds = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.MaxRiskDiscussRounds = -1
	assert.Error(t, cfg.Validate())
}

func TestValidateRiskLevel(t *testing.T) {
	for _, level := range []string{"low", "medium", "high", "no_guidance"} {
		cfg := validConfig()
		cfg.RiskLevel = level
		assert.NoError(t, cfg.Validate(), level)
	}

	cfg := validConfig()
	cfg.RiskLevel = "yolo"
	assert.Error(t, cfg.Validate())
}

func TestValidateAnalystSelection(t *testing.T) {
	cfg := validConfig()
	cfg.SelectedAnalysts = []string{"market", "news"}
	assert.NoError(t, cfg.Validate())

	cfg.SelectedAnalysts = []string{"market", "astrology"}
	assert.Error(t, cfg.Validate())
}

func TestCloneIsolation(t *testing.T) {
	cfg := validConfig()
	cfg.SelectedAnalysts = []string{"market", "news"}
	cfg.PropagationTimeout = 5 * time.Minute

	clone := cfg.Clone()
	require.Equal(t, cfg.SelectedAnalysts, clone.SelectedAnalysts)
	assert.Equal(t, cfg.PropagationTimeout, clone.PropagationTimeout)

	clone.SelectedAnalysts[0] = "social"
	assert.Equal(t, "market", cfg.SelectedAnalysts[0],
		"clone must not alias the original's slice")
}
