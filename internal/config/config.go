package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries everything a pipeline run needs. It is always passed as an
// explicit value owned by one orchestrator; workers receive their own Clone,
// never a shared pointer.
type Config struct {
	ProjectDir   string `json:"project_dir" yaml:"project_dir"`
	ResultsDir   string `json:"results_dir" yaml:"results_dir"`
	EvalDir      string `json:"eval_dir" yaml:"eval_dir"`
	DataDir      string `json:"data_dir" yaml:"data_dir"`
	DataCacheDir string `json:"data_cache_dir" yaml:"data_cache_dir"`
	MemoryDBPath string `json:"memory_db_path" yaml:"memory_db_path"`

	LLMProvider   string `json:"llm_provider" yaml:"llm_provider"`
	DeepThinkLLM  string `json:"deep_think_llm" yaml:"deep_think_llm"`
	QuickThinkLLM string `json:"quick_think_llm" yaml:"quick_think_llm"`
	BackendURL    string `json:"backend_url" yaml:"backend_url"`

	MaxDebateRounds      int `json:"max_debate_rounds" yaml:"max_debate_rounds"`
	MaxRiskDiscussRounds int `json:"max_risk_discuss_rounds" yaml:"max_risk_discuss_rounds"`
	MaxRecurLimit        int `json:"max_recur_limit" yaml:"max_recur_limit"`

	// RiskLevel steers the trader prompt: low, medium, high or no_guidance.
	RiskLevel string `json:"risk_level" yaml:"risk_level"`

	// SelectedAnalysts is the subset of report stages to run, in canonical
	// order. Empty means all four.
	SelectedAnalysts []string `json:"selected_analysts" yaml:"selected_analysts"`

	OnlineTools bool `json:"online_tools" yaml:"online_tools"`
	Debug       bool `json:"debug" yaml:"debug"`

	// PropagationTimeout bounds one full pipeline run. Zero disables the
	// guard and a stuck reasoning call blocks its worker.
	PropagationTimeout time.Duration `json:"propagation_timeout" yaml:"propagation_timeout"`

	// Backtest settings.
	InitialCash   float64 `json:"initial_cash" yaml:"initial_cash"`
	NumWorkers    int     `json:"num_workers" yaml:"num_workers"`
	SkipFailedDay bool    `json:"skip_failed_days" yaml:"skip_failed_days"`

	// Eino graph debug server.
	EinoDebugEnabled bool `json:"eino_debug_enabled" yaml:"eino_debug_enabled"`
	EinoDebugPort    int  `json:"eino_debug_port" yaml:"eino_debug_port"`

	// External credentials.
	OpenAIAPIKey    string `json:"-" yaml:"-"`
	DeepSeekAPIKey  string `json:"-" yaml:"-"`
	FinnhubAPIKey   string `json:"-" yaml:"-"`
	AlpacaAPIKey    string `json:"-" yaml:"-"`
	AlpacaAPISecret string `json:"-" yaml:"-"`
	RedditUserAgent string `json:"reddit_user_agent" yaml:"reddit_user_agent"`

	CacheEnabled bool `json:"cache_enabled" yaml:"cache_enabled"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		ProjectDir:   currentDir,
		ResultsDir:   filepath.Join(currentDir, "results"),
		EvalDir:      filepath.Join(currentDir, "eval_results"),
		DataDir:      filepath.Join(currentDir, "data"),
		DataCacheDir: filepath.Join(currentDir, "data", "cache"),
		MemoryDBPath: filepath.Join(currentDir, "data", "memory.db"),

		LLMProvider:   "openai",
		DeepThinkLLM:  "o4-mini",
		QuickThinkLLM: "gpt-4o-mini",
		BackendURL:    "https://api.openai.com/v1",

		MaxDebateRounds:      1,
		MaxRiskDiscussRounds: 1,
		MaxRecurLimit:        100,

		RiskLevel:        "medium",
		SelectedAnalysts: []string{"market", "social", "news", "fundamentals"},

		OnlineTools: true,
		Debug:       false,

		InitialCash: 10000,
		NumWorkers:  1,

		EinoDebugEnabled: false,
		EinoDebugPort:    52538,

		RedditUserAgent: "tradecouncil/1.0",
		CacheEnabled:    true,
	}

	_ = godotenv.Load()
	cfg.loadFromEnv()

	return cfg
}

// LoadYAML overlays settings from a YAML file onto the defaults, with
// environment variables still taking precedence for credentials.
func LoadYAML(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.loadFromEnv()
	return cfg, nil
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
	}
	if val := os.Getenv("DEEP_THINK_LLM"); val != "" {
		c.DeepThinkLLM = val
	}
	if val := os.Getenv("QUICK_THINK_LLM"); val != "" {
		c.QuickThinkLLM = val
	}
	if val := os.Getenv("BACKEND_URL"); val != "" {
		c.BackendURL = val
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.DeepSeekAPIKey = val
	}
	if val := os.Getenv("FINNHUB_API_KEY"); val != "" {
		c.FinnhubAPIKey = val
	}
	if val := os.Getenv("APCA_API_KEY_ID"); val != "" {
		c.AlpacaAPIKey = val
	}
	if val := os.Getenv("APCA_API_SECRET_KEY"); val != "" {
		c.AlpacaAPISecret = val
	}
	if val := os.Getenv("CACHE_ENABLED"); val != "" {
		if cache, err := strconv.ParseBool(val); err == nil {
			c.CacheEnabled = cache
		}
	}
	if val := os.Getenv("ONLINE_TOOLS"); val != "" {
		if online, err := strconv.ParseBool(val); err == nil {
			c.OnlineTools = online
		}
	}
}

// Validate fails fast on configuration that would only surface mid-run.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("config: OPENAI_API_KEY is required for the openai provider")
		}
	case "deepseek":
		if c.DeepSeekAPIKey == "" {
			return fmt.Errorf("config: DEEPSEEK_API_KEY is required for the deepseek provider")
		}
	default:
		return fmt.Errorf("config: unsupported llm provider %q", c.LLMProvider)
	}

	if c.MaxDebateRounds < 1 {
		return fmt.Errorf("config: max_debate_rounds must be at least 1, got %d", c.MaxDebateRounds)
	}
	if c.MaxRiskDiscussRounds < 1 {
		return fmt.Errorf("config: max_risk_discuss_rounds must be at least 1, got %d", c.MaxRiskDiscussRounds)
	}
	switch c.RiskLevel {
	case "low", "medium", "high", "no_guidance":
	default:
		return fmt.Errorf("config: unknown risk level %q", c.RiskLevel)
	}
	for _, a := range c.SelectedAnalysts {
		if _, ok := analystKinds[a]; !ok {
			return fmt.Errorf("config: unknown analyst %q", a)
		}
	}
	return nil
}

var analystKinds = map[string]struct{}{
	"market":       {},
	"social":       {},
	"news":         {},
	"fundamentals": {},
}

// Clone returns a deep copy. Each backtest worker builds its orchestrator
// from a clone so no run shares mutable configuration with another.
func (c *Config) Clone() *Config {
	cp := *c
	cp.SelectedAnalysts = append([]string(nil), c.SelectedAnalysts...)
	return &cp
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.ResultsDir, c.EvalDir, c.DataDir, c.DataCacheDir, filepath.Dir(c.MemoryDBPath)}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
