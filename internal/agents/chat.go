package agents

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/quantmuse/tradecouncil/internal/config"
	"github.com/quantmuse/tradecouncil/internal/memory"
)

// Deps carries everything agent nodes need: the two reasoning models, the
// reflection memories and the run configuration. One Deps belongs to one
// orchestrator; nothing in it is shared across workers.
type Deps struct {
	Cfg        *config.Config
	QuickThink model.ToolCallingChatModel
	DeepThink  model.ToolCallingChatModel
	Memories   *memory.Registry
	Logger     *zap.Logger
}

// NewChatModels constructs the quick-think and deep-think models for the
// configured provider. Models are created fresh per orchestrator and must
// never be handed across goroutines.
func NewChatModels(ctx context.Context, cfg *config.Config) (quick, deep model.ToolCallingChatModel, err error) {
	switch cfg.LLMProvider {
	case "openai":
		maxTokens := 8192
		quick, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:   cfg.BackendURL,
			APIKey:    cfg.OpenAIAPIKey,
			Model:     cfg.QuickThinkLLM,
			MaxTokens: &maxTokens,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create quick-think model: %w", err)
		}
		deep, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:   cfg.BackendURL,
			APIKey:    cfg.OpenAIAPIKey,
			Model:     cfg.DeepThinkLLM,
			MaxTokens: &maxTokens,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create deep-think model: %w", err)
		}
	case "deepseek":
		quick, err = deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:    cfg.DeepSeekAPIKey,
			Model:     cfg.QuickThinkLLM,
			MaxTokens: 8192,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create quick-think model: %w", err)
		}
		deep, err = deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:    cfg.DeepSeekAPIKey,
			Model:     cfg.DeepThinkLLM,
			MaxTokens: 8192,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create deep-think model: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported llm provider %q", cfg.LLMProvider)
	}
	return quick, deep, nil
}

// ToolCallChecker reports whether a streamed response requests a tool
// invocation; the react loop uses it to decide between another tool round
// and handing off to the next stage.
func ToolCallChecker(ctx context.Context, sr *schema.StreamReader[*schema.Message]) (bool, error) {
	defer sr.Close()
	for {
		msg, err := sr.Recv()
		if err != nil {
			if err.Error() == "EOF" {
				return false, nil
			}
			return false, err
		}
		if len(msg.ToolCalls) > 0 {
			return true, nil
		}
	}
}
