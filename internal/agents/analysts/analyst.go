// Package analysts builds the four report-producing pipeline stages. Each
// stage is a self-contained subgraph: a loader that renders the prompt from
// the shared state, a react agent with a restricted toolset, and a router
// that stores the report and hands off to the next stage.
package analysts

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"
	"github.com/pkg/errors"

	"github.com/quantmuse/tradecouncil/internal/agents"
	"github.com/quantmuse/tradecouncil/internal/models"
	"github.com/quantmuse/tradecouncil/internal/utils"
)

const analystMaxSteps = 40

const analystSystemTpl = `You are a helpful AI assistant, collaborating with other assistants.
Use the provided tools to progress towards answering the question.
If you are unable to fully answer, that's OK; another assistant with different tools
will help where you left off. Execute what you can to make progress.

You have access to the following tools:
{tool_descriptions}

When calling a tool that accepts an end_date parameter, always pass {trade_date}
so your analysis never looks past the trade date.

{system_message}

For your reference, the trade date is {trade_date}. The company we want to look at is {ticker}.`

// analystSpec describes one analyst stage: where its prompt lives, which
// tools it may call, where its report goes.
type analystSpec struct {
	name       string
	promptPath string
	toolDesc   string
	reportFile string
	store      func(state *models.TradingState, report string)
}

func newAnalystNode(ctx context.Context, deps *agents.Deps, spec analystSpec, toolset []tool.BaseTool, next string) (*compose.Graph[*models.TradingState, *models.TradingState], error) {
	g := compose.NewGraph[*models.TradingState, *models.TradingState]()

	agentNode, err := react.NewAgent(ctx, &react.AgentConfig{
		MaxStep:          analystMaxSteps,
		ToolCallingModel: deps.QuickThink,
		ToolsConfig: compose.ToolsNodeConfig{
			Tools: toolset,
		},
		StreamToolCallChecker: agents.ToolCallChecker,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "create %s agent", spec.name)
	}
	agentLambda, err := compose.AnyLambda(agentNode.Generate, agentNode.Stream, nil, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s agent lambda", spec.name)
	}

	load := func(ctx context.Context, _ *models.TradingState, opts ...any) (output []*schema.Message, err error) {
		err = compose.ProcessState[*models.TradingState](ctx, func(_ context.Context, state *models.TradingState) error {
			systemPrompt, err := utils.LoadPrompt(spec.promptPath)
			if err != nil {
				return err
			}
			promptTemp := prompt.FromMessages(schema.FString,
				schema.SystemMessage(analystSystemTpl),
				schema.MessagesPlaceholder("user_input", true),
			)
			output, err = promptTemp.Format(ctx, map[string]any{
				"tool_descriptions": spec.toolDesc,
				"system_message":    systemPrompt,
				"trade_date":        state.TradeDate,
				"ticker":            state.CompanyOfInterest,
				"user_input": []*schema.Message{
					schema.UserMessage("Proceed with your analysis for " + state.CompanyOfInterest + "."),
				},
			})
			return err
		})
		return output, err
	}

	router := func(ctx context.Context, input *schema.Message, opts ...any) (output *models.TradingState, err error) {
		err = compose.ProcessState[*models.TradingState](ctx, func(_ context.Context, state *models.TradingState) error {
			defer func() { output = state }()
			if input == nil || strings.TrimSpace(input.Content) == "" {
				return &agents.ReasoningError{Stage: spec.name, Err: errors.New("empty analyst response")}
			}
			spec.store(state, input.Content)
			state.AppendMessage(input)
			deps.SaveReport(state, spec.reportFile, input.Content)
			state.Goto = next
			return nil
		})
		return output, err
	}

	_ = g.AddLambdaNode("load", compose.InvokableLambdaWithOption(load))
	_ = g.AddLambdaNode("agent", agentLambda)
	_ = g.AddLambdaNode("router", compose.InvokableLambdaWithOption(router))

	_ = g.AddEdge(compose.START, "load")
	_ = g.AddEdge("load", "agent")
	_ = g.AddEdge("agent", "router")
	_ = g.AddEdge("router", compose.END)

	return g, nil
}
