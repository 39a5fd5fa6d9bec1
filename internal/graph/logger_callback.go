package graph

import (
	"context"
	"errors"
	"io"

	"github.com/cloudwego/eino/callbacks"
	ecmodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
)

// TraceCallback logs every node transition and model output while a run
// is in flight. It is attached only in debug mode.
type TraceCallback struct {
	callbacks.HandlerBuilder

	logger *zap.Logger
}

func NewTraceCallback(logger *zap.Logger) *TraceCallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TraceCallback{logger: logger}
}

func (cb *TraceCallback) OnStart(ctx context.Context, info *callbacks.RunInfo, input callbacks.CallbackInput) context.Context {
	if info != nil {
		cb.logger.Debug("node start",
			zap.String("name", info.Name),
			zap.String("component", string(info.Component)))
	}
	return ctx
}

func (cb *TraceCallback) OnEnd(ctx context.Context, info *callbacks.RunInfo, output callbacks.CallbackOutput) context.Context {
	if info != nil {
		cb.logger.Debug("node end",
			zap.String("name", info.Name),
			zap.String("component", string(info.Component)))
	}
	return ctx
}

func (cb *TraceCallback) OnError(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
	name := ""
	if info != nil {
		name = info.Name
	}
	cb.logger.Error("node error", zap.String("name", name), zap.Error(err))
	return ctx
}

func (cb *TraceCallback) logMsg(msg *schema.Message) {
	if msg == nil {
		return
	}
	if len(msg.ToolCalls) > 0 {
		for _, tc := range msg.ToolCalls {
			cb.logger.Debug("tool call",
				zap.String("tool", tc.Function.Name),
				zap.String("args", tc.Function.Arguments))
		}
		return
	}
	cb.logger.Debug("model output",
		zap.String("role", string(msg.Role)),
		zap.Int("content_length", len(msg.Content)))
}

func (cb *TraceCallback) OnEndWithStreamOutput(ctx context.Context, info *callbacks.RunInfo,
	output *schema.StreamReader[callbacks.CallbackOutput]) context.Context {
	go func() {
		defer output.Close()
		for {
			frame, err := output.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				cb.logger.Debug("stream recv error", zap.Error(err))
				return
			}

			switch v := frame.(type) {
			case *schema.Message:
				cb.logMsg(v)
			case *ecmodel.CallbackOutput:
				cb.logMsg(v.Message)
			case []*schema.Message:
				for _, m := range v {
					cb.logMsg(m)
				}
			}
		}
	}()
	return ctx
}

func (cb *TraceCallback) OnStartWithStreamInput(ctx context.Context, info *callbacks.RunInfo,
	input *schema.StreamReader[callbacks.CallbackInput]) context.Context {
	defer input.Close()
	return ctx
}
