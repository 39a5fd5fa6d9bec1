package graph

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/quantmuse/tradecouncil/internal/agents"
	"github.com/quantmuse/tradecouncil/internal/config"
	"github.com/quantmuse/tradecouncil/internal/memory"
	"github.com/quantmuse/tradecouncil/internal/models"
	"github.com/quantmuse/tradecouncil/internal/storage"
)

// ErrThreadAffinity means a graph was driven from a goroutine other than
// the one that built it. Each graph owns non-reentrant model clients, so
// this is rejected before any work happens.
var ErrThreadAffinity = errors.New("trading graph used outside its owner goroutine")

// TradingAgentsGraph is the run facade for one pipeline instance. It is
// bound to the goroutine that constructed it; concurrent backtests build
// one graph per worker instead of sharing.
type TradingAgentsGraph struct {
	cfg          *config.Config
	deps         *agents.Deps
	orchestrator compose.Runnable[*models.TradingState, *models.TradingState]
	signals      *SignalProcessor
	reflector    *Reflector
	trace        *TraceCallback
	logger       *zap.Logger
	ownerGoID    uint64

	// lastState holds the most recent finished run for reflection.
	lastState *models.TradingState
}

// NewTradingAgentsGraph validates the configuration, builds the models and
// memories and compiles the pipeline. The calling goroutine becomes the
// graph's owner.
func NewTradingAgentsGraph(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*TradingAgentsGraph, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, errors.Wrap(err, "prepare directories")
	}

	quick, deep, err := agents.NewChatModels(ctx, cfg)
	if err != nil {
		return nil, err
	}
	memories, err := memory.OpenRegistry(cfg.MemoryDBPath)
	if err != nil {
		return nil, err
	}

	deps := &agents.Deps{
		Cfg:        cfg,
		QuickThink: quick,
		DeepThink:  deep,
		Memories:   memories,
		Logger:     logger,
	}

	orchestrator, err := NewTradingOrchestrator(ctx, deps)
	if err != nil {
		memories.Close()
		return nil, err
	}

	return &TradingAgentsGraph{
		cfg:          cfg,
		deps:         deps,
		orchestrator: orchestrator,
		signals:      NewSignalProcessor(logger),
		reflector:    NewReflector(deps),
		trace:        NewTraceCallback(logger),
		logger:       logger,
		ownerGoID:    goroutineID(),
	}, nil
}

// Propagate runs the full pipeline for one symbol and trade date. It
// returns the final state together with the processed decision.
func (g *TradingAgentsGraph) Propagate(ctx context.Context, symbol, date string) (*models.TradingState, *models.TradingDecision, error) {
	if err := g.checkAffinity(); err != nil {
		return nil, nil, err
	}

	parsedDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "invalid trade date %q", date)
	}

	if g.cfg.PropagationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.PropagationTimeout)
		defer cancel()
	}

	chain := agents.AnalystChain(g.cfg.SelectedAnalysts)
	state := models.NewTradingState(symbol, parsedDate, chain[0])

	g.logger.Info("starting pipeline run",
		zap.String("symbol", symbol), zap.String("date", date))

	var invokeOpts []compose.Option
	if g.cfg.Debug {
		invokeOpts = append(invokeOpts, compose.WithCallbacks(g.trace))
	}

	result, err := g.orchestrator.Invoke(ctx, state, invokeOpts...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "pipeline run failed")
	}
	g.lastState = result

	action, ambiguous := g.signals.Process(result.FinalTradeDecision)
	decision := &models.TradingDecision{
		Symbol:    symbol,
		Date:      date,
		Action:    action,
		Ambiguous: ambiguous,
		Rationale: result.FinalTradeDecision,
	}

	if err := storage.WriteStateLog(g.cfg, result); err != nil {
		g.logger.Warn("failed to persist state log", zap.Error(err))
	}

	g.logger.Info("pipeline run finished",
		zap.String("symbol", symbol), zap.String("date", date),
		zap.String("action", action), zap.Bool("ambiguous", ambiguous))
	return result, decision, nil
}

// ReflectAndRemember reviews the most recent run against its realized
// return and stores the lessons in the component memories.
func (g *TradingAgentsGraph) ReflectAndRemember(ctx context.Context, returnsLosses float64) error {
	if err := g.checkAffinity(); err != nil {
		return err
	}
	if g.lastState == nil {
		return errors.New("no finished run to reflect on")
	}
	return g.reflector.Reflect(ctx, g.lastState, returnsLosses)
}

func (g *TradingAgentsGraph) Close() error {
	return g.deps.Memories.Close()
}

func (g *TradingAgentsGraph) checkAffinity() error {
	if id := goroutineID(); id != g.ownerGoID {
		return errors.Wrapf(ErrThreadAffinity,
			"owned by goroutine %d, called from %d", g.ownerGoID, id)
	}
	return nil
}

// goroutineID parses the current goroutine's id out of its stack header.
// There is no public API for this; the header format "goroutine N [" has
// been stable across releases.
func goroutineID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, _ := strconv.ParseUint(string(fields[1]), 10, 64)
	return id
}
