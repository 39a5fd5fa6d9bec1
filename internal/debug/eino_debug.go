// Package debug hosts the optional eino devops server for inspecting
// compiled graphs in a browser.
package debug

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/devops"
	"go.uber.org/zap"

	"github.com/quantmuse/tradecouncil/internal/config"
)

// EinoDebugger wraps the devops visual debug plugin. It is a no-op unless
// enabled in config.
type EinoDebugger struct {
	cfg    *config.Config
	logger *zap.Logger
}

func NewEinoDebugger(cfg *config.Config, logger *zap.Logger) *EinoDebugger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EinoDebugger{cfg: cfg, logger: logger}
}

// Initialize starts the debug server. Graphs compiled after this call
// become visible in the web interface.
func (d *EinoDebugger) Initialize(ctx context.Context) error {
	if !d.cfg.EinoDebugEnabled {
		return nil
	}
	if err := devops.Init(ctx); err != nil {
		return fmt.Errorf("initialize eino debug plugin: %w", err)
	}
	d.logger.Info("eino debug server running", zap.String("url", d.URL()))
	return nil
}

func (d *EinoDebugger) URL() string {
	if !d.cfg.EinoDebugEnabled {
		return ""
	}
	return fmt.Sprintf("http://localhost:%d", d.cfg.EinoDebugPort)
}
