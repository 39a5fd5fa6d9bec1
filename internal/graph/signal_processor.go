package graph

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/quantmuse/tradecouncil/consts"
)

// SignalProcessor extracts the actionable BUY, SELL or HOLD signal from a
// final decision text.
type SignalProcessor struct {
	logger *zap.Logger
}

func NewSignalProcessor(logger *zap.Logger) *SignalProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SignalProcessor{logger: logger}
}

var (
	proposalPattern  = regexp.MustCompile(`FINAL TRANSACTION PROPOSAL:\s*\*\*\s*(BUY|SELL|HOLD)\s*\*\*`)
	bareTokenPattern = regexp.MustCompile(`\b(BUY|SELL|HOLD)\b`)
)

// Process returns the extracted action and whether the signal was
// ambiguous. A well-formed proposal marker wins; otherwise the last bare
// decision token in the text is used. When neither is present the action
// degrades to HOLD with the ambiguous flag set, so callers can tell a
// deliberate HOLD from an unreadable decision.
func (p *SignalProcessor) Process(fullSignal string) (action string, ambiguous bool) {
	text := strings.ToUpper(fullSignal)

	if matches := proposalPattern.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		return matches[len(matches)-1][1], false
	}

	if matches := bareTokenPattern.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		return matches[len(matches)-1][1], false
	}

	p.logger.Warn("no actionable signal in final decision, defaulting to HOLD",
		zap.Int("signal_length", len(fullSignal)))
	return consts.DecisionHold, true
}
