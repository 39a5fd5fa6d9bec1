package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantmuse/tradecouncil/consts"
)

func TestProcessProposalMarker(t *testing.T) {
	sp := NewSignalProcessor(nil)

	action, ambiguous := sp.Process("After weighing both sides... FINAL TRANSACTION PROPOSAL: **BUY**")
	assert.Equal(t, consts.DecisionBuy, action)
	assert.False(t, ambiguous)
}

func TestProcessProposalCaseAndSpacing(t *testing.T) {
	sp := NewSignalProcessor(nil)

	action, ambiguous := sp.Process("final transaction proposal: ** sell **")
	assert.Equal(t, consts.DecisionSell, action)
	assert.False(t, ambiguous)
}

func TestProcessProposalBeatsBareToken(t *testing.T) {
	sp := NewSignalProcessor(nil)

	// A bare token after the marker must not override it.
	action, _ := sp.Process("FINAL TRANSACTION PROPOSAL: **SELL** but a cautious investor might BUY later")
	assert.Equal(t, consts.DecisionSell, action)
}

func TestProcessLastProposalWins(t *testing.T) {
	sp := NewSignalProcessor(nil)

	text := "FINAL TRANSACTION PROPOSAL: **BUY**\nOn reflection: FINAL TRANSACTION PROPOSAL: **HOLD**"
	action, _ := sp.Process(text)
	assert.Equal(t, consts.DecisionHold, action)
}

func TestProcessBareTokenFallback(t *testing.T) {
	sp := NewSignalProcessor(nil)

	action, ambiguous := sp.Process("given the risks I would sell here and revisit next week")
	assert.Equal(t, consts.DecisionSell, action)
	assert.False(t, ambiguous)

	// Last token wins when several appear.
	action, _ = sp.Process("I considered a buy, but the answer is hold")
	assert.Equal(t, consts.DecisionHold, action)
}

func TestProcessWordBoundaries(t *testing.T) {
	sp := NewSignalProcessor(nil)

	// Embedded substrings are not decision tokens.
	action, ambiguous := sp.Process("shareholders are holding through the buyback")
	assert.Equal(t, consts.DecisionHold, action)
	assert.True(t, ambiguous)
}

func TestProcessNoSignal(t *testing.T) {
	sp := NewSignalProcessor(nil)

	action, ambiguous := sp.Process("the committee could not reach a conclusion")
	assert.Equal(t, consts.DecisionHold, action)
	assert.True(t, ambiguous)

	action, ambiguous = sp.Process("")
	assert.Equal(t, consts.DecisionHold, action)
	assert.True(t, ambiguous)
}
