// Package display renders pipeline and backtest results for the terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quantmuse/tradecouncil/consts"
	"github.com/quantmuse/tradecouncil/internal/backtest"
	"github.com/quantmuse/tradecouncil/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	buyStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	sellStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	holdStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func actionStyle(action string) lipgloss.Style {
	switch action {
	case consts.DecisionBuy:
		return buyStyle
	case consts.DecisionSell:
		return sellStyle
	default:
		return holdStyle
	}
}

// RenderDecision formats the outcome of one pipeline run.
func RenderDecision(decision *models.TradingDecision) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Decision for %s on %s", decision.Symbol, decision.Date)))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Action: "))
	b.WriteString(actionStyle(decision.Action).Render(decision.Action))
	if decision.Ambiguous {
		b.WriteString(dimStyle.Render("  (defaulted: no explicit signal in decision text)"))
	}
	b.WriteString("\n")
	return boxStyle.Render(b.String())
}

// RenderReports summarizes which stage reports a finished run produced.
func RenderReports(state *models.TradingState) string {
	rows := []struct {
		name string
		body string
	}{
		{"Market report", state.MarketReport},
		{"Sentiment report", state.SentimentReport},
		{"News report", state.NewsReport},
		{"Fundamentals report", state.FundamentalsReport},
		{"Investment plan", state.InvestmentPlan},
		{"Trader plan", state.TraderInvestmentPlan},
		{"Final decision", state.FinalTradeDecision},
	}

	var b strings.Builder
	for _, row := range rows {
		status := dimStyle.Render("(empty)")
		if strings.TrimSpace(row.body) != "" {
			status = fmt.Sprintf("%d chars", len(row.body))
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(row.name+":"), status)
	}
	return b.String()
}

// RenderMetrics formats a backtest summary.
func RenderMetrics(symbol string, m backtest.Metrics) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Backtest results for %s", symbol)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %.2f\n", labelStyle.Render("Final cash:"), m.FinalCash)
	fmt.Fprintf(&b, "%s %.2f%%\n", labelStyle.Render("Cumulative return:"), m.CumulativeReturnPct)
	fmt.Fprintf(&b, "%s %.2f%%\n", labelStyle.Render("Annualized return:"), m.AnnualizedReturnPct)
	fmt.Fprintf(&b, "%s %.4f\n", labelStyle.Render("Sharpe ratio:"), m.SharpeRatio)
	fmt.Fprintf(&b, "%s %.2f%%\n", labelStyle.Render("Max drawdown:"), m.MaxDrawdownPct)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Trading days:"), m.Days)
	return boxStyle.Render(b.String())
}

// RenderTrades formats the settled day records as a compact table.
func RenderTrades(records []backtest.DayRecord) string {
	if len(records) == 0 {
		return dimStyle.Render("No settled trading days.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-6s %10s %10s %8s %12s %14s\n",
		"Date", "Action", "Open", "Close", "Qty", "PnL", "Cash")
	for _, r := range records {
		action := actionStyle(r.Action).Render(fmt.Sprintf("%-6s", r.Action))
		fmt.Fprintf(&b, "%-12s %s %10.2f %10.2f %8d %12.2f %14.2f\n",
			r.Date, action, r.Open, r.Close, r.Quantity, r.PnL, r.Cash)
	}
	return b.String()
}
