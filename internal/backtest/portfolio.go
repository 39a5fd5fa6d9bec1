// Package backtest replays the decision pipeline over historical trading
// days and accounts for the resulting cash trajectory.
package backtest

import (
	"math"
	"time"

	"github.com/quantmuse/tradecouncil/consts"
)

const (
	annualBorrowRate = 0.05
	tradeCommission  = 0.0025
)

// DayRecord is one settled trading day.
type DayRecord struct {
	Date     string  `json:"date"`
	Action   string  `json:"action"`
	Open     float64 `json:"open"`
	Close    float64 `json:"close"`
	Quantity int64   `json:"quantity"`
	PnL      float64 `json:"pnl"`
	Return   float64 `json:"return"`
	Cash     float64 `json:"cash"`
}

// Metrics summarizes a finished value series.
type Metrics struct {
	CumulativeReturnPct float64 `json:"cumulative_return_pct"`
	AnnualizedReturnPct float64 `json:"annualized_return_pct"`
	SharpeRatio         float64 `json:"sharpe_ratio"`
	MaxDrawdownPct      float64 `json:"max_drawdown_pct"`
	FinalCash           float64 `json:"final_cash"`
	Days                int     `json:"days"`
}

// Portfolio folds an ordered decision stream into a cash trajectory. All
// positions are opened at the day's open and closed at the day's close;
// nothing is held overnight.
type Portfolio struct {
	cash float64
	days []DayRecord
}

func NewPortfolio(initialCash float64) *Portfolio {
	return &Portfolio{cash: initialCash}
}

// ApplyDay settles one day. Sizing uses whole shares of the day's open for
// both directions; a short day pays a borrowing premium plus commission
// per share. A non-positive open cannot size a position and settles flat.
func (p *Portfolio) ApplyDay(date, action string, open, closePrice float64) DayRecord {
	cashBefore := p.cash
	var quantity int64
	if open > 0 {
		quantity = int64(math.Floor(cashBefore / open))
	}

	var pnl float64
	switch action {
	case consts.DecisionBuy:
		pnl = (closePrice - open) * float64(quantity)
	case consts.DecisionSell:
		commissionPerShare := tradeCommission * (open + closePrice)
		premiumPerShare := open*(annualBorrowRate/365) + commissionPerShare
		pnl = (open-closePrice)*float64(quantity) - premiumPerShare*float64(quantity)
	default:
		quantity = 0
	}

	p.cash = cashBefore + pnl
	rec := DayRecord{
		Date:     date,
		Action:   action,
		Open:     open,
		Close:    closePrice,
		Quantity: quantity,
		PnL:      pnl,
		Return:   pnl / math.Max(cashBefore, 1),
		Cash:     p.cash,
	}
	p.days = append(p.days, rec)
	return rec
}

func (p *Portfolio) Cash() float64 { return p.cash }

// Days returns the settled records in application order.
func (p *Portfolio) Days() []DayRecord { return p.days }

// Metrics computes the summary statistics over the settled value series.
// The series starts at the first settled day's closing cash; cash before
// the first settlement never enters.
func (p *Portfolio) Metrics() Metrics {
	m := Metrics{FinalCash: p.cash, Days: len(p.days)}
	if len(p.days) == 0 || p.days[0].Cash <= 0 {
		return m
	}

	growth := p.days[len(p.days)-1].Cash / p.days[0].Cash
	m.CumulativeReturnPct = (growth - 1) * 100

	daysElapsed := calendarDays(p.days[0].Date, p.days[len(p.days)-1].Date)
	if growth > 0 {
		m.AnnualizedReturnPct = (math.Pow(growth, 365/float64(daysElapsed)) - 1) * 100
	}

	m.SharpeRatio = sharpe(p.days)
	m.MaxDrawdownPct = maxDrawdown(p.days)
	return m
}

// calendarDays counts the days between two dates inclusive of the last,
// never less than one.
func calendarDays(first, last string) int {
	start, err1 := time.Parse("2006-01-02", first)
	end, err2 := time.Parse("2006-01-02", last)
	if err1 != nil || err2 != nil {
		return 1
	}
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

func sharpe(days []DayRecord) float64 {
	n := float64(len(days))
	var sum float64
	for _, d := range days {
		sum += d.Return
	}
	mean := sum / n

	var variance float64
	for _, d := range days {
		diff := d.Return - mean
		variance += diff * diff
	}
	std := math.Sqrt(variance / n)
	if std == 0 {
		return 0
	}
	return mean / std * math.Sqrt(252)
}

// maxDrawdown returns the worst peak-to-trough decline of the value
// series as a non-positive percentage. The running peak starts at the
// first settled day's value, so a series that only ever declines from
// its opening value still measures from that value, not from the cash
// that preceded it.
func maxDrawdown(days []DayRecord) float64 {
	peak := days[0].Cash
	worst := 0.0
	for _, d := range days {
		if d.Cash > peak {
			peak = d.Cash
		}
		dd := (d.Cash - peak) / peak * 100
		if dd < worst {
			worst = dd
		}
	}
	return worst
}
