package cli

import (
	"fmt"
	"regexp"
	"time"

	"github.com/AlecAivazis/survey/v2"
)

var tickerPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9.\-]{0,9}$`)

// runInteractive walks through the analysis setup with prompts and then
// runs the pipeline once.
func runInteractive(a *app) error {
	var ticker string
	err := survey.AskOne(&survey.Input{
		Message: "Ticker symbol to analyze:",
		Default: "SPY",
	}, &ticker, survey.WithValidator(func(val interface{}) error {
		s, ok := val.(string)
		if !ok || !tickerPattern.MatchString(s) {
			return fmt.Errorf("enter a valid ticker symbol")
		}
		return nil
	}))
	if err != nil {
		return err
	}

	var date string
	err = survey.AskOne(&survey.Input{
		Message: "Trade date (YYYY-MM-DD):",
		Default: time.Now().Format("2006-01-02"),
	}, &date, survey.WithValidator(func(val interface{}) error {
		s, _ := val.(string)
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return fmt.Errorf("enter a date as YYYY-MM-DD")
		}
		return nil
	}))
	if err != nil {
		return err
	}

	var analysts []string
	err = survey.AskOne(&survey.MultiSelect{
		Message: "Analysts to include:",
		Options: []string{"market", "social", "news", "fundamentals"},
		Default: []string{"market", "social", "news", "fundamentals"},
	}, &analysts, survey.WithValidator(survey.MinItems(1)))
	if err != nil {
		return err
	}

	var riskLevel string
	err = survey.AskOne(&survey.Select{
		Message: "Risk appetite:",
		Options: []string{"low", "medium", "high", "no_guidance"},
		Default: a.cfg.RiskLevel,
	}, &riskLevel)
	if err != nil {
		return err
	}

	var confirmed bool
	err = survey.AskOne(&survey.Confirm{
		Message: fmt.Sprintf("Run analysis for %s on %s?", ticker, date),
		Default: true,
	}, &confirmed)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	a.cfg.SelectedAnalysts = analysts
	a.cfg.RiskLevel = riskLevel
	return runAnalysis(a, ticker, date)
}
