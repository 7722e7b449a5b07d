package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
)

// PromptForTicker prompts the user to enter a stock ticker symbol
func PromptForTicker() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Enter the stock ticker symbol (e.g., AAPL, MSFT, GOOGL):",
		Help:    "Please enter a valid stock ticker symbol for analysis",
		Default: "AAPL",
	}

	err := survey.AskOne(prompt, &ticker, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(strings.ToUpper(val.(string)))
		if len(str) == 0 {
			return fmt.Errorf("ticker symbol cannot be empty")
		}
		if len(str) > 10 {
			return fmt.Errorf("ticker symbol too long (max 10 characters)")
		}
		matched, _ := regexp.MatchString(`^[A-Z0-9.-]+$`, str)
		if !matched {
			return fmt.Errorf("invalid ticker format (use letters, numbers, dots, and hyphens only)")
		}
		return nil
	}))

	if err != nil {
		return "", err
	}

	return strings.TrimSpace(strings.ToUpper(ticker)), nil
}

// PromptForDateRange prompts the user for a start and end date
func PromptForDateRange() (string, string, error) {
	today := time.Now()

	start, err := promptForDate("Enter the start date (YYYY-MM-DD):", today.AddDate(-1, 0, 0))
	if err != nil {
		return "", "", err
	}

	end, err := promptForDate("Enter the end date (YYYY-MM-DD):", today)
	if err != nil {
		return "", "", err
	}

	return start, end, nil
}

func promptForDate(message string, def time.Time) (string, error) {
	var dateStr string
	prompt := &survey.Input{
		Message: message,
		Help:    "Format: YYYY-MM-DD (e.g., 2024-01-15)",
		Default: def.Format("2006-01-02"),
	}

	err := survey.AskOne(prompt, &dateStr, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		_, err := time.Parse("2006-01-02", str)
		if err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD")
		}
		return nil
	}))

	if err != nil {
		return "", err
	}

	return strings.TrimSpace(dateStr), nil
}

// PromptForWindows prompts the user for the SMA window lengths
func PromptForWindows(defaultShort, defaultLong int) (int, int, error) {
	short, err := promptForWindow("Short SMA window (trading days):", defaultShort)
	if err != nil {
		return 0, 0, err
	}

	long, err := promptForWindow("Long SMA window (trading days):", defaultLong)
	if err != nil {
		return 0, 0, err
	}

	if short >= long {
		return 0, 0, fmt.Errorf("short window (%d) must be less than long window (%d)", short, long)
	}

	return short, long, nil
}

func promptForWindow(message string, def int) (int, error) {
	var windowStr string
	prompt := &survey.Input{
		Message: message,
		Default: strconv.Itoa(def),
	}

	err := survey.AskOne(prompt, &windowStr, survey.WithValidator(func(val interface{}) error {
		n, err := strconv.Atoi(strings.TrimSpace(val.(string)))
		if err != nil {
			return fmt.Errorf("window must be a whole number")
		}
		if n < 2 {
			return fmt.Errorf("window must be at least 2 trading days")
		}
		return nil
	}))

	if err != nil {
		return 0, err
	}

	return strconv.Atoi(strings.TrimSpace(windowStr))
}

// PromptToContinue asks whether the user wants to analyze another symbol
func PromptToContinue() (bool, error) {
	var again bool
	prompt := &survey.Confirm{
		Message: "Analyze another symbol?",
		Default: true,
	}
	if err := survey.AskOne(prompt, &again); err != nil {
		return false, err
	}
	return again, nil
}
