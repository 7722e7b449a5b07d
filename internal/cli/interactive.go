package cli

import (
	"fmt"

	"github.com/dyike/findash/internal/config"
	"github.com/dyike/findash/internal/marketdata"
	"github.com/dyike/findash/internal/pipeline"
)

// runInteractiveMode drives the prompt-analyze-render loop until the
// user declines to continue.
func runInteractiveMode(cfg *config.Config) error {
	ClearScreen()
	DisplayWelcomeBanner()

	runner := pipeline.NewRunner(marketdata.NewFetcher(marketdata.NewYahooProvider()), nil)

	for {
		req, err := promptForRequest()
		if err != nil {
			return err
		}

		fmt.Printf("\n🔍 Fetching data for %s...\n\n", req.Symbol)

		analysis, err := runner.Run(req)
		if err != nil {
			renderAnalysisError(err)
		} else {
			RenderDashboard(analysis)
		}

		again, err := PromptToContinue()
		if err != nil {
			return err
		}
		if !again {
			fmt.Println("👋 Goodbye!")
			return nil
		}
		ClearScreen()
	}
}

func promptForRequest() (marketdata.Request, error) {
	ticker, err := PromptForTicker()
	if err != nil {
		return marketdata.Request{}, err
	}

	start, end, err := PromptForDateRange()
	if err != nil {
		return marketdata.Request{}, err
	}

	short, long, err := PromptForWindows(pipeline.DefaultSMAShort, pipeline.DefaultSMALong)
	if err != nil {
		return marketdata.Request{}, err
	}

	return marketdata.Request{
		Symbol:    ticker,
		StartDate: start,
		EndDate:   end,
		SMAShort:  short,
		SMALong:   long,
	}, nil
}

// renderAnalysisError keeps the loop alive on fetch failures. Fetch
// errors carry their own guidance, including the symbol suggestions on
// an unresolvable ticker.
func renderAnalysisError(err error) {
	fmt.Println(lossStyle.Render(fmt.Sprintf("✗ %s", err.Error())))
}
