package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dyike/findash/internal/pipeline"
	"github.com/dyike/findash/internal/strategy"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Padding(0, 1).
		MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6")).
		MarginTop(1)

	boxStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(0, 2).
		Width(64)

	gainStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	lossStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	neutralStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	warnStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B")).
		Bold(true)
)

// DisplayWelcomeBanner shows the welcome banner
func DisplayWelcomeBanner() {
	banner := `
███████╗██╗███╗   ██╗██████╗  █████╗ ███████╗██╗  ██╗
██╔════╝██║████╗  ██║██╔══██╗██╔══██╗██╔════╝██║  ██║
█████╗  ██║██╔██╗ ██║██║  ██║███████║███████╗███████║
██╔══╝  ██║██║╚██╗██║██║  ██║██╔══██║╚════██║██╔══██║
██║     ██║██║ ╚████║██████╔╝██║  ██║███████║██║  ██║
╚═╝     ╚═╝╚═╝  ╚═══╝╚═════╝ ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝

          📊 Stock Analysis Dashboard 📊
`
	welcomeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)

	fmt.Print(welcomeStyle.Render(banner))
	fmt.Println()
}

// ClearScreen clears the terminal screen
func ClearScreen() {
	fmt.Print("\033[2J\033[H")
}

// RenderDashboard prints the full analysis for one symbol.
func RenderDashboard(analysis *pipeline.Analysis) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("📈 %s · %d trading days", analysis.Series.Symbol, analysis.Series.Len())))

	for _, name := range analysis.Degraded {
		fmt.Println(warnStyle.Render(fmt.Sprintf("⚠  %s computed via fallback", name)))
	}

	renderPerformance(analysis)
	renderSignalState(analysis)
	renderIndicators(analysis)
	renderTrades(analysis)
}

func renderPerformance(analysis *pipeline.Analysis) {
	perf := analysis.PerformanceMetrics()

	var b strings.Builder
	fmt.Fprintf(&b, "Strategy Return:   %s\n", percentCell(perf.StrategyReturn))
	fmt.Fprintf(&b, "Buy & Hold Return: %s\n", percentCell(perf.BuyHoldReturn))
	fmt.Fprintf(&b, "Alpha:             %s\n", percentCell(perf.Alpha))
	fmt.Fprintf(&b, "Total Trades:      %d\n", perf.TotalTrades)
	fmt.Fprintf(&b, "Win Rate:          %.2f%%\n", perf.WinRate)
	fmt.Fprintf(&b, "Max Drawdown:      %s\n", percentCell(perf.MaxDrawdown))
	fmt.Fprintf(&b, "Sharpe Ratio:      %.2f\n", perf.SharpeRatio)
	fmt.Fprintf(&b, "Volatility:        %.2f%%", perf.Volatility)

	fmt.Println(sectionStyle.Render("Performance"))
	fmt.Println(boxStyle.Render(b.String()))
}

func renderSignalState(analysis *pipeline.Analysis) {
	n := len(analysis.Signals.Positions)
	if n == 0 {
		return
	}

	var state string
	switch analysis.Signals.Positions[n-1] {
	case strategy.Long:
		state = gainStyle.Render("LONG")
	case strategy.Short:
		state = lossStyle.Render("SHORT")
	default:
		state = neutralStyle.Render("FLAT")
	}

	lastBar := analysis.Series.Bars[n-1]
	fmt.Println(sectionStyle.Render("Current Position"))
	fmt.Printf("  %s at close %.2f (%s)\n", state, lastBar.Close, pipeline.FormatDate(lastBar.Date))
}

func renderIndicators(analysis *pipeline.Analysis) {
	fmt.Println(sectionStyle.Render("Latest Indicator Readings"))

	if rsi := analysis.RSISeries(); len(rsi) > 0 {
		last := rsi[len(rsi)-1]
		fmt.Printf("  RSI(14):    %.2f  %s\n", last.Value, rsiLabel(last.Value))
	}
	if macd := analysis.MACDSeries(); len(macd) > 0 {
		last := macd[len(macd)-1]
		fmt.Printf("  MACD:       %.4f  signal %.4f  histogram %.4f\n", last.MACD, last.Signal, last.Histogram)
	}
	if bands := analysis.BollingerSeries(); len(bands) > 0 {
		last := bands[len(bands)-1]
		fmt.Printf("  Bollinger:  %.2f / %.2f / %.2f  (price %.2f)\n", last.Upper, last.Middle, last.Lower, last.Price)
	}
}

func renderTrades(analysis *pipeline.Analysis) {
	trades := analysis.TradeLog()
	fmt.Println(sectionStyle.Render(fmt.Sprintf("Trade Log (%d trades)", len(trades))))
	if len(trades) == 0 {
		fmt.Println(neutralStyle.Render("  no position flips in this range"))
		return
	}

	fmt.Printf("  %-4s %-12s %-6s %10s %7s %12s %12s\n",
		"#", "Date", "Action", "Price", "Shares", "Value", "P&L")
	for _, t := range trades {
		pnl := "-"
		if t.PnL != nil {
			pnl = fmt.Sprintf("%.2f", *t.PnL)
			if *t.PnL >= 0 {
				pnl = gainStyle.Render(pnl)
			} else {
				pnl = lossStyle.Render(pnl)
			}
		}
		fmt.Printf("  %-4d %-12s %-6s %10.2f %7d %12.2f %12s\n",
			t.ID, t.Date, t.Action, t.Price, t.Shares, t.Value, pnl)
	}
}

func percentCell(v float64) string {
	s := fmt.Sprintf("%.2f%%", v)
	if v > 0 {
		return gainStyle.Render(s)
	}
	if v < 0 {
		return lossStyle.Render(s)
	}
	return neutralStyle.Render(s)
}

func rsiLabel(v float64) string {
	switch {
	case v >= 70:
		return lossStyle.Render("overbought")
	case v <= 30:
		return gainStyle.Render("oversold")
	default:
		return neutralStyle.Render("neutral")
	}
}
