package view

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"stockwatch/internal/model"
	"stockwatch/internal/stats"
	"stockwatch/internal/watch"
)

const (
	chartHeight = 10
	chartPoints = 72
	recentBars  = 5
)

// Render draws one snapshot as a terminal block: an info card, a
// close-price chart and the most recent bars.
func Render(snap watch.Snapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("=== %s | %s ===\n", snap.Selection, snap.UpdatedAt.Format("2006-01-02 15:04:05")))

	switch snap.Phase {
	case watch.PhaseIdle:
		b.WriteString("waiting for first fetch\n")
		return b.String()
	case watch.PhaseLoading:
		b.WriteString("loading...\n")
		return b.String()
	case watch.PhaseFailed:
		b.WriteString(fmt.Sprintf("fetch failed: %s\n", snap.Err))
		return b.String()
	}

	data := snap.Data
	if data == nil || len(data.History) == 0 {
		b.WriteString("no history returned\n")
		return b.String()
	}

	if data.Info != nil {
		writeInfoCard(&b, data.Info)
	}
	writeStatsLine(&b, data.History)
	b.WriteString(renderChart(data.History, snap.Selection))
	writeRecentBars(&b, data.History)

	return b.String()
}

func writeInfoCard(b *strings.Builder, info *model.StockInfo) {
	b.WriteString(fmt.Sprintf("%s (%s)\n", info.Name(), info.Symbol))
	if info.Price > 0 {
		b.WriteString(fmt.Sprintf("price: %.2f %s", info.Price, info.Currency))
		if info.PreviousClose > 0 {
			change := info.Price - info.PreviousClose
			b.WriteString(fmt.Sprintf("  %+.2f (%+.2f%%)", change, change/info.PreviousClose*100))
		}
		b.WriteString("\n")
	}
	if info.MarketCap > 0 {
		b.WriteString(fmt.Sprintf("market cap: %s\n", humanize.Comma(int64(info.MarketCap))))
	}
	if info.High52w > 0 {
		b.WriteString(fmt.Sprintf("52w range: %.2f - %.2f\n", info.Low52w, info.High52w))
	}
	b.WriteString("\n")
}

func writeStatsLine(b *strings.Builder, candles []model.Candle) {
	s := stats.Summarize(candles)

	b.WriteString(fmt.Sprintf("last close: %.2f", s.LastClose))
	if s.Change != 0 {
		b.WriteString(fmt.Sprintf("  %+.2f (%+.2f%%)", s.Change, s.ChangePct))
	}
	b.WriteString("\n")

	var parts []string
	if s.SMA20 > 0 {
		parts = append(parts, fmt.Sprintf("sma20 %.2f", s.SMA20))
	}
	if s.RSI14 > 0 {
		parts = append(parts, fmt.Sprintf("rsi14 %.1f", s.RSI14))
	}
	parts = append(parts, fmt.Sprintf("range %.2f - %.2f", s.Low, s.High))
	b.WriteString(strings.Join(parts, " | ") + "\n\n")
}

// renderChart plots the close series. Long histories are cut to the
// most recent chartPoints so the plot stays readable in a terminal.
func renderChart(candles []model.Candle, sel watch.Selection) string {
	closes := stats.Closes(candles)
	if len(closes) > chartPoints {
		closes = closes[len(closes)-chartPoints:]
	}
	caption := fmt.Sprintf("%s close, last %d of %d bars", sel.Symbol, len(closes), len(candles))
	return asciigraph.Plot(closes,
		asciigraph.Height(chartHeight),
		asciigraph.Caption(caption),
	) + "\n\n"
}

func writeRecentBars(b *strings.Builder, candles []model.Candle) {
	n := recentBars
	if len(candles) < n {
		n = len(candles)
	}

	b.WriteString("time              open      high      low       close     volume\n")
	for _, c := range candles[len(candles)-n:] {
		b.WriteString(fmt.Sprintf("%-16s  %-8.2f  %-8.2f  %-8.2f  %-8.2f  %s\n",
			c.Time.Format("2006-01-02 15:04"), c.Open, c.High, c.Low, c.Close,
			humanize.Comma(int64(c.Volume))))
	}
}

// RenderQuote draws the compact quote card.
func RenderQuote(q *model.Quote) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s (%s)\n", q.Name, q.Symbol))
	b.WriteString(fmt.Sprintf("price: %.2f %s  %+.2f (%+.2f%%)\n", q.Price, q.Currency, q.Change, q.ChangePercent))
	if q.MarketCap > 0 {
		b.WriteString(fmt.Sprintf("market cap: %s\n", humanize.Comma(int64(q.MarketCap))))
	}
	if q.Volume > 0 {
		b.WriteString(fmt.Sprintf("volume: %s\n", humanize.Comma(int64(q.Volume))))
	}
	return b.String()
}

// RenderListings draws the symbol directory.
func RenderListings(listings []model.Listing) string {
	if len(listings) == 0 {
		return "no symbols available\n"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d symbols available:\n", len(listings)))
	for _, l := range listings {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", l.Symbol, l.Name))
	}
	return b.String()
}
