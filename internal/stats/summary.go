package stats

import "stockwatch/internal/model"

// Summary bundles the derived figures shown alongside a price series.
// Fields that could not be computed from the available data are zero.
type Summary struct {
	LastClose float64
	Change    float64
	ChangePct float64
	SMA20     float64
	RSI14     float64
	High      float64
	Low       float64
}

// Summarize derives a Summary from a candle series. Indicators that
// need more bars than provided are left at zero rather than failing
// the whole summary.
func Summarize(candles []model.Candle) Summary {
	var s Summary
	if len(candles) == 0 {
		return s
	}

	closes := Closes(candles)
	s.LastClose = closes[len(closes)-1]
	if len(closes) > 1 {
		prev := closes[len(closes)-2]
		s.Change = s.LastClose - prev
		if prev != 0 {
			s.ChangePct = s.Change / prev * 100
		}
	}

	if sma, err := SMA(closes, 20); err == nil {
		s.SMA20 = sma
	}
	if rsi, err := RSI(closes, 14); err == nil {
		s.RSI14 = rsi
	}
	if high, low, err := Range(candles, 0); err == nil {
		s.High = high
		s.Low = low
	}
	return s
}
