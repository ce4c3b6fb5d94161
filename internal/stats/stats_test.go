package stats

import (
	"math"
	"testing"
	"time"

	"stockwatch/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func candlesFromCloses(closes []float64) []model.Candle {
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	out := make([]model.Candle, len(closes))
	for i, c := range closes {
		out[i] = model.Candle{
			Time:  base.AddDate(0, 0, i),
			Open:  c,
			High:  c * 1.01,
			Low:   c * 0.99,
			Close: c,
		}
	}
	return out
}

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	got, err := SMA(values, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 3) {
		t.Errorf("SMA(5): expected 3, got %.4f", got)
	}

	got, err = SMA(values, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 4.5) {
		t.Errorf("SMA(2): expected 4.5, got %.4f", got)
	}

	if _, err := SMA(values, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
	if _, err := SMA(values, 6); err == nil {
		t.Error("expected error for insufficient data")
	}
}

func TestRSI_InsufficientDataDefaults(t *testing.T) {
	v, err := RSI([]float64{1, 2, 3}, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 50.0 {
		t.Errorf("expected default 50 for insufficient data, got %.2f", v)
	}
}

func TestRSI_AllGains(t *testing.T) {
	vals := make([]float64, 20)
	for i := range vals {
		vals[i] = float64(i + 1)
	}
	v, err := RSI(vals, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 100.0 {
		t.Errorf("expected 100 for all gains, got %.2f", v)
	}
}

func TestRSI_Direction(t *testing.T) {
	up := make([]float64, 30)
	down := make([]float64, 30)
	price := 100.0
	for i := range up {
		// Biased walk: gains outweigh losses.
		if i%2 == 0 {
			price += 2
		} else {
			price -= 1
		}
		up[i] = price
		down[i] = 200 - price
	}

	uv, err := RSI(up, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dv, err := RSI(down, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if uv <= 50 || uv > 100 {
		t.Errorf("expected uptrend RSI in (50,100], got %.2f", uv)
	}
	if dv >= 50 || dv < 0 {
		t.Errorf("expected downtrend RSI in [0,50), got %.2f", dv)
	}

	if _, err := RSI(up, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestRange(t *testing.T) {
	candles := candlesFromCloses([]float64{9, 12, 11, 10, 10.5})

	high, low, err := Range(candles, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(high, 12*1.01) || !almostEqual(low, 9*0.99) {
		t.Errorf("whole series: expected %.4f/%.4f, got %.4f/%.4f", 12*1.01, 9*0.99, high, low)
	}

	high, low, err = Range(candles, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(high, 10.5*1.01) || !almostEqual(low, 10*0.99) {
		t.Errorf("last 2: expected %.4f/%.4f, got %.4f/%.4f", 10.5*1.01, 10*0.99, high, low)
	}

	if _, _, err := Range(nil, 5); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestCloses(t *testing.T) {
	candles := candlesFromCloses([]float64{1, 2, 3})
	closes := Closes(candles)
	if len(closes) != 3 || closes[0] != 1 || closes[2] != 3 {
		t.Errorf("unexpected closes: %v", closes)
	}
}

func TestSummarize(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	s := Summarize(candlesFromCloses(closes))

	if !almostEqual(s.LastClose, 129) {
		t.Errorf("LastClose: expected 129, got %.2f", s.LastClose)
	}
	if !almostEqual(s.Change, 1) {
		t.Errorf("Change: expected 1, got %.2f", s.Change)
	}
	if !almostEqual(s.ChangePct, 1.0/128*100) {
		t.Errorf("ChangePct: expected %.4f, got %.4f", 1.0/128*100, s.ChangePct)
	}
	if !almostEqual(s.SMA20, 119.5) {
		t.Errorf("SMA20: expected 119.5, got %.2f", s.SMA20)
	}
	if s.RSI14 != 100 {
		t.Errorf("RSI14: expected 100 for monotonic gains, got %.2f", s.RSI14)
	}
	if !almostEqual(s.High, 129*1.01) || !almostEqual(s.Low, 100*0.99) {
		t.Errorf("range: got %.4f/%.4f", s.High, s.Low)
	}
}

func TestSummarize_ShortSeries(t *testing.T) {
	s := Summarize(candlesFromCloses([]float64{10, 11, 12}))
	if s.SMA20 != 0 {
		t.Errorf("expected SMA20 omitted for short series, got %.2f", s.SMA20)
	}
	if s.RSI14 != 50 {
		t.Errorf("expected default RSI for short series, got %.2f", s.RSI14)
	}
	if !almostEqual(s.LastClose, 12) {
		t.Errorf("LastClose: expected 12, got %.2f", s.LastClose)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.LastClose != 0 || s.SMA20 != 0 || s.RSI14 != 0 {
		t.Errorf("expected zero summary for empty series, got %+v", s)
	}
}
