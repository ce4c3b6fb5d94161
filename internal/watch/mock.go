package watch

import (
	"context"
	"time"

	"stockwatch/internal/model"
)

// MockFetcher returns controllable fixed data for development and
// testing, so the watcher can run without a backend.
type MockFetcher struct {
	Price float64
	Data  *model.StockHistory
	Err   error
}

func (m *MockFetcher) StockData(_ context.Context, symbol string, _ model.Period, interval model.Interval) (*model.StockHistory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Data != nil {
		return m.Data, nil
	}

	price := m.Price
	if price == 0 {
		price = 100
	}
	return &model.StockHistory{
		Info: &model.StockInfo{
			Symbol:        symbol,
			ShortName:     symbol + " (mock)",
			Currency:      "USD",
			Price:         price,
			PreviousClose: price * 0.99,
		},
		History: generateMockBars(price, 120, interval),
	}, nil
}

func generateMockBars(basePrice float64, count int, interval model.Interval) []model.Candle {
	step := stepFor(interval)
	bars := make([]model.Candle, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Candle{
			Time:   time.Now().Add(-time.Duration(count-i) * step),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

func stepFor(interval model.Interval) time.Duration {
	switch interval {
	case model.Interval1m:
		return time.Minute
	case model.Interval5m:
		return 5 * time.Minute
	case model.Interval15m:
		return 15 * time.Minute
	case model.Interval30m:
		return 30 * time.Minute
	case model.Interval60m:
		return time.Hour
	case model.Interval1wk:
		return 7 * 24 * time.Hour
	case model.Interval1mo:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}
