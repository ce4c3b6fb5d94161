package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"time"

	"stockwatch/internal/model"
)

// historyRecord is one row of the backend's history array. Column names
// and the ISO-8601 UTC date format come from its dataframe
// serialization; any numeric field may be null.
type historyRecord struct {
	Date      string   `json:"Date"`
	Open      *float64 `json:"Open"`
	High      *float64 `json:"High"`
	Low       *float64 `json:"Low"`
	Close     *float64 `json:"Close"`
	Volume    *float64 `json:"Volume"`
	Dividends *float64 `json:"Dividends"`
	Splits    *float64 `json:"Stock Splits"`
}

type historyEnvelope struct {
	Info    *model.StockInfo `json:"info"`
	History []historyRecord  `json:"history"`
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// StockData fetches the history for one symbol over the given lookback
// and granularity via GET /api/stockdata/{SYMBOL}. The symbol is
// normalized first; an empty symbol fails before any network I/O.
func (c *Client) StockData(ctx context.Context, symbol string, period model.Period, interval model.Interval) (*model.StockHistory, error) {
	sym := NormalizeSymbol(symbol)
	if sym == "" {
		return nil, &ValidationError{Msg: "ticker symbol is required"}
	}

	q := url.Values{}
	q.Set("period", string(period))
	q.Set("interval", string(interval))
	u := fmt.Sprintf("%s/api/stockdata/%s?%s", c.baseURL, url.PathEscape(sym), q.Encode())

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var env historyEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &FormatError{Reason: "unexpected stockdata shape", Err: err}
	}
	if env.History == nil {
		return nil, &FormatError{Reason: "history field missing or not an array"}
	}

	hist := &model.StockHistory{
		Info:    env.Info,
		History: make([]model.Candle, 0, len(env.History)),
	}
	for _, rec := range env.History {
		t, err := time.Parse(time.RFC3339, rec.Date)
		if err != nil {
			continue // skip rows without a usable date
		}
		o, h, l, cl := deref(rec.Open), deref(rec.High), deref(rec.Low), deref(rec.Close)
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue // skip null bars (holidays etc.)
		}
		hist.History = append(hist.History, model.Candle{
			Time:      t,
			Open:      o,
			High:      h,
			Low:       l,
			Close:     cl,
			Volume:    deref(rec.Volume),
			Dividends: deref(rec.Dividends),
			Splits:    deref(rec.Splits),
		})
	}

	sort.Slice(hist.History, func(i, j int) bool {
		return hist.History[i].Time.Before(hist.History[j].Time)
	})
	return hist, nil
}
