package model

import "time"

// Candle represents a single price bar from the backend history.
type Candle struct {
	Time      time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Dividends float64
	Splits    float64
}

// StockInfo is the subset of the backend's info object that the views
// use. The backend passes through whatever its data provider returns,
// so absent fields decode to zero values.
type StockInfo struct {
	Symbol        string  `json:"symbol"`
	ShortName     string  `json:"shortName"`
	LongName      string  `json:"longName"`
	Currency      string  `json:"currency"`
	Price         float64 `json:"regularMarketPrice"`
	PreviousClose float64 `json:"regularMarketPreviousClose"`
	MarketCap     float64 `json:"marketCap"`
	High52w       float64 `json:"fiftyTwoWeekHigh"`
	Low52w        float64 `json:"fiftyTwoWeekLow"`
	Volume        float64 `json:"regularMarketVolume"`
}

// Name returns the best display name available.
func (i *StockInfo) Name() string {
	if i.LongName != "" {
		return i.LongName
	}
	if i.ShortName != "" {
		return i.ShortName
	}
	return i.Symbol
}

// StockHistory is one fetch result: the info card plus the price series.
// It is replaced wholesale by the next successful fetch, never merged.
type StockHistory struct {
	Info    *StockInfo
	History []Candle
}

// Quote is the compact per-symbol view served by /api/stock/{symbol}.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Currency      string  `json:"currency"`
	MarketCap     float64 `json:"marketCap"`
	Volume        float64 `json:"volume"`
}

// Listing is one entry of the /api/stock/list directory.
type Listing struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
