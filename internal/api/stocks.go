package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"stockwatch/internal/model"
)

// Quote fetches the compact quote for one symbol via GET /api/stock/{symbol}.
func (c *Client) Quote(ctx context.Context, symbol string) (*model.Quote, error) {
	sym := NormalizeSymbol(symbol)
	if sym == "" {
		return nil, &ValidationError{Msg: "ticker symbol is required"}
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/api/stock/%s", c.baseURL, url.PathEscape(sym)))
	if err != nil {
		return nil, err
	}

	var q model.Quote
	if err := json.Unmarshal(body, &q); err != nil {
		return nil, &FormatError{Reason: "unexpected quote shape", Err: err}
	}
	return &q, nil
}

// List fetches the symbol directory via GET /api/stock/list.
func (c *Client) List(ctx context.Context) ([]model.Listing, error) {
	body, err := c.get(ctx, c.baseURL+"/api/stock/list")
	if err != nil {
		return nil, err
	}

	var listings []model.Listing
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, &FormatError{Reason: "unexpected list shape", Err: err}
	}
	return listings, nil
}

// Health probes GET /health and reports whether the backend answers ok.
func (c *Client) Health(ctx context.Context) error {
	body, err := c.get(ctx, c.baseURL+"/health")
	if err != nil {
		return err
	}

	var status struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return &FormatError{Reason: "unexpected health shape", Err: err}
	}
	if status.Status != "ok" {
		return fmt.Errorf("backend unhealthy: status %q", status.Status)
	}
	return nil
}
