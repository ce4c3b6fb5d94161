package model

import (
	"fmt"
	"strings"
)

// Interval is the sampling granularity of requested history.
type Interval string

// Period is the total lookback window of requested history.
type Period string

const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval60m Interval = "60m"
	Interval1d  Interval = "1d"
	Interval1wk Interval = "1wk"
	Interval1mo Interval = "1mo"
)

const (
	Period5d Period = "5d"
	Period1y Period = "1y"
)

// ParseInterval validates a user-supplied interval token.
func ParseInterval(s string) (Interval, error) {
	iv := Interval(strings.ToLower(strings.TrimSpace(s)))
	switch iv {
	case Interval1m, Interval5m, Interval15m, Interval30m,
		Interval60m, Interval1d, Interval1wk, Interval1mo:
		return iv, nil
	}
	return "", fmt.Errorf("unknown interval %q", s)
}

// PeriodFor returns the lookback window requested for an interval:
// short intraday intervals get five days, everything else a year.
func PeriodFor(iv Interval) Period {
	switch iv {
	case Interval1m, Interval5m, Interval15m:
		return Period5d
	default:
		return Period1y
	}
}
