package common

import (
	"time"
)

// TrendingAsset is one entry of the trending list, immutable for the
// duration of one fetch cycle.
type TrendingAsset struct {
	ID            string  `json:"id"`
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	IconUrl       string  `json:"icon_url"`
	MarketCapRank int     `json:"market_cap_rank,omitempty"`
	TrendingScore int     `json:"trending_score"`
	PriceBtc      float64 `json:"price_btc"`
}

// PricePoint is one sample of an intraday price series.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// PriceSeries is ordered non-decreasing by timestamp. It may be empty.
type PriceSeries []PricePoint

// PercentageChange returns the change from the first to the last sample
// in timestamp order. Fewer than two samples counts as no change.
func (s PriceSeries) PercentageChange() float64 {
	if len(s) < 2 {
		return 0
	}
	first := s[0].Price
	last := s[len(s)-1].Price
	return (last - first) / first * 100
}

// DerivedMetrics holds the per-asset computed fields. A nil field means
// the corresponding fetch failed or the upstream had no data; it must
// never be read as zero.
type DerivedMetrics struct {
	PercentChange24h *float64 `json:"percent_change_24h"`
	CurrentPrice     *float64 `json:"current_price"`
}

// Snapshot is one display-ready view of a completed fetch cycle. Metrics
// has exactly one entry per asset in Assets.
type Snapshot struct {
	Assets    []TrendingAsset           `json:"assets"`
	Metrics   map[string]DerivedMetrics `json:"metrics"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

type SelectionStatus uint64

const (
	SelectionIdle    SelectionStatus = iota + 1 // idle
	SelectionLoading                            // loading
	SelectionReady                              // ready
	SelectionFailed                             // failed
)

func (s SelectionStatus) String() string {
	switch s {
	case SelectionIdle:
		return "idle"
	case SelectionLoading:
		return "loading"
	case SelectionReady:
		return "ready"
	case SelectionFailed:
		return "failed"
	}
	return "unknown"
}

// SelectionState is the detail loader's current state. Prices is only set
// when Status is SelectionReady.
type SelectionState struct {
	Status  SelectionStatus `json:"status"`
	AssetID string          `json:"asset_id,omitempty"`
	Prices  PriceSeries     `json:"prices,omitempty"`
}
