package worker

import (
	"github.com/kv-base-hack/trending-api/common"
	"github.com/kv-base-hack/trending-api/lib/coingecko"
)

// MarketSource is the slice of the market-data client the workers call.
type MarketSource interface {
	GetTrending() (coingecko.CoingeckoTrending, error)
	GetMarketChart(id string, vsCurrency string, days int) (common.PriceSeries, error)
	GetCoinDetail(id string) (coingecko.CoingeckoCoinDetail, error)
}
