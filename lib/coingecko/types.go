package coingecko

type CoingeckoTrending struct {
	Coins []CoingeckoCoin `json:"coins"`
}

type CoingeckoCoin struct {
	Item Item `json:"item"`
}

type Item struct {
	ID            string  `json:"id"`
	CoinID        uint    `json:"coin_id"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Slug          string  `json:"slug"`
	Thumb         string  `json:"thumb"`
	Small         string  `json:"small"`
	Large         string  `json:"large"`
	MarketCapRank int     `json:"market_cap_rank"`
	Score         int     `json:"score"`
	PriceBtc      float64 `json:"price_btc"`
}

// CoingeckoMarketChart is the /coins/{id}/market_chart response. Prices
// holds [unix_ms, price] pairs ordered by time.
type CoingeckoMarketChart struct {
	Prices [][2]float64 `json:"prices"`
}

// CoingeckoCoinDetail is the subset of /coins/{id} the service reads.
// MarketData or its CurrentPrice entry for a given currency may be
// missing; that is valid data, not a malformed response.
type CoingeckoCoinDetail struct {
	ID         string               `json:"id"`
	MarketData *CoingeckoMarketData `json:"market_data"`
}

type CoingeckoMarketData struct {
	CurrentPrice map[string]float64 `json:"current_price"`
}
