package coingecko

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/kv-base-hack/trending-api/common"
)

const (
	trendingEndpoint    = "%s/search/trending"
	marketChartEndpoint = "%s/coins/%s/market_chart"
	detailEndpoint      = "%s/coins/%s"
)

// CoinGecko is a thin client over the CoinGecko v3 API. Every call is one
// best-effort request: no retries, no caching, no backoff.
type CoinGecko struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewCoinGecko creates a new CoinGecko instance. An empty apiKey omits the
// key query parameter.
func NewCoinGecko(baseURL string, apiKey string, timeout time.Duration) *CoinGecko {
	client := &http.Client{
		Timeout: timeout,
	}
	return &CoinGecko{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (cg *CoinGecko) get(op, url string, query map[string]string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Add("Accept", "application/json")

	q := req.URL.Query()
	for k, v := range query {
		q.Add(k, v)
	}
	if cg.apiKey != "" {
		q.Add("key", cg.apiKey)
	}
	req.URL.RawQuery = q.Encode()

	rsp, err := cg.client.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer rsp.Body.Close()

	if rsp.StatusCode != http.StatusOK {
		return &TransportError{Op: op, Err: fmt.Errorf("unexpected status code: %s", rsp.Status)}
	}
	respBody, err := io.ReadAll(rsp.Body)
	if err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

// GetTrending fetches the current trending coin list.
func (cg *CoinGecko) GetTrending() (CoingeckoTrending, error) {
	url := fmt.Sprintf(trendingEndpoint, cg.baseURL)

	var coins CoingeckoTrending
	if err := cg.get("trending", url, nil, &coins); err != nil {
		return CoingeckoTrending{}, err
	}
	return coins, nil
}

// GetMarketChart fetches the price series of one coin over the lookback
// window. An empty series is a valid result.
func (cg *CoinGecko) GetMarketChart(id string, vsCurrency string, days int) (common.PriceSeries, error) {
	url := fmt.Sprintf(marketChartEndpoint, cg.baseURL, id)
	query := map[string]string{
		"vs_currency": vsCurrency,
		"days":        strconv.Itoa(days),
	}

	var chart CoingeckoMarketChart
	if err := cg.get("market_chart", url, query, &chart); err != nil {
		return nil, err
	}

	series := make(common.PriceSeries, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		series = append(series, common.PricePoint{
			Timestamp: time.UnixMilli(int64(p[0])).UTC(),
			Price:     p[1],
		})
	}
	// series must be ordered non-decreasing by timestamp
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})
	return series, nil
}

// GetCoinDetail fetches one coin's detail. A response without market data
// or without a price for the wanted currency is a valid "no price" result.
func (cg *CoinGecko) GetCoinDetail(id string) (CoingeckoCoinDetail, error) {
	url := fmt.Sprintf(detailEndpoint, cg.baseURL, id)

	var detail CoingeckoCoinDetail
	if err := cg.get("detail", url, nil, &detail); err != nil {
		return CoingeckoCoinDetail{}, err
	}
	return detail, nil
}

// CurrentPrice extracts the current price in the given quote currency.
// The second return is false when the upstream has no price.
func (d CoingeckoCoinDetail) CurrentPrice(vsCurrency string) (float64, bool) {
	if d.MarketData == nil {
		return 0, false
	}
	price, ok := d.MarketData.CurrentPrice[vsCurrency]
	return price, ok
}
