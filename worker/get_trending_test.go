package worker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kv-base-hack/trending-api/common"
	"github.com/kv-base-hack/trending-api/lib/coingecko"
	"github.com/kv-base-hack/trending-api/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSource is an in-memory MarketSource. A gate channel blocks that
// asset's chart fetch until the channel is closed.
type fakeSource struct {
	mu          sync.Mutex
	trending    coingecko.CoingeckoTrending
	trendingErr error

	charts     map[string]common.PriceSeries
	chartErrs  map[string]error
	chartGates map[string]chan struct{}
	chartCalls map[string]int

	prices     map[string]float64
	detailErrs map[string]error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		charts:     make(map[string]common.PriceSeries),
		chartErrs:  make(map[string]error),
		chartGates: make(map[string]chan struct{}),
		chartCalls: make(map[string]int),
		prices:     make(map[string]float64),
		detailErrs: make(map[string]error),
	}
}

func (f *fakeSource) GetTrending() (coingecko.CoingeckoTrending, error) {
	if f.trendingErr != nil {
		return coingecko.CoingeckoTrending{}, f.trendingErr
	}
	return f.trending, nil
}

func (f *fakeSource) GetMarketChart(id string, vsCurrency string, days int) (common.PriceSeries, error) {
	f.mu.Lock()
	f.chartCalls[id]++
	gate := f.chartGates[id]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err := f.chartErrs[id]; err != nil {
		return nil, err
	}
	return f.charts[id], nil
}

func (f *fakeSource) GetCoinDetail(id string) (coingecko.CoingeckoCoinDetail, error) {
	if err := f.detailErrs[id]; err != nil {
		return coingecko.CoingeckoCoinDetail{}, err
	}
	price, ok := f.prices[id]
	if !ok {
		return coingecko.CoingeckoCoinDetail{ID: id}, nil
	}
	return coingecko.CoingeckoCoinDetail{
		ID: id,
		MarketData: &coingecko.CoingeckoMarketData{
			CurrentPrice: map[string]float64{"eur": price},
		},
	}, nil
}

func (f *fakeSource) calls(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.chartCalls[id]
}

func trendingOf(ids ...string) coingecko.CoingeckoTrending {
	coins := make([]coingecko.CoingeckoCoin, 0, len(ids))
	for i, id := range ids {
		coins = append(coins, coingecko.CoingeckoCoin{
			Item: coingecko.Item{
				ID:            id,
				Symbol:        id,
				Name:          id,
				Large:         "https://img.test/" + id + ".png",
				MarketCapRank: i + 1,
				Score:         i,
			},
		})
	}
	return coingecko.CoingeckoTrending{Coins: coins}
}

func seriesOf(prices ...float64) common.PriceSeries {
	t0 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	series := make(common.PriceSeries, 0, len(prices))
	for i, p := range prices {
		series = append(series, common.PricePoint{
			Timestamp: t0.Add(time.Duration(i) * time.Hour),
			Price:     p,
		})
	}
	return series
}

func newTestWorker(source MarketSource) (*GetTrendingWorker, *storage.Storage) {
	store := storage.NewStorage(zap.NewNop().Sugar())
	w := NewGetTrendingWorker(zap.NewNop().Sugar(), source, store, time.Minute, "eur", 1)
	return w, store
}

func TestProcessPartialChartFailure(t *testing.T) {
	source := newFakeSource()
	source.trending = trendingOf("btc", "eth")
	source.chartErrs["btc"] = errors.New("rate limited")
	source.charts["eth"] = seriesOf(100, 110)
	source.prices["btc"] = 60000.5
	source.prices["eth"] = 3000.25

	w, store := newTestWorker(source)
	w.Init()

	view := store.GetView()
	require.NoError(t, view.Err)
	assert.False(t, view.Loading)
	require.Len(t, view.Snapshot.Assets, 2)
	require.Len(t, view.Snapshot.Metrics, 2)

	btc := view.Snapshot.Metrics["btc"]
	assert.Nil(t, btc.PercentChange24h)
	require.NotNil(t, btc.CurrentPrice)
	assert.Equal(t, 60000.5, *btc.CurrentPrice)

	eth := view.Snapshot.Metrics["eth"]
	require.NotNil(t, eth.PercentChange24h)
	assert.InDelta(t, 10, *eth.PercentChange24h, 0.0001)
	require.NotNil(t, eth.CurrentPrice)
	assert.Equal(t, 3000.25, *eth.CurrentPrice)
}

func TestProcessBatchNeverAbortsEarly(t *testing.T) {
	source := newFakeSource()
	source.trending = trendingOf("a", "b", "c", "d", "e")
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		source.charts[id] = seriesOf(100, 120)
		source.prices[id] = 1.5
	}
	source.chartErrs["b"] = errors.New("boom")
	source.chartErrs["d"] = errors.New("boom")
	source.detailErrs["c"] = errors.New("boom")

	w, store := newTestWorker(source)
	w.Init()

	view := store.GetView()
	require.Len(t, view.Snapshot.Metrics, 5)

	var missingChange, missingPrice int
	for _, m := range view.Snapshot.Metrics {
		if m.PercentChange24h == nil {
			missingChange++
		}
		if m.CurrentPrice == nil {
			missingPrice++
		}
	}
	assert.Equal(t, 2, missingChange)
	assert.Equal(t, 1, missingPrice)
}

func TestProcessDetailWithoutPriceIsUnavailable(t *testing.T) {
	source := newFakeSource()
	source.trending = trendingOf("obscure")
	source.charts["obscure"] = seriesOf(1, 2)

	w, store := newTestWorker(source)
	w.Init()

	metrics := store.GetView().Snapshot.Metrics["obscure"]
	assert.Nil(t, metrics.CurrentPrice)
	require.NotNil(t, metrics.PercentChange24h)
	assert.InDelta(t, 100, *metrics.PercentChange24h, 0.0001)
}

func TestProcessTrendingFailure(t *testing.T) {
	source := newFakeSource()
	source.trendingErr = errors.New("upstream down")

	w, store := newTestWorker(source)
	w.Init()

	view := store.GetView()
	assert.Error(t, view.Err)
	assert.False(t, view.Loading)
	assert.Empty(t, view.Snapshot.Assets)
}

func TestProcessAssetConversion(t *testing.T) {
	source := newFakeSource()
	source.trending = trendingOf("btc", "eth")

	w, store := newTestWorker(source)
	w.Init()

	assets := store.GetView().Snapshot.Assets
	require.Len(t, assets, 2)
	assert.Equal(t, "btc", assets[0].ID)
	assert.Equal(t, "https://img.test/btc.png", assets[0].IconUrl)
	assert.Equal(t, 1, assets[0].MarketCapRank)
	// trending position is shown 1-based
	assert.Equal(t, 1, assets[0].TrendingScore)
	assert.Equal(t, 2, assets[1].TrendingScore)
}
