package worker

import (
	"sync"
	"time"

	"github.com/kv-base-hack/trending-api/common"
	"github.com/kv-base-hack/trending-api/storage"
	"go.uber.org/zap"
)

// GetTrendingWorker runs the fetch cycle: trending list, then one
// market-chart call and one detail call per asset, merged into a snapshot
// that is published in one piece.
type GetTrendingWorker struct {
	log          *zap.SugaredLogger
	source       MarketSource
	storage      *storage.Storage
	duration     time.Duration
	quote        string
	lookbackDays int
}

func NewGetTrendingWorker(log *zap.SugaredLogger, source MarketSource, storage *storage.Storage,
	duration time.Duration, quote string, lookbackDays int) *GetTrendingWorker {
	return &GetTrendingWorker{
		log:          log.With("worker", "getTrending"),
		source:       source,
		storage:      storage,
		duration:     duration,
		quote:        quote,
		lookbackDays: lookbackDays,
	}
}

func (g *GetTrendingWorker) Init() {
	g.process()
}

func (g *GetTrendingWorker) Run() {
	t := time.NewTicker(g.duration)
	for ; ; <-t.C {
		g.process()
	}
}

func (g *GetTrendingWorker) process() {
	now := time.Now()
	defer func() {
		g.log.Debugw("Execution time", "process", time.Since(now))
	}()

	trending, err := g.source.GetTrending()
	if err != nil {
		g.log.Errorw("error when get trending coins", "err", err)
		g.storage.SetCycleFailure(err)
		return
	}

	assets := make([]common.TrendingAsset, 0, len(trending.Coins))
	for _, coin := range trending.Coins {
		assets = append(assets, common.TrendingAsset{
			ID:            coin.Item.ID,
			Symbol:        coin.Item.Symbol,
			Name:          coin.Item.Name,
			IconUrl:       coin.Item.Large,
			MarketCapRank: coin.Item.MarketCapRank,
			// the trending feed scores from 0, rows show a 1-based position
			TrendingScore: coin.Item.Score + 1,
			PriceBtc:      coin.Item.PriceBtc,
		})
	}

	metrics := g.collectMetrics(assets)
	g.storage.SetSnapshot(common.Snapshot{
		Assets:    assets,
		Metrics:   metrics,
		UpdatedAt: time.Now().UTC(),
	})
}

// collectMetrics runs the two fan-out batches and merges them by asset id.
// Both batches settle fully before anything is returned, so a snapshot
// always carries exactly one metrics entry per asset.
func (g *GetTrendingWorker) collectMetrics(assets []common.TrendingAsset) map[string]common.DerivedMetrics {
	var wg sync.WaitGroup
	var changes map[string]*float64
	var prices map[string]*float64

	wg.Add(2)
	go func() {
		defer wg.Done()
		changes = g.collectChanges(assets)
	}()
	go func() {
		defer wg.Done()
		prices = g.collectPrices(assets)
	}()
	wg.Wait()

	metrics := make(map[string]common.DerivedMetrics, len(assets))
	for _, asset := range assets {
		metrics[asset.ID] = common.DerivedMetrics{
			PercentChange24h: changes[asset.ID],
			CurrentPrice:     prices[asset.ID],
		}
	}
	return metrics
}

type assetValue struct {
	id    string
	value *float64
}

// collectChanges fetches every asset's intraday series concurrently and
// derives its percentage change. A failed call yields a nil value for that
// asset only; siblings are unaffected.
func (g *GetTrendingWorker) collectChanges(assets []common.TrendingAsset) map[string]*float64 {
	results := make(chan assetValue, len(assets))
	var wg sync.WaitGroup
	for _, asset := range assets {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			series, err := g.source.GetMarketChart(id, g.quote, g.lookbackDays)
			if err != nil {
				g.log.Errorw("error when get market chart", "id", id, "err", err)
				results <- assetValue{id: id}
				return
			}
			change := series.PercentageChange()
			results <- assetValue{id: id, value: &change}
		}(asset.ID)
	}
	wg.Wait()
	close(results)

	changes := make(map[string]*float64, len(assets))
	for r := range results {
		changes[r.id] = r.value
	}
	return changes
}

// collectPrices fetches every asset's detail concurrently and extracts the
// current quote-currency price. A failed call or a detail without a price
// yields a nil value, never zero.
func (g *GetTrendingWorker) collectPrices(assets []common.TrendingAsset) map[string]*float64 {
	results := make(chan assetValue, len(assets))
	var wg sync.WaitGroup
	for _, asset := range assets {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			detail, err := g.source.GetCoinDetail(id)
			if err != nil {
				g.log.Errorw("error when get coin detail", "id", id, "err", err)
				results <- assetValue{id: id}
				return
			}
			price, ok := detail.CurrentPrice(g.quote)
			if !ok {
				results <- assetValue{id: id}
				return
			}
			results <- assetValue{id: id, value: &price}
		}(asset.ID)
	}
	wg.Wait()
	close(results)

	prices := make(map[string]*float64, len(assets))
	for r := range results {
		prices[r.id] = r.value
	}
	return prices
}
