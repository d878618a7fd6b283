package worker

import (
	"sync"

	"github.com/kv-base-hack/trending-api/common"
	"go.uber.org/zap"
)

// SelectionLoader fetches the intraday series for the one selected asset.
// Every Select or Clear bumps a generation counter; a fetch result is
// applied only while its generation is still current, so a superseded
// selection can never overwrite a newer one.
type SelectionLoader struct {
	log          *zap.SugaredLogger
	source       MarketSource
	quote        string
	lookbackDays int

	mutex sync.Mutex
	gen   uint64
	state common.SelectionState
}

func NewSelectionLoader(log *zap.SugaredLogger, source MarketSource, quote string, lookbackDays int) *SelectionLoader {
	return &SelectionLoader{
		log:          log.With("worker", "selection"),
		source:       source,
		quote:        quote,
		lookbackDays: lookbackDays,
		state:        common.SelectionState{Status: common.SelectionIdle},
	}
}

// Select starts loading the series for the given asset, superseding any
// in-flight fetch.
func (l *SelectionLoader) Select(id string) {
	l.mutex.Lock()
	l.gen++
	gen := l.gen
	l.state = common.SelectionState{Status: common.SelectionLoading, AssetID: id}
	l.mutex.Unlock()

	go l.fetch(gen, id)
}

// Clear drops the selection and invalidates any in-flight fetch.
func (l *SelectionLoader) Clear() {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.gen++
	l.state = common.SelectionState{Status: common.SelectionIdle}
}

func (l *SelectionLoader) State() common.SelectionState {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.state
}

func (l *SelectionLoader) fetch(gen uint64, id string) {
	series, err := l.source.GetMarketChart(id, l.quote, l.lookbackDays)

	l.mutex.Lock()
	defer l.mutex.Unlock()

	if gen != l.gen {
		// superseded selection, drop the result
		return
	}
	if err != nil {
		l.log.Errorw("error when get chart for selection", "id", id, "err", err)
		l.state = common.SelectionState{Status: common.SelectionFailed, AssetID: id}
		return
	}
	l.state = common.SelectionState{Status: common.SelectionReady, AssetID: id, Prices: series}
}
