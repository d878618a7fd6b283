package main

import (
	"os"
	"sort"

	"github.com/joho/godotenv"
	"github.com/kv-base-hack/trending-api/internal/httputil"
	"github.com/kv-base-hack/trending-api/internal/server"
	"github.com/kv-base-hack/trending-api/lib/coingecko"
	"github.com/kv-base-hack/trending-api/storage"
	"github.com/kv-base-hack/trending-api/worker"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	app := cli.NewApp()
	app.Action = run
	app.Flags = append(app.Flags, NewFlags()...)
	app.Flags = append(app.Flags, httputil.NewHTTPCliFlags(httputil.Port)...)

	sort.Sort(cli.FlagsByName(app.Flags))

	if err := app.Run(os.Args); err != nil {
		panic(err)
	}
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	if c.Bool(verbose) {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	zap.ReplaceGlobals(logger)
	log := logger.Sugar()
	log.Debugw("Starting application...")

	store := storage.NewStorage(log)

	gecko := coingecko.NewCoinGecko(c.String(coingeckoBaseURL),
		c.String(coingeckoAPIKey), c.Duration(coingeckoTimeout))

	getTrendingWorker := worker.NewGetTrendingWorker(log, gecko, store,
		c.Duration(trendingRefreshDuration), c.String(quoteCurrency), c.Int(chartLookbackDays))
	go getTrendingWorker.Run()

	selection := worker.NewSelectionLoader(log, gecko,
		c.String(quoteCurrency), c.Int(chartLookbackDays))

	host := httputil.NewHTTPAddressFromContext(c)
	server := server.NewServer(host, store, selection)
	return server.Run()
}
