package main

import (
	"time"

	"github.com/urfave/cli/v2"
)

const (
	trendingRefreshDuration = "trending-refresh-duration"
	quoteCurrency           = "quote-currency"
	chartLookbackDays       = "chart-lookback-days"
	coingeckoBaseURL        = "coingecko-base-url"
	coingeckoAPIKey         = "coingecko-api-key"
	coingeckoTimeout        = "coingecko-timeout"
	verbose                 = "verbose"
)

// NewFlags creates new cli flags.
func NewFlags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:    trendingRefreshDuration,
			Value:   time.Minute * 5,
			Usage:   "duration between trending fetch cycles",
			EnvVars: []string{"TRENDING_REFRESH_DURATION"},
		},
		&cli.StringFlag{
			Name:    quoteCurrency,
			Value:   "eur",
			Usage:   "currency to quote prices in",
			EnvVars: []string{"QUOTE_CURRENCY"},
		},
		&cli.IntFlag{
			Name:    chartLookbackDays,
			Value:   1,
			Usage:   "lookback window of the intraday chart in days",
			EnvVars: []string{"CHART_LOOKBACK_DAYS"},
		},
		&cli.StringFlag{
			Name:    coingeckoBaseURL,
			Value:   "https://api.coingecko.com/api/v3",
			Usage:   "base url of the coingecko api",
			EnvVars: []string{"COINGECKO_BASE_URL"},
		},
		&cli.StringFlag{
			Name:    coingeckoAPIKey,
			Usage:   "coingecko api key, sent as query parameter when set",
			EnvVars: []string{"COINGECKO_API_KEY"},
		},
		&cli.DurationFlag{
			Name:    coingeckoTimeout,
			Value:   time.Second * 10,
			Usage:   "timeout for one coingecko request",
			EnvVars: []string{"COINGECKO_TIMEOUT"},
		},
		&cli.BoolFlag{
			Name:    verbose,
			Usage:   "log at debug level with console encoding",
			EnvVars: []string{"VERBOSE"},
		},
	}
}
