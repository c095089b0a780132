package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jimezsa/jamscrape/internal/config"
	"github.com/jimezsa/jamscrape/internal/network"
	"github.com/jimezsa/jamscrape/internal/scraper"
	"github.com/jimezsa/jamscrape/internal/table"
)

const proxyBanDuration = 10 * time.Minute

// JobCollector runs a scrape and returns the raw result table.
type JobCollector interface {
	ScrapeJobs(ctx context.Context, req scraper.Request) (*table.Table, error)
}

type CollectorFactory func(ctx *Context, proxies string) (JobCollector, error)

// DefaultCollector builds the site registry with proxies resolved from the
// flag, the environment or the config dir.
func DefaultCollector(ctx *Context, proxiesFlag string) (JobCollector, error) {
	proxies, err := config.LoadProxies(proxiesFlag)
	if err != nil {
		return nil, fmt.Errorf("load proxies: %w", err)
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, proxyBanDuration)
		if err != nil {
			return nil, err
		}
		ctx.Logger.Debug().Int("proxies", rotator.Len()).Msg("proxy rotation enabled")
	}

	registry, err := scraper.Registry(network.Options{
		Timeout:           ctx.Config.RequestTimeout(),
		RequestsPerSecond: ctx.Config.RequestsPerSecond,
		Rotator:           rotator,
	})
	if err != nil {
		return nil, err
	}
	return scraper.NewCollector(registry, ctx.Logger), nil
}
