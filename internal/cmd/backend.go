package cmd

import (
	"time"

	"github.com/jimezsa/adscli/internal/adsapi"
	"github.com/jimezsa/adscli/internal/config"
	"github.com/jimezsa/adscli/internal/network"
	"github.com/jimezsa/adscli/internal/results"
)

const proxyBanDuration = 10 * time.Minute

// NewBackendFetcher wires the scrape-ads client to the tls-client transport,
// rotating through proxies when any are configured.
func NewBackendFetcher(ctx *Context, proxiesFlag string) (results.Fetcher, error) {
	client, err := newTransport(ctx, proxiesFlag)
	if err != nil {
		return nil, err
	}
	return adsapi.New(ctx.Config.BackendURL, client, ctx.Logger)
}

func newTransport(ctx *Context, proxiesFlag string) (*network.Client, error) {
	proxies, err := config.LoadProxies(ctx.ConfigDir, proxiesFlag)
	if err != nil {
		return nil, err
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, proxyBanDuration)
		if err != nil {
			return nil, err
		}
		ctx.Logger.Debug().Int("proxies", rotator.Len()).Msg("proxy rotation enabled")
	}

	return network.NewClient(rotator, network.Options{
		Timeout:   ctx.Config.Timeout(),
		UserAgent: "adscli/" + ctx.Version,
	})
}
