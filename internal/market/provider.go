// internal/market/provider.go
package market

import (
	"context"
	"sort"
	"time"

	"echo3/internal/common/config"
	stderrors "echo3/internal/common/errors"
	commonhttp "echo3/internal/common/http"
	"echo3/internal/common/logger"
)

// Provider supplies current prices and protocol TVL figures.
type Provider interface {
	FetchPrices(ctx context.Context) (*Snapshot, error)
	FetchProtocolTVL(ctx context.Context) (*TVLReport, error)
}

// HTTPProvider talks to CoinGecko and DeFiLlama.
type HTTPProvider struct {
	cfg    config.MarketConfig
	client *commonhttp.Client
	logger logger.Logger
}

func NewHTTPProvider(cfg config.MarketConfig, log logger.Logger) *HTTPProvider {
	return &HTTPProvider{
		cfg:    cfg,
		client: commonhttp.NewClient(config.GetDuration(cfg.Timeout)),
		logger: log.With(map[string]interface{}{"component": "market"}),
	}
}

type coinGeckoEntry struct {
	USD       float64 `json:"usd"`
	USDChange float64 `json:"usd_24h_change"`
}

// FetchPrices queries the CoinGecko simple price endpoint. A transport or
// decode failure returns a PROVIDER_UNAVAILABLE error; callers substitute
// the simulated fallback.
func (p *HTTPProvider) FetchPrices(ctx context.Context) (*Snapshot, error) {
	url := p.cfg.CoinGeckoURL + "/simple/price?ids=bitcoin,ethereum,solana&vs_currencies=usd&include_24hr_change=true"

	var data map[string]coinGeckoEntry
	if err := p.client.GetJSON(ctx, url, &data); err != nil {
		p.logger.Warn("price fetch failed", map[string]interface{}{"error": err.Error()})
		return nil, stderrors.NewProviderUnavailableError(err)
	}

	snap := &Snapshot{
		BTC:       data["bitcoin"].USD,
		ETH:       data["ethereum"].USD,
		SOL:       data["solana"].USD,
		BTCChange: data["bitcoin"].USDChange,
		ETHChange: data["ethereum"].USDChange,
		SOLChange: data["solana"].USDChange,
		Timestamp: time.Now().UTC(),
		Source:    SourceCoinGecko,
	}

	p.logger.Debug("prices fetched", map[string]interface{}{
		"btc": snap.BTC,
		"eth": snap.ETH,
		"sol": snap.SOL,
	})

	return snap, nil
}

type llamaProtocol struct {
	Name     string  `json:"name"`
	TVL      float64 `json:"tvl"`
	Category string  `json:"category"`
	Change1D float64 `json:"change_1d"`
}

// FetchProtocolTVL queries the DeFiLlama protocols endpoint and aggregates
// total TVL plus the top ten protocols above the configured floor.
func (p *HTTPProvider) FetchProtocolTVL(ctx context.Context) (*TVLReport, error) {
	var raw []llamaProtocol
	if err := p.client.GetJSON(ctx, p.cfg.DefiLlamaURL+"/protocols", &raw); err != nil {
		p.logger.Warn("tvl fetch failed", map[string]interface{}{"error": err.Error()})
		return nil, stderrors.NewProviderUnavailableError(err)
	}

	report := &TVLReport{
		Timestamp: time.Now().UTC(),
		Source:    SourceDefiLlama,
	}

	var big []llamaProtocol
	for _, proto := range raw {
		report.TotalTVL += proto.TVL
		if proto.TVL > p.cfg.MinProtocolTVLUSD {
			big = append(big, proto)
		}
	}
	sort.Slice(big, func(i, j int) bool { return big[i].TVL > big[j].TVL })
	if len(big) > 10 {
		big = big[:10]
	}
	for _, proto := range big {
		report.TopProtocols = append(report.TopProtocols, Protocol{
			Name:     proto.Name,
			TVL:      proto.TVL,
			Category: proto.Category,
			Change24: proto.Change1D,
		})
	}

	return report, nil
}
