// internal/market/fallback.go
package market

import (
	"math/rand"
	"time"
)

// Fallback centers. Downstream consumers must never observe "no data" once
// the system has started, so these stand in whenever a provider fails.
const (
	fallbackBTC       = 102803.10
	fallbackETH       = 2290.50
	fallbackSOL       = 135.93
	fallbackBTCChange = -0.69
	fallbackETHChange = -5.54
	fallbackSOLChange = -3.20
)

// SimulatedSnapshot returns the deterministic fallback snapshot with small
// bounded jitter around the fixed centers, tagged so consumers can tell it
// apart from live data.
func SimulatedSnapshot(r *rand.Rand) *Snapshot {
	return &Snapshot{
		BTC:       fallbackBTC + (r.Float64()-0.5)*500,
		ETH:       fallbackETH + (r.Float64()-0.5)*50,
		SOL:       fallbackSOL + (r.Float64()-0.5)*10,
		BTCChange: fallbackBTCChange + (r.Float64()-0.5)*2,
		ETHChange: fallbackETHChange + (r.Float64()-0.5)*2,
		SOLChange: fallbackSOLChange + (r.Float64()-0.5)*2,
		Timestamp: time.Now().UTC(),
		Source:    SourceSimulated,
	}
}

// DemoTVLReport is the fixed fallback used when the TVL provider is
// unreachable.
func DemoTVLReport() *TVLReport {
	return &TVLReport{
		TotalTVL: 89.7e9,
		TopProtocols: []Protocol{
			{Name: "Uniswap V3", TVL: 5.2e9, Category: "Dexes"},
			{Name: "Aave V3", TVL: 4.8e9, Category: "Lending"},
		},
		Timestamp: time.Now().UTC(),
		Source:    SourceDemo,
	}
}
