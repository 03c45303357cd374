// internal/market/models.go
package market

import "time"

// Source labels attached to snapshots so consumers can tell live data from
// the simulated fallback apart.
const (
	SourceCoinGecko = "CoinGecko API"
	SourceDefiLlama = "DeFiLlama API"
	SourceSimulated = "Simulated"
	SourceDemo      = "Demo Data"
)

// Snapshot is one point-in-time view of the tracked assets. Snapshots are
// immutable once returned; a new fetch supersedes the previous one.
type Snapshot struct {
	BTC       float64   `json:"btc"`
	ETH       float64   `json:"eth"`
	SOL       float64   `json:"sol"`
	BTCChange float64   `json:"btcChange"`
	ETHChange float64   `json:"ethChange"`
	SOLChange float64   `json:"solChange"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

// Live reports whether the snapshot came from a live provider rather than
// the fallback set.
func (s *Snapshot) Live() bool {
	return s.Source != SourceSimulated && s.Source != SourceDemo
}

// Protocol is one DeFi protocol entry in a TVL report.
type Protocol struct {
	Name     string  `json:"name"`
	TVL      float64 `json:"tvl"`
	Category string  `json:"category"`
	Change24 float64 `json:"change24h"`
}

// TVLReport aggregates protocol TVL figures.
type TVLReport struct {
	TotalTVL     float64    `json:"totalTvl"`
	TopProtocols []Protocol `json:"topProtocols"`
	Timestamp    time.Time  `json:"timestamp"`
	Source       string     `json:"source"`
}
