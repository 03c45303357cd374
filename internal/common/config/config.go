// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Market   MarketConfig   `mapstructure:"market"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Progress ProgressConfig `mapstructure:"progress"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// CatalogConfig points at the static dimension catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// MarketConfig holds settings for the market data provider.
type MarketConfig struct {
	CoinGeckoURL      string  `mapstructure:"coingecko_url"`
	DefiLlamaURL      string  `mapstructure:"defillama_url"`
	Timeout           int     `mapstructure:"timeout"`          // milliseconds
	RefreshInterval   int     `mapstructure:"refresh_interval"` // milliseconds
	MinProtocolTVLUSD float64 `mapstructure:"min_protocol_tvl_usd"`
}

// LedgerConfig holds the contract deployment map and bridge timeouts.
type LedgerConfig struct {
	Networks       map[string]NetworkConfig `mapstructure:"networks"`
	ConfirmTimeout int                      `mapstructure:"confirm_timeout"` // milliseconds
	Simulate       bool                     `mapstructure:"simulate"`
}

// NetworkConfig describes one deployment target.
type NetworkConfig struct {
	Address string `mapstructure:"address"`
	ChainID int64  `mapstructure:"chain_id"`
	Name    string `mapstructure:"name"`
}

// ContractFor returns the network config for a chain id, or false when no
// deployed address is configured for that network.
func (l LedgerConfig) ContractFor(chainID int64) (NetworkConfig, bool) {
	for _, n := range l.Networks {
		if n.ChainID == chainID && n.Address != "" {
			return n, true
		}
	}
	return NetworkConfig{}, false
}

// ProgressConfig holds the analysis progress pacing.
type ProgressConfig struct {
	BaseInterval int `mapstructure:"base_interval"` // milliseconds
	Jitter       int `mapstructure:"jitter"`        // milliseconds
}

// MetricsConfig holds the prometheus endpoint settings.
type MetricsConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	ListenAddress string `mapstructure:"listen_address"`
}

// TracingConfig holds the jaeger exporter settings.
type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

func (m MarketConfig) String() string {
	return fmt.Sprintf("coingecko=%s defillama=%s refresh=%dms", m.CoinGeckoURL, m.DefiLlamaURL, m.RefreshInterval)
}
