// cmd/dashboard/main.go
package main

import (
	"context"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"echo3/internal/advisor"
	"echo3/internal/catalog"
	"echo3/internal/common/config"
	"echo3/internal/common/logger"
	"echo3/internal/common/observability"
	"echo3/internal/ledger"
	"echo3/internal/market"
	"echo3/internal/orchestrator"
	"echo3/internal/progress"
	"echo3/internal/quest"
	"echo3/internal/session"
)

func main() {
	bootLog := logger.New("info", "console")
	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting dashboard",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	var jaegerEndpoint string
	if cfg.Tracing.Enabled {
		jaegerEndpoint = cfg.Tracing.CollectorEndpoint
	}
	obs := observability.New(cfg.App.Name, jaegerEndpoint)
	defer obs.Shutdown()

	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			zapLog.Info("metrics endpoint listening", zap.String("address", cfg.Metrics.ListenAddress))
			if err := http.ListenAndServe(cfg.Metrics.ListenAddress, nil); err != nil {
				zapLog.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}

	dims := cat.Dimensions()
	if len(dims) == 0 {
		zapLog.Fatal("catalog is empty")
	}
	selection, err := catalog.NewSelection(cat, dims[0].ID)
	if err != nil {
		zapLog.Fatal("selection init failed", zap.Error(err))
	}
	sess := session.New(selection)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := market.NewHTTPProvider(cfg.Market, log)
	refresher := market.NewRefresher(provider, cfg.Market, log)
	refresher.Start(ctx)

	var client ledger.Client = ledger.NewSimulatedClient(cfg.Ledger, log)
	if !cfg.Ledger.Simulate {
		client = ledger.DisconnectedClient{}
	}

	var bridge *quest.Bridge
	var walletInfo *ledger.WalletInfo
	var contractAddr string
	info, err := client.Connect(ctx)
	if err != nil {
		log.Warn("continuing without a wallet", map[string]interface{}{"error": err.Error()})
	} else {
		walletInfo = info
		if contract := client.Contract(info.ChainID); contract != nil {
			if net, ok := cfg.Ledger.ContractFor(info.ChainID); ok {
				contractAddr = net.Address
			}
			bridge = quest.NewBridge(contract, config.GetDuration(cfg.Ledger.ConfirmTimeout), log)
		}
	}

	sim := progress.NewStepped(
		config.GetDuration(cfg.Progress.BaseInterval),
		config.GetDuration(cfg.Progress.Jitter),
		nil,
	)

	orch := orchestrator.New(orchestrator.Options{
		Session:       sess,
		Catalog:       cat,
		Generator:     advisor.NewGenerator(nil),
		Progress:      sim,
		Refresher:     refresher,
		Bridge:        bridge,
		WalletInfo:    walletInfo,
		ContractAddr:  contractAddr,
		Observability: obs,
		Logger:        log,
	})
	// Snapshot the session into the model before the loop goroutine
	// starts; from then on the TUI only sees session state via events.
	model := newModel(orch, sess, cat, refresher)
	go orch.Run(ctx)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		zapLog.Error("dashboard exited with error", zap.Error(err))
		cancel()
		refresher.Wait()
		os.Exit(1)
	}

	cancel()

	waitDone := make(chan struct{})
	go func() {
		refresher.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-time.After(5 * time.Second):
		zapLog.Warn("refresher did not stop in time")
	}

	zapLog.Info("dashboard stopped")
}
