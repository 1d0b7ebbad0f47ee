package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-wallet/internal/config"
	"github.com/tdex-network/tdex-wallet/internal/core/application"
	"github.com/tdex-network/tdex-wallet/internal/infrastructure/price-feeder/coingecko"
	"github.com/tdex-network/tdex-wallet/internal/infrastructure/pubsub"
	"github.com/tdex-network/tdex-wallet/internal/interfaces"
	httpinterface "github.com/tdex-network/tdex-wallet/internal/interfaces/http"
	"github.com/tdex-network/tdex-wallet/pkg/stats"
)

const priceSourceTimeout = 15 * time.Second

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("failed to initialize config")
	}

	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	var (
		datadir       = config.GetDatadir()
		dbType        = config.GetString(config.DBTypeKey)
		address       = fmt.Sprintf(":%d", config.GetInt(config.HTTPListeningPortKey))
		priceURL      = config.GetString(config.PriceSourceURLKey)
		enableProfile = config.GetBool(config.EnableProfilerKey)
		enableHooks   = config.GetBool(config.EnableWebhooksKey)
		operatorAddr  = fmt.Sprintf(":%d", config.GetInt(config.OperatorListeningPortKey))
		statsInterval = time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second
	)

	priceSource, err := coingecko.NewService(
		priceURL, config.GetInt(config.PriceRateLimitKey), priceSourceTimeout,
	)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize price source")
	}

	appConfig := &application.Config{
		DBType:               dbType,
		DBConfig:             config.GetDbDir(),
		PriceSource:          priceSource,
		PriceCacheTTL:        config.GetDuration(config.PriceCacheTTLKey),
		PriceHistoryCacheTTL: config.GetDuration(config.PriceHistoryCacheTTLKey),
		NetworkFee:           config.GetDecimal(config.NetworkFeeKey),
		SwapFee:              config.GetDecimal(config.SwapFeeKey),
		TxConfirmationDelay:  config.GetDuration(config.TxConfirmationDelayKey),
		WithDemoBalances:     config.GetBool(config.DemoBalancesKey),
	}
	if enableHooks {
		pubsubSvc, err := pubsub.NewService(config.GetWebhooksDir())
		if err != nil {
			log.WithError(err).Fatal("failed to initialize webhooks pubsub")
		}
		appConfig.PubSub = pubsubSvc
	}
	if err := appConfig.Validate(); err != nil {
		log.WithError(err).Fatal("invalid application config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if enableProfile {
		statsDir := filepath.Join(datadir, config.ProfilerLocation)
		stats.EnableMemoryStatistics(ctx, statsInterval, statsDir)
		log.Infof("memory statistics enabled, dumping to %s on exit", statsDir)
	}

	svc, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Address:        address,
		WalletSvc:      appConfig.WalletService(),
		BalanceSvc:     appConfig.BalanceService(),
		TransactionSvc: appConfig.TransactionService(),
		PriceSvc:       appConfig.PriceService(),
	})
	if err != nil {
		appConfig.Close()
		log.WithError(err).Fatal("failed to initialize wallet-sync interface")
	}

	var operatorSvc interfaces.Service
	if enableHooks {
		operatorSvc, err = httpinterface.NewOperatorService(httpinterface.OperatorOpts{
			Address:    operatorAddr,
			Token:      config.GetString(config.OperatorTokenKey),
			WebhookSvc: appConfig.WebhookService(),
		})
		if err != nil {
			appConfig.Close()
			log.WithError(err).Fatal("failed to initialize operator interface")
		}
	}

	log.RegisterExitHandler(appConfig.Close)

	log.WithFields(log.Fields{
		"datadir":  datadir,
		"db":       dbType,
		"prices":   priceURL,
		"webhooks": enableHooks,
	}).Info("starting daemon")

	if err := svc.Start(); err != nil {
		log.WithError(err).Fatal("failed to start wallet-sync interface")
	}
	if operatorSvc != nil {
		if err := operatorSvc.Start(); err != nil {
			svc.Stop()
			log.WithError(err).Fatal("failed to start operator interface")
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Info("shutting down daemon")
	if operatorSvc != nil {
		operatorSvc.Stop()
	}
	svc.Stop()
	appConfig.Close()
	cancel()

	// let the stats routine dump the metrics before exiting.
	if enableProfile {
		time.Sleep(time.Second)
	}
	log.Info("daemon stopped")
}
