package application

import (
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-wallet/internal/core/ports"
	dbbadger "github.com/tdex-network/tdex-wallet/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/tdex-wallet/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/tdex-wallet/pkg/addressgen"
)

type Config struct {
	DBType string
	// DBConfig is the datadir of the badger database, empty for an in-memory
	// one.
	DBConfig interface{}

	PriceSource          ports.PriceSource
	PriceCacheTTL        time.Duration
	PriceHistoryCacheTTL time.Duration

	// Catalog overrides the default list of networks addresses are derived
	// for.
	Catalog             []string
	NetworkFee          decimal.Decimal
	SwapFee             decimal.Decimal
	TxConfirmationDelay time.Duration
	WithDemoBalances    bool

	// PubSub notifies the registered webhooks about transaction events.
	// Webhooks are disabled if nil.
	PubSub ports.PubSub

	repo        ports.RepoManager
	broker      *txBroker
	wallet      WalletService
	balance     BalanceService
	transaction TransactionService
	price       PriceService
	webhook     WebhookService
	notifier    *txNotifier
}

func (c *Config) Validate() error {
	if _, ok := SupportedDBType[c.DBType]; !ok {
		return ErrUnsupportedDBType
	}
	if _, err := c.repoManager(); err != nil {
		return err
	}
	if _, err := c.walletService(); err != nil {
		return err
	}
	if _, err := c.transactionService(); err != nil {
		return err
	}
	if _, err := c.balanceService(); err != nil {
		return err
	}
	c.webhookService()
	return nil
}

func (c *Config) RepoManager() ports.RepoManager {
	svc, _ := c.repoManager()
	return svc
}

func (c *Config) WalletService() WalletService {
	svc, _ := c.walletService()
	return svc
}

func (c *Config) BalanceService() BalanceService {
	svc, _ := c.balanceService()
	return svc
}

func (c *Config) TransactionService() TransactionService {
	svc, _ := c.transactionService()
	return svc
}

func (c *Config) PriceService() PriceService {
	svc, _ := c.priceService()
	return svc
}

func (c *Config) WebhookService() WebhookService {
	return c.webhookService()
}

// Close stops the pending confirmations, waits for the pending webhook
// notifications and closes the databases.
func (c *Config) Close() {
	if c.transaction != nil {
		c.transaction.Close()
	}
	if c.broker != nil {
		c.broker.close()
	}
	if c.notifier != nil {
		c.notifier.wait()
	}
	if c.PubSub != nil {
		if err := c.PubSub.Close(); err != nil {
			log.WithError(err).Warn("error while closing webhooks db")
		}
	}
	if c.repo != nil {
		c.repo.Close()
	}
}

func (c *Config) repoManager() (ports.RepoManager, error) {
	if c.repo == nil {
		switch c.DBType {
		case DBBadger:
			datadir, _ := c.DBConfig.(string)
			repoManager, err := dbbadger.NewRepoManager(datadir, log.StandardLogger())
			if err != nil {
				return nil, err
			}
			c.repo = repoManager
		case DBInMemory:
			c.repo = inmemory.NewRepoManager()
		default:
			return nil, ErrUnsupportedDBType
		}
	}
	return c.repo, nil
}

func (c *Config) txBroker() *txBroker {
	if c.broker == nil {
		c.broker = newTxBroker()
	}
	return c.broker
}

func (c *Config) priceService() (PriceService, error) {
	if c.price == nil {
		c.price = NewPriceService(
			c.PriceSource, c.PriceCacheTTL, c.PriceHistoryCacheTTL,
		)
	}
	return c.price, nil
}

func (c *Config) walletService() (WalletService, error) {
	if c.wallet == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}

		opts := make([]addressgen.Option, 0)
		if len(c.Catalog) > 0 {
			opts = append(opts, addressgen.WithCatalog(c.Catalog))
		}
		var demoBalances map[string]decimal.Decimal
		if c.WithDemoBalances {
			demoBalances = DemoBalances
		}

		wallet, err := NewWalletService(
			repo, addressgen.NewAddressBook(opts...), demoBalances,
		)
		if err != nil {
			return nil, err
		}
		c.wallet = wallet
	}
	return c.wallet, nil
}

func (c *Config) balanceService() (BalanceService, error) {
	if c.balance == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		price, _ := c.priceService()
		balance, err := newBalanceService(repo, price, c.txBroker())
		if err != nil {
			return nil, err
		}
		c.balance = balance
	}
	return c.balance, nil
}

func (c *Config) transactionService() (TransactionService, error) {
	if c.transaction == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		price, _ := c.priceService()
		transaction, err := newTransactionService(
			repo, price, c.txBroker(), TransactionServiceOpts{
				NetworkFee:        c.NetworkFee,
				SwapFee:           c.SwapFee,
				ConfirmationDelay: c.TxConfirmationDelay,
			},
		)
		if err != nil {
			return nil, err
		}
		c.transaction = transaction
	}
	return c.transaction, nil
}

func (c *Config) webhookService() WebhookService {
	if c.webhook == nil {
		c.webhook = NewWebhookService(c.PubSub)
		if c.PubSub != nil {
			c.notifier = startTxNotifier(c.PubSub, c.txBroker())
		}
	}
	return c.webhook
}
