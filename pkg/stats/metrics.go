package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	log "github.com/sirupsen/logrus"
)

const namespace = "wallet"

var (
	// WalletsCreated counts the wallet profiles persisted, labeled by how they
	// were added (created, restored, registered).
	WalletsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallets_created_total",
			Help:      "Number of wallet profiles persisted.",
		},
		[]string{"origin"},
	)
	// DerivedAddresses counts every address derived from a seed phrase.
	DerivedAddresses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "derived_addresses_total",
			Help:      "Number of addresses derived from seed phrases.",
		},
	)
	// Transactions counts transaction status changes by type and status.
	Transactions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Number of transactions by type and status.",
		},
		[]string{"type", "status"},
	)
	// PriceRequests counts the calls to the price source by outcome (hit,
	// miss, fallback, mock).
	PriceRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_requests_total",
			Help:      "Number of price lookups by outcome.",
		},
		[]string{"kind", "outcome"},
	)
	// HTTPRequests counts the requests served by the wallet-sync API.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of wallet-sync API requests by action and status code.",
		},
		[]string{"action", "code"},
	)
)

func init() {
	prometheus.MustRegister(
		WalletsCreated, DerivedAddresses, Transactions, PriceRequests, HTTPRequests,
	)
}

// PrintWalletStatistics logs the totals of the wallet counters.
func PrintWalletStatistics() {
	log.WithFields(log.Fields{
		"wallets":      sumCounterVec(WalletsCreated),
		"addresses":    counterValue(DerivedAddresses),
		"transactions": sumCounterVec(Transactions),
		"requests":     sumCounterVec(HTTPRequests),
	}).Info("wallet statistics")
}

func counterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func sumCounterVec(vec *prometheus.CounterVec) float64 {
	ch := make(chan prometheus.Metric)
	go func() {
		vec.Collect(ch)
		close(ch)
	}()

	var sum float64
	for metric := range ch {
		m := &dto.Metric{}
		if err := metric.Write(m); err != nil {
			continue
		}
		sum += m.GetCounter().GetValue()
	}
	return sum
}
