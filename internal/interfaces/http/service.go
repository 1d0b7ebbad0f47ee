package httpinterface

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-wallet/internal/core/application"
	"github.com/tdex-network/tdex-wallet/internal/interfaces"
)

const shutdownTimeout = 5 * time.Second

var (
	// ErrNullAddress ...
	ErrNullAddress = errors.New("listening address must not be null")
	// ErrNullService is returned if any of the application services is
	// missing.
	ErrNullService = errors.New("application services must not be null")
)

type ServiceOpts struct {
	Address string

	WalletSvc      application.WalletService
	BalanceSvc     application.BalanceService
	TransactionSvc application.TransactionService
	PriceSvc       application.PriceService
}

func (o ServiceOpts) validate() error {
	if len(o.Address) <= 0 {
		return ErrNullAddress
	}
	return o.validateServices()
}

func (o ServiceOpts) validateServices() error {
	if o.WalletSvc == nil || o.BalanceSvc == nil ||
		o.TransactionSvc == nil || o.PriceSvc == nil {
		return ErrNullService
	}
	return nil
}

// OperatorOpts configures the operator interface. Token is optional, when
// empty requests are not authenticated.
type OperatorOpts struct {
	Address string
	Token   string

	WebhookSvc application.WebhookService
}

func (o OperatorOpts) validate() error {
	if len(o.Address) <= 0 {
		return ErrNullAddress
	}
	if o.WebhookSvc == nil {
		return ErrNullService
	}
	return nil
}

type service struct {
	name    string
	address string
	server  *http.Server
}

// NewService returns the wallet-sync interface listening on opts.Address.
func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	handler, err := NewHandler(opts)
	if err != nil {
		return nil, err
	}

	return &service{
		name:    "wallet-sync",
		address: opts.Address,
		server:  &http.Server{Handler: handler},
	}, nil
}

// NewOperatorService returns the operator interface listening on
// opts.Address.
func NewOperatorService(opts OperatorOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	handler, err := NewOperatorHandler(opts)
	if err != nil {
		return nil, err
	}

	if len(opts.Token) <= 0 {
		log.Warn("operator interface is not authenticated")
	}

	return &service{
		name:    "operator",
		address: opts.Address,
		server:  &http.Server{Handler: handler},
	}, nil
}

func (s *service) Start() error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	go func() {
		if err := s.server.Serve(lis); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Warnf("%s interface stopped unexpectedly", s.name)
		}
	}()

	log.Infof("%s interface is listening on %s", s.name, lis.Addr())
	return nil
}

func (s *service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warnf("failed to gracefully stop %s interface", s.name)
	}
	log.Debugf("stopped %s interface", s.name)
}
