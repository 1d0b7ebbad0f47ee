package httpinterface

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-wallet/internal/core/application"
	"github.com/tdex-network/tdex-wallet/pkg/stats"
	"github.com/tdex-network/tdex-wallet/pkg/walletsync"
)

const (
	healthzPath         = "/healthz"
	wsTransactionsPath  = "/ws/transactions"
	maxRequestBodyBytes = 1 << 20
	unknownActionLabel  = "unknown"
	corsMaxAge          = 86400
)

var (
	corsAllowedMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsAllowedHeaders = []string{"Content-Type", "X-User-Id"}
)

type actionFunc func(
	ctx context.Context, req walletsync.Request,
) (interface{}, error)

type handler struct {
	walletSvc      application.WalletService
	balanceSvc     application.BalanceService
	transactionSvc application.TransactionService
	priceSvc       application.PriceService
	webhookSvc     application.WebhookService

	upgrader websocket.Upgrader
	actions  map[string]actionFunc
	withCORS bool
	// token, if set, must be sent as bearer with every action
	token string
}

// NewHandler returns the wallet-sync API handler:
//   - POST / dispatches on the action field of the JSON body;
//   - GET /healthz;
//   - GET /ws/transactions?user_id= streams the transaction events of a user.
func NewHandler(opts ServiceOpts) (http.Handler, error) {
	if err := opts.validateServices(); err != nil {
		return nil, err
	}

	h := &handler{
		walletSvc:      opts.WalletSvc,
		balanceSvc:     opts.BalanceSvc,
		transactionSvc: opts.TransactionSvc,
		priceSvc:       opts.PriceSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		withCORS: true,
	}
	h.actions = map[string]actionFunc{
		walletsync.ActionCreateUser:      h.createUser,
		walletsync.ActionGetUser:         h.getUser,
		walletsync.ActionGetBalances:     h.getBalances,
		walletsync.ActionUpdateBalance:   h.updateBalance,
		walletsync.ActionSaveTransaction: h.saveTransaction,
		walletsync.ActionGetTransactions: h.getTransactions,
		walletsync.ActionRestoreUser:     h.restoreUser,
		walletsync.ActionDeriveAddresses: h.deriveAddresses,
		walletsync.ActionRevealSeed:      h.revealSeed,
		walletsync.ActionGetPrices:       h.getPrices,
		walletsync.ActionGetPriceHistory: h.getPriceHistory,
		walletsync.ActionGetPortfolio:    h.getPortfolio,
		walletsync.ActionSend:            h.send,
		walletsync.ActionSwap:            h.swap,
		walletsync.ActionTopUp:           h.topUp,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", h.root)
	mux.HandleFunc(healthzPath, h.healthz)
	mux.HandleFunc(wsTransactionsPath, h.streamTransactions)

	// Browser preflights are answered by cors, plain OPTIONS requests by
	// the root handler.
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: corsAllowedMethods,
		AllowedHeaders: corsAllowedHeaders,
		MaxAge:         corsMaxAge,
	}).Handler(mux), nil
}

// NewOperatorHandler returns the handler of the operator interface, that
// serves the webhook management actions with the same POST / dispatch of
// the wallet-sync API. If opts.Token is set, every request must carry it
// as bearer token.
func NewOperatorHandler(opts OperatorOpts) (http.Handler, error) {
	if opts.WebhookSvc == nil {
		return nil, ErrNullService
	}

	h := &handler{
		webhookSvc: opts.WebhookSvc,
		token:      opts.Token,
	}
	h.actions = map[string]actionFunc{
		walletsync.ActionAddWebhook:    h.addWebhook,
		walletsync.ActionRemoveWebhook: h.removeWebhook,
		walletsync.ActionListWebhooks:  h.listWebhooks,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", h.root)
	mux.HandleFunc(healthzPath, h.healthz)
	return mux, nil
}

func (h *handler) root(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		if h.withCORS {
			writePreflight(w)
			return
		}
		h.writeError(w, unknownActionLabel, errInvalidAction)
		return
	case http.MethodPost:
	default:
		h.writeError(w, unknownActionLabel, errInvalidAction)
		return
	}

	if !h.isAuthorized(r) {
		h.writeError(w, unknownActionLabel, ErrInvalidOperatorToken)
		return
	}

	req := walletsync.Request{}
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		log.WithError(err).Debug("malformed request body")
		h.writeJSON(
			w, unknownActionLabel, http.StatusBadRequest,
			walletsync.ErrorResponse{Error: msgInvalidRequest},
		)
		return
	}

	action, ok := h.actions[req.Action]
	if !ok {
		h.writeError(w, unknownActionLabel, errInvalidAction)
		return
	}

	resp, err := action(r.Context(), req)
	if err != nil {
		h.writeError(w, req.Action, err)
		return
	}
	h.writeJSON(w, req.Action, http.StatusOK, resp)
}

func (h *handler) isAuthorized(r *http.Request) bool {
	if len(h.token) <= 0 {
		return true
	}
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) == 1
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, "healthz", http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) writeError(w http.ResponseWriter, action string, err error) {
	status, msg := httpError(err)
	entry := log.WithError(err).WithField("action", action)
	if status >= http.StatusInternalServerError {
		entry.Warn("failed to serve request")
	} else {
		entry.Debug("rejected request")
	}
	h.writeJSON(w, action, status, walletsync.ErrorResponse{Error: msg})
}

func (h *handler) writeJSON(
	w http.ResponseWriter, action string, status int, body interface{},
) {
	stats.HTTPRequests.WithLabelValues(action, strconv.Itoa(status)).Inc()

	w.Header().Set("Content-Type", "application/json")
	if h.withCORS {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

func writePreflight(w http.ResponseWriter) {
	headers := w.Header()
	headers.Set("Access-Control-Allow-Origin", "*")
	headers.Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
	headers.Set("Access-Control-Allow-Headers", "Content-Type, X-User-Id")
	headers.Set("Access-Control-Max-Age", strconv.Itoa(corsMaxAge))
	w.WriteHeader(http.StatusOK)
}
