package httpinterface

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-wallet/pkg/walletsync"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPongTimeout  = 60 * time.Second
	wsPingInterval = (wsPongTimeout * 9) / 10
	wsAction       = "ws_transactions"
)

// streamTransactions pushes every event about the transactions of the user
// until the client goes away or the transaction service is closed.
func (h *handler) streamTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, wsAction, errInvalidAction)
		return
	}
	userID := r.URL.Query().Get("user_id")
	if len(userID) <= 0 {
		h.writeError(w, wsAction, ErrNullUserID)
		return
	}
	if _, err := h.walletSvc.GetUserByID(r.Context(), userID); err != nil {
		h.writeError(w, wsAction, err)
		return
	}

	// Subscribe before the handshake so that no event published after it
	// is lost.
	events, unsubscribe := h.transactionSvc.Subscribe(userID)
	defer unsubscribe()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Debug("failed to upgrade websocket connection")
		return
	}
	defer conn.Close()

	logger := log.WithField("user_id", userID)
	logger.Debug("transaction stream opened")
	defer logger.Debug("transaction stream closed")

	// Reads are only needed to process control frames and detect the
	// client going away.
	done := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case event, ok := <-events:
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if !ok {
				conn.WriteMessage(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				)
				return
			}
			msg := walletsync.TransactionEvent{
				Transaction: toTransactionDTO(event.Transaction),
			}
			if err := conn.WriteJSON(msg); err != nil {
				logger.WithError(err).Debug("failed to push transaction event")
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
