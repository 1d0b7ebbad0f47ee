package application

import (
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-wallet/internal/core/domain"
)

const (
	subscriberBufferSize = 64
	// allUsers is the subscription key receiving the events of every user.
	allUsers = "*"
)

// txBroker fans out transaction events to the subscribers of each user.
type txBroker struct {
	lock   sync.RWMutex
	subs   map[string]map[int]chan TransactionEvent
	nextID int
	closed bool
}

func newTxBroker() *txBroker {
	return &txBroker{
		subs: make(map[string]map[int]chan TransactionEvent),
	}
}

func (b *txBroker) subscribe(userID string) (<-chan TransactionEvent, func()) {
	b.lock.Lock()
	defer b.lock.Unlock()

	ch := make(chan TransactionEvent, subscriberBufferSize)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	if _, ok := b.subs[userID]; !ok {
		b.subs[userID] = make(map[int]chan TransactionEvent)
	}
	b.subs[userID][id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.lock.Lock()
			defer b.lock.Unlock()

			subs, ok := b.subs[userID]
			if !ok {
				return
			}
			if c, ok := subs[id]; ok {
				delete(subs, id)
				close(c)
			}
			if len(subs) <= 0 {
				delete(b.subs, userID)
			}
		})
	}
	return ch, unsubscribe
}

func (b *txBroker) publish(tx domain.Transaction) {
	b.lock.RLock()
	defer b.lock.RUnlock()

	if b.closed {
		return
	}

	event := TransactionEvent{tx}
	for _, key := range []string{tx.UserID, allUsers} {
		for _, ch := range b.subs[key] {
			select {
			case ch <- event:
			default:
				log.WithField("tx_id", tx.ID).Debug("subscriber is lagging, event dropped")
			}
		}
	}
}

func (b *txBroker) close() {
	b.lock.Lock()
	defer b.lock.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for userID, subs := range b.subs {
		for id, ch := range subs {
			close(ch)
			delete(subs, id)
		}
		delete(b.subs, userID)
	}
}
