package ports

const (
	AnyTopic         = "*"
	UnspecifiedTopic = ""
)

// Topics notified to webhooks, one for every transaction status.
const (
	TopicTransactionPending   = "TRANSACTION_PENDING"
	TopicTransactionCompleted = "TRANSACTION_COMPLETED"
	TopicTransactionFailed    = "TRANSACTION_FAILED"
)

type Subscription interface {
	Topic() string
	Id() string
	IsSecured() bool
	NotifyAt() string
}

// PubSub defines the methods of a pubsub service whose clients are notified
// by POSTing the published messages to their endpoints.
type PubSub interface {
	// Subscribe adds a new subscription for the requested topic.
	Subscribe(topic, endpoint, secret string) (string, error)
	// Unsubscribe removes the subscription with the given id.
	Unsubscribe(id string) error
	// ListSubscriptionsForTopic returns the info of all clients subscribed for
	// a certain topic, those for AnyTopic included.
	ListSubscriptionsForTopic(topic string) []Subscription
	// Publish publishes a message for a certain topic. All clients subscribed
	// for such topic will receive the message.
	Publish(topic string, message string) error
	// Close should be used to gracefully close the connection with the store.
	Close() error
}
