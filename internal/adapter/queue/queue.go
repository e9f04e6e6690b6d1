package queue

// Lifecycle event subjects. Subscribers may use the wildcard forms to
// receive every event of a family.
const (
	TopicReservationCreated   = "reservation.created"
	TopicReservationConfirmed = "reservation.confirmed"
	TopicReservationCancelled = "reservation.cancelled"

	TopicSessionStarted     = "session.started"
	TopicSessionCompleted   = "session.completed"
	TopicSessionInterrupted = "session.interrupted"

	TopicReservationAll = "reservation.*"
	TopicSessionAll     = "session.*"
)

// MessageQueue is the transport for lifecycle events. Payloads are the
// JSON-encoded entity the event is about. Implementations must be safe
// for concurrent publishers and must support the wildcard subjects above
// on Subscribe.
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}
