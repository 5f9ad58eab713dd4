// Package events defines the outbound event contract of the ledger core.
// Delivery (WebSocket channels, fan-out, retries) is a collaborator concern;
// the core only announces state changes after their transaction committed.
package events

// Event kinds emitted by the core services.
const (
	KindPeriodCreated     = "period.created"
	KindPeriodClosed      = "period.closed"
	KindBatchCreated      = "batch.created"
	KindBatchClosed       = "batch.closed"
	KindChickOutCreated   = "chickout.created"
	KindChickOutCompleted = "chickout.completed"
	KindExpenseAdded      = "expense.added"
	KindIncidentReported  = "incident.reported"
	KindIncidentResolved  = "incident.resolved"
	KindForecastPriceSet  = "forecast.price_set"
	KindDailyReported     = "daily.reported"
)

// Publisher delivers events to interested clients.
// Publish is fire-and-forget: implementations must never block the caller
// or propagate delivery failures back into business logic.
type Publisher interface {
	Publish(topicHint, kind string, payload any)
}

// TopicPeriod builds the topic hint for period-scoped events.
func TopicPeriod(periodID string) string { return "period:" + periodID }

// TopicSection builds the topic hint for section-scoped events.
func TopicSection(sectionID string) string { return "section:" + sectionID }

// TopicBatch builds the topic hint for batch-scoped events.
func TopicBatch(batchID string) string { return "batch:" + batchID }

// Nop is a Publisher that discards everything. Useful in tests.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(string, string, any) {}

var _ Publisher = Nop{}
