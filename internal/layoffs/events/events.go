package events

import (
	"time"

	"github.com/gartstein/layofflens/internal/layoffs/models"
)

type EventType string

const (
	ImportStarted     EventType = "import_started"
	ImportBatchFailed EventType = "import_batch_failed"
	ImportCompleted   EventType = "import_completed"
	LayoffCreated     EventType = "layoff_created"
)

type Event struct {
	Type       EventType            `json:"type"`
	Layoff     *models.LayoffRecord `json:"layoff,omitempty"`
	Import     *models.ImportReport `json:"import,omitempty"`
	Batch      *models.BatchError   `json:"batch,omitempty"`
	OccurredAt time.Time            `json:"occurredAt"`
}

// Key partitions events: everything from one import shares the import id.
func (e Event) Key() string {
	switch {
	case e.Import != nil:
		return e.Import.ImportID.String()
	case e.Layoff != nil:
		return e.Layoff.ID.String()
	default:
		return string(e.Type)
	}
}

// Publisher accepts events without blocking the caller.
type Publisher interface {
	Publish(event Event)
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
