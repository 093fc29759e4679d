package document

import (
	"context"
	"time"
)

// LifecycleEvent describes one accepted transition. Emitted to the sink
// after the store commit; delivery failures never roll back the transition.
type LifecycleEvent struct {
	DocumentID   string         `json:"document_id"`
	ClientID     string         `json:"client_id"`
	DocumentName string         `json:"document_name"`
	OldStatus    DocumentStatus `json:"old_status"`
	NewStatus    DocumentStatus `json:"new_status"`
	ActorName    string         `json:"actor_name"`
	Timestamp    time.Time      `json:"timestamp"`
}

// EventSink receives lifecycle events for user-facing alerts. The engine
// emits, it does not deliver.
type EventSink interface {
	Publish(ctx context.Context, event LifecycleEvent)
}
