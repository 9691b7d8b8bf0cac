package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/internal/store"
	"github.com/MKhiriev/go-vault-warden/internal/utils"
	"github.com/MKhiriev/go-vault-warden/models"
)

// eventRecorder persists notification events for later webhook delivery.
// Recording is best-effort and outside the control flow of the operation
// that produced the event: failures are logged and swallowed, never
// propagated to the caller.
type eventRecorder struct {
	events store.EventRepository
	uuid   *utils.UUIDGenerator
	logger *logger.Logger
}

func newEventRecorder(events store.EventRepository, logger *logger.Logger) *eventRecorder {
	return &eventRecorder{
		events: events,
		uuid:   utils.NewUUIDGenerator(),
		logger: logger,
	}
}

// record stores one event. payload is marshalled to JSON; a marshalling or
// storage failure only produces a log entry.
func (r *eventRecorder) record(ctx context.Context, vaultID models.Identity, kind models.EventKind, payload any) {
	log := logger.FromContext(ctx)

	body, err := json.Marshal(payload)
	if err != nil {
		log.Err(err).
			Str("func", "eventRecorder.record").
			Str("vault_id", string(vaultID)).
			Str("kind", string(kind)).
			Msg("failed to marshal event payload, event dropped")
		return
	}

	event := models.Event{
		EventID:   r.uuid.Generate(),
		VaultID:   vaultID,
		Kind:      kind,
		Payload:   body,
		CreatedAt: time.Now(),
	}

	if err := r.events.CreateEvent(ctx, event); err != nil {
		log.Err(err).
			Str("func", "eventRecorder.record").
			Str("vault_id", string(vaultID)).
			Str("kind", string(kind)).
			Msg("failed to persist event, event dropped")
	}
}
