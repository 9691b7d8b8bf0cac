package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-warden/internal/config"
	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/internal/store"
	"github.com/MKhiriev/go-vault-warden/internal/utils"
	"github.com/MKhiriev/go-vault-warden/models"
)

const defaultDispatchBatchSize = 100

// Dispatcher is the background worker that delivers queued notification
// events to the configured webhook.
//
// Delivery is best-effort and fully outside the request control flow: an
// event that cannot be delivered stays queued and is retried on the next
// cycle. Events are marked dispatched only after the webhook accepted them,
// so a crash between delivery and marking re-delivers rather than loses.
type Dispatcher struct {
	events store.EventRepository
	client *utils.HTTPClient

	interval   time.Duration
	webhookURL string
	batchSize  int

	logger *logger.Logger
}

// NewDispatcher constructs a [Dispatcher] from the workers configuration.
// A zero dispatch interval or an empty webhook URL disables the worker.
func NewDispatcher(events store.EventRepository, cfg config.Workers, logger *logger.Logger) *Dispatcher {
	batchSize := cfg.DispatchBatchSize
	if batchSize <= 0 {
		batchSize = defaultDispatchBatchSize
	}

	return &Dispatcher{
		events:     events,
		client:     utils.NewHTTPClient(),
		interval:   cfg.DispatchInterval,
		webhookURL: cfg.WebhookURL,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// Run implements [Worker]. It blocks, scanning for undispatched events on
// every tick.
func (d *Dispatcher) Run() {
	if d.interval <= 0 || d.webhookURL == "" {
		d.logger.Info().Msg("event dispatcher disabled")
		return
	}

	d.logger.Info().
		Dur("interval", d.interval).
		Str("webhook_url", d.webhookURL).
		Msg("event dispatcher started")

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for range ticker.C {
		d.dispatchOnce(context.Background())
	}
}

// dispatchOnce delivers one batch of queued events. Failed deliveries are
// left queued for the next cycle.
func (d *Dispatcher) dispatchOnce(ctx context.Context) {
	events, err := d.events.GetUndispatched(ctx, d.batchSize)
	if err != nil {
		d.logger.Err(err).Str("func", "Dispatcher.dispatchOnce").Msg("error fetching undispatched events")
		return
	}
	if len(events) == 0 {
		return
	}

	var delivered []string
	for _, event := range events {
		if err := d.deliver(ctx, event); err != nil {
			d.logger.Err(err).
				Str("func", "Dispatcher.dispatchOnce").
				Str("event_id", event.EventID).
				Str("kind", string(event.Kind)).
				Msg("event delivery failed, will retry next cycle")
			continue
		}
		delivered = append(delivered, event.EventID)
	}

	if len(delivered) == 0 {
		return
	}

	if err := d.events.MarkDispatched(ctx, delivered, time.Now()); err != nil {
		// not fatal: the events will be re-delivered on the next cycle
		d.logger.Err(err).Str("func", "Dispatcher.dispatchOnce").Msg("error marking events dispatched")
		return
	}

	d.logger.Debug().Int("count", len(delivered)).Msg("events dispatched")
}

func (d *Dispatcher) deliver(ctx context.Context, event models.Event) error {
	response, err := d.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(d.webhookURL)
	if err != nil {
		return err
	}
	if response.IsError() {
		return errWebhookRejected
	}

	return nil
}
