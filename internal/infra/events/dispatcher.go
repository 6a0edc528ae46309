// Package events delivers domain events to in-process subscribers and an
// optional broker. Delivery inside one Publish call is sequential, so the
// emission order of events from one aggregate is preserved end to end.
package events

import (
	"context"

	"github.com/condoflow/booking-service/internal/domain"
)

// Subscriber reacts to a single domain event. Handle errors are logged
// and never fail the publishing request: the booking is already
// committed by the time events are dispatched.
type Subscriber interface {
	Name() string
	Handle(ctx context.Context, event domain.Event) error
}

// Logger is the leveled logger consumed by the dispatcher.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics counts published events; satisfied by pkg/metrics.
type Metrics interface {
	EventPublished(routingKey string)
}

// Dispatcher fans domain events out to subscribers, one event at a time,
// one subscriber at a time.
type Dispatcher struct {
	subscribers []Subscriber
	logger      Logger
	metrics     Metrics
}

// NewDispatcher creates a dispatcher. metrics may be nil when metrics
// collection is disabled.
func NewDispatcher(logger Logger, metrics Metrics) *Dispatcher {
	return &Dispatcher{logger: logger, metrics: metrics}
}

// Subscribe registers a subscriber. Not safe to call after Publish has
// started; wiring happens once at startup.
func (d *Dispatcher) Subscribe(sub Subscriber) {
	d.subscribers = append(d.subscribers, sub)
}

// Publish delivers events in order to every subscriber. A failing
// subscriber is logged and skipped so one broken consumer cannot block
// cache invalidation or broker delivery for the rest.
func (d *Dispatcher) Publish(ctx context.Context, evts ...domain.Event) {
	for _, event := range evts {
		if d.metrics != nil {
			d.metrics.EventPublished(event.RoutingKey())
		}
		for _, sub := range d.subscribers {
			if err := sub.Handle(ctx, event); err != nil {
				d.logger.Error("dispatcher: subscriber %s failed on %s (reservation=%d): %v",
					sub.Name(), event.RoutingKey(), event.ReservationID(), err)
				continue
			}
		}
		d.logger.Info("dispatcher: published %s reservation=%d space=%d event=%s",
			event.RoutingKey(), event.ReservationID(), event.SpaceID(), event.EventID())
	}
}
