package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Event struct {
	RestaurantID  uint
	Actor         string
	Action        string
	Entity        string
	EntityID      *uint
	CorrelationID string
	Metadata      any
	OccurredAt    time.Time
}

// Sink recebe os eventos já fora do caminho da requisição.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sinks  []Sink
	queue  chan Event
	logger zerolog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(logger zerolog.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks:  sinks,
		queue:  make(chan Event, 100), // buffer seguro
		logger: logger,
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Write(ctx, ev); err != nil {
				d.logger.Error().
					Err(err).
					Str("action", ev.Action).
					Uint("restaurant_id", ev.RestaurantID).
					Msg("audit sink failed")
			}
			cancel()
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.logger.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close para de aceitar eventos e espera a fila esvaziar.
// Dispatch depois de Close causa panic.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.closeOnce.Do(func() { close(d.queue) })

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
