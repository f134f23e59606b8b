// Package audit implementa el colaborador de auditoría del ledger: un
// emisor asíncrono que despacha los eventos fuera de la sección crítica.
// La persistencia del trail no es responsabilidad del ledger; este emisor
// los vuelca como log estructurado para que un consumidor externo los tome.
package audit

import (
	"context"
	"fmt"
	"sync"

	"github.com/jdcampos/inventario-ledger/internal/application/ledger"
	"github.com/jdcampos/inventario-ledger/internal/domain/entity"
	"github.com/jdcampos/inventario-ledger/pkg/logger"
)

var _ ledger.AuditEmitter = (*Emitter)(nil)

// Emitter despacha eventos de auditoría en una goroutine propia con canal
// bufereado. Emit nunca bloquea la transacción del ledger: si el buffer está
// lleno o el emisor está cerrado, retorna error y el caller lo descarta.
type Emitter struct {
	log    *logger.Logger
	events chan entity.AuditEvent

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewEmitter construye el emisor y arranca la goroutine de despacho.
func NewEmitter(log *logger.Logger, buffer int) *Emitter {
	if buffer < 1 {
		buffer = 64
	}
	e := &Emitter{
		log:    log,
		events: make(chan entity.AuditEvent, buffer),
		done:   make(chan struct{}),
	}
	go e.dispatch()
	return e
}

// Emit encola el evento sin bloquear.
func (e *Emitter) Emit(_ context.Context, event entity.AuditEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return fmt.Errorf("emisor de auditoría cerrado")
	}
	select {
	case e.events <- event:
		return nil
	default:
		return fmt.Errorf("buffer de auditoría lleno; evento %s/%s descartado", event.Model, event.ObjectID)
	}
}

// Close drena los eventos pendientes y detiene la goroutine de despacho.
func (e *Emitter) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.events)
	e.mu.Unlock()
	<-e.done
}

func (e *Emitter) dispatch() {
	defer close(e.done)
	for event := range e.events {
		e.log.Info().
			Str("audit", "event").
			Str("user_id", event.UserID).
			Str("action", event.Action).
			Str("model", event.Model).
			Str("object_id", event.ObjectID).
			Time("at", event.At).
			Interface("changes", event.Changes).
			Msg("evento de auditoría")
	}
}
