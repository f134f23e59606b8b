package audit_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcampos/inventario-ledger/internal/domain/entity"
	"github.com/jdcampos/inventario-ledger/internal/infrastructure/audit"
	"github.com/jdcampos/inventario-ledger/pkg/logger"
)

func TestEmitter_DespachaComoLogEstructurado(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Env: "production", Level: "info"})
	emitter := audit.NewEmitter(log, 8)

	err := emitter.Emit(context.Background(), entity.AuditEvent{
		UserID:   "user-1",
		Action:   entity.AuditActionCreate,
		Model:    "Movement",
		ObjectID: "mov-1",
		Changes:  map[string]any{"quantity": 5},
		At:       time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	emitter.Close() // espera el drenado antes de leer el buffer

	out := buf.String()
	assert.Contains(t, out, `"model":"Movement"`)
	assert.Contains(t, out, `"object_id":"mov-1"`)
	assert.Contains(t, out, `"action":"create"`)
	assert.Contains(t, out, `"quantity":5`)
}

func TestEmitter_DespachaTodosLosEventosAntesDeCerrar(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Env: "production", Level: "info"})
	emitter := audit.NewEmitter(log, 32)

	for i := 0; i < 10; i++ {
		require.NoError(t, emitter.Emit(context.Background(), entity.AuditEvent{
			UserID: "user-1", Action: entity.AuditActionCreate, Model: "Movement", ObjectID: "mov-x",
		}))
	}
	emitter.Close()

	assert.Equal(t, 10, bytes.Count(buf.Bytes(), []byte(`"object_id":"mov-x"`)))
}

func TestEmitter_EmitDespuesDeCerrarFalla(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Env: "production", Level: "info"})
	emitter := audit.NewEmitter(log, 8)
	emitter.Close()

	err := emitter.Emit(context.Background(), entity.AuditEvent{Model: "Movement", ObjectID: "mov-1"})
	require.Error(t, err)
}

func TestEmitter_CloseEsIdempotente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Env: "production", Level: "info"})
	emitter := audit.NewEmitter(log, 8)
	emitter.Close()
	emitter.Close()
}
