package entity

import "time"

// Acciones de auditoría.
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// AuditEvent es el evento estructurado que el ledger emite hacia el
// colaborador de auditoría. El ledger no persiste auditoría: solo emite;
// una falla en la emisión jamás revierte la operación de negocio.
type AuditEvent struct {
	UserID   string
	Action   string
	Model    string // entidad afectada: Movement, Sale, Purchase
	ObjectID string
	Changes  map[string]any // antes/después y datos relevantes del cambio
	At       time.Time
}
