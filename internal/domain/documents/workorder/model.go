// Package workorder provides the WorkOrder document (orden de trabajo).
// A work order tracks one vehicle visit through the shop floor via a
// Kanban-style stage pipeline with an append-only history log.
package workorder

import (
	"context"
	"time"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
)

// Stage is the fine-grained workflow position of a work order.
type Stage string

const (
	StageRecepcion            Stage = "recepcion"
	StageDiagnostico          Stage = "diagnostico"
	StagePendienteCotizacion  Stage = "pendiente_cotizacion"
	StageAtencionRequerida    Stage = "atencion_requerida"
	StageEsperandoAprobacion  Stage = "esperando_aprobacion"
	StageEnReparacion         Stage = "en_reparacion"
	StageControlCalidad       Stage = "control_calidad"
	StageListoEntrega         Stage = "listo_entrega"
	StageEntregado            Stage = "entregado"
	StageCancelado            Stage = "cancelado"
)

// canonicalOrder is the forward path of the pipeline. AtencionRequerida is
// the diagnostic branch alternative to PendienteCotizacion and occupies the
// same position; Cancelado sits outside the order.
var canonicalOrder = []Stage{
	StageRecepcion,
	StageDiagnostico,
	StagePendienteCotizacion,
	StageEsperandoAprobacion,
	StageEnReparacion,
	StageControlCalidad,
	StageListoEntrega,
	StageEntregado,
}

// stageIndex returns the position of a stage in the canonical order,
// or -1 for Cancelado. AtencionRequerida shares the position of
// PendienteCotizacion.
func stageIndex(s Stage) int {
	if s == StageAtencionRequerida {
		s = StagePendienteCotizacion
	}
	for i, stage := range canonicalOrder {
		if stage == s {
			return i
		}
	}
	return -1
}

// IsTerminal returns true for stages that allow no further transitions.
func (s Stage) IsTerminal() bool {
	return s == StageEntregado || s == StageCancelado
}

// Label returns the Spanish display name of the stage.
func (s Stage) Label() string {
	switch s {
	case StageRecepcion:
		return "Recepción"
	case StageDiagnostico:
		return "Diagnóstico"
	case StagePendienteCotizacion:
		return "Pendiente Cotización"
	case StageAtencionRequerida:
		return "Atención Requerida"
	case StageEsperandoAprobacion:
		return "Esperando Aprobación"
	case StageEnReparacion:
		return "En Reparación"
	case StageControlCalidad:
		return "Control de Calidad"
	case StageListoEntrega:
		return "Listo para Entrega"
	case StageEntregado:
		return "Entregado"
	case StageCancelado:
		return "Cancelado"
	}
	return string(s)
}

// Status is the coarse billing/lifecycle state of a work order.
type Status string

const (
	StatusProgramado      Status = "programado"
	StatusEnProceso       Status = "en_proceso"
	StatusEsperaRepuestos Status = "espera_repuestos"
	StatusListoEntrega    Status = "listo_entrega"
	StatusFacturado       Status = "facturado"
	StatusCancelado       Status = "cancelado"
)

// statusForStage maps a stage to its default status. Facturado and
// EsperaRepuestos are set by invoicing and parts-wait flows, never by
// stage transitions.
func statusForStage(s Stage) Status {
	switch s {
	case StageRecepcion:
		return StatusProgramado
	case StageListoEntrega, StageEntregado:
		return StatusListoEntrega
	case StageCancelado:
		return StatusCancelado
	default:
		return StatusEnProceso
	}
}

// HistoryEntry is one immutable record of a stage transition.
// Entries are only ever appended, never edited or removed.
type HistoryEntry struct {
	Stage Stage     `db:"stage" json:"stage"`
	Date  time.Time `db:"date" json:"date"`
	User  string    `db:"user_id" json:"user"`
	Notes string    `db:"notes" json:"notes,omitempty"`
}

// WorkOrder represents one repair job for one vehicle at one branch.
//
// The current stage is derived from the history tail: history is the single
// source of truth, the stage column persisted by the repository is a query
// convenience only.
type WorkOrder struct {
	entity.Document

	// Client and vehicle references with denormalized snapshots
	// (the printed order must survive later catalog edits)
	ClientID     id.ID  `db:"client_id" json:"clientId"`
	ClientName   string `db:"client_name" json:"clientName"`
	ClientPhone  string `db:"client_phone" json:"clientPhone,omitempty"`
	VehicleID    id.ID  `db:"vehicle_id" json:"vehicleId"`
	VehiclePlate string `db:"vehicle_plate" json:"vehiclePlate"`
	VehicleDesc  string `db:"vehicle_desc" json:"vehicleDesc,omitempty"`

	// Mileage at reception (km)
	Mileage int `db:"mileage" json:"mileage"`

	// ReportedIssue is the client's complaint at reception
	ReportedIssue string `db:"reported_issue" json:"reportedIssue"`

	// Diagnosis filled by the technician
	Diagnosis string `db:"diagnosis" json:"diagnosis,omitempty"`

	// AdvisorID is the service advisor who owns the order (earns commission)
	AdvisorID id.ID `db:"advisor_id" json:"advisorId"`

	// TechnicianID is the assigned technician (optional until assignment)
	TechnicianID *id.ID `db:"technician_id" json:"technicianId,omitempty"`

	// Status is the coarse lifecycle state
	Status Status `db:"status" json:"status"`

	// History is the append-only transition log
	History []HistoryEntry `db:"-" json:"history"`

	// LinkedQuoteIDs are the quotes drafted for this order
	// (not necessarily all invoiced)
	LinkedQuoteIDs []id.ID `db:"-" json:"linkedQuoteIds"`

	// CancelReason is set when the order is cancelled
	CancelReason string `db:"cancel_reason" json:"cancelReason,omitempty"`
}

// NewWorkOrder creates a work order at the Recepción stage.
func NewWorkOrder(locationID, clientID, vehicleID, advisorID id.ID, user string, now time.Time) *WorkOrder {
	wo := &WorkOrder{
		Document:  entity.NewDocument(locationID),
		ClientID:  clientID,
		VehicleID: vehicleID,
		AdvisorID: advisorID,
		Status:    StatusProgramado,
	}
	wo.Date = now
	wo.History = []HistoryEntry{{
		Stage: StageRecepcion,
		Date:  now,
		User:  user,
		Notes: "Ingreso del vehículo",
	}}
	return wo
}

// Stage returns the current stage, derived from the history tail.
func (w *WorkOrder) Stage() Stage {
	if len(w.History) == 0 {
		return StageRecepcion
	}
	return w.History[len(w.History)-1].Stage
}

// appendHistory records a transition and syncs the coarse status.
func (w *WorkOrder) appendHistory(stage Stage, user, notes string, now time.Time) {
	w.History = append(w.History, HistoryEntry{
		Stage: stage,
		Date:  now,
		User:  user,
		Notes: notes,
	})
	// Facturado survives stage changes (billing state outranks workflow)
	if w.Status != StatusFacturado || stage == StageCancelado {
		w.Status = statusForStage(stage)
	}
	w.Touch()
}

// Advance moves the order to the next stage in the canonical order.
//
// expected is the stage the caller believes the order is in; a mismatch
// means the caller is stale and the call fails without touching the order.
func (w *WorkOrder) Advance(expected Stage, user, notes string, now time.Time) error {
	current := w.Stage()

	if current.IsTerminal() {
		return apperror.NewInvalidTransition(current.Label(), "").
			WithDetail("reason", "order is in a terminal stage")
	}
	if expected != current {
		return apperror.NewStaleStage(expected.Label(), current.Label())
	}

	idx := stageIndex(current)
	if idx < 0 || idx+1 >= len(canonicalOrder) {
		return apperror.NewInvalidTransition(current.Label(), "")
	}

	w.appendHistory(canonicalOrder[idx+1], user, notes, now)
	return nil
}

// Retreat moves the order one stage back. Not permitted once the order is
// delivered or invoiced.
func (w *WorkOrder) Retreat(expected Stage, user, notes string, now time.Time) error {
	current := w.Stage()

	if current.IsTerminal() {
		return apperror.NewInvalidTransition(current.Label(), "").
			WithDetail("reason", "order is in a terminal stage")
	}
	if w.Status == StatusFacturado {
		return apperror.NewAlreadyInvoiced(w.ID.String())
	}
	if expected != current {
		return apperror.NewStaleStage(expected.Label(), current.Label())
	}

	idx := stageIndex(current)
	if idx <= 0 {
		return apperror.NewInvalidTransition(current.Label(), "").
			WithDetail("reason", "already at the first stage")
	}

	w.appendHistory(canonicalOrder[idx-1], user, notes, now)
	return nil
}

// RequireAttention branches the order from Diagnóstico to Atención
// Requerida (issues found that need client contact before quoting).
func (w *WorkOrder) RequireAttention(expected Stage, user, notes string, now time.Time) error {
	current := w.Stage()

	if expected != current {
		return apperror.NewStaleStage(expected.Label(), current.Label())
	}
	if current != StageDiagnostico {
		return apperror.NewInvalidTransition(current.Label(), StageAtencionRequerida.Label())
	}

	w.appendHistory(StageAtencionRequerida, user, notes, now)
	return nil
}

// Cancel transitions the order to Cancelado from any non-terminal stage.
// Invoiced orders cannot be cancelled.
func (w *WorkOrder) Cancel(reason, user string, now time.Time) error {
	current := w.Stage()

	if w.Status == StatusFacturado {
		return apperror.NewAlreadyInvoiced(w.ID.String())
	}
	if current.IsTerminal() {
		return apperror.NewInvalidTransition(current.Label(), StageCancelado.Label()).
			WithDetail("reason", "order is in a terminal stage")
	}

	w.CancelReason = reason
	w.appendHistory(StageCancelado, user, reason, now)
	return nil
}

// AssignTechnician sets the assigned technician. Pure field update, the
// stage does not change.
func (w *WorkOrder) AssignTechnician(staffID id.ID) error {
	if w.Stage().IsTerminal() {
		return apperror.NewInvalidTransition(w.Stage().Label(), "").
			WithDetail("reason", "order is in a terminal stage")
	}
	w.TechnicianID = &staffID
	w.Touch()
	return nil
}

// SetWaitingParts flags the order as waiting for spare parts without
// moving the stage.
func (w *WorkOrder) SetWaitingParts(waiting bool) {
	if w.Status == StatusFacturado || w.Status == StatusCancelado {
		return
	}
	if waiting {
		w.Status = StatusEsperaRepuestos
	} else {
		w.Status = statusForStage(w.Stage())
	}
	w.Touch()
}

// MarkInvoiced sets the billing status. Called when an invoice is issued
// for this order.
func (w *WorkOrder) MarkInvoiced() error {
	if w.Status == StatusCancelado {
		return apperror.NewInvalidTransition(StageCancelado.Label(), "").
			WithDetail("reason", "cancelled order cannot be invoiced")
	}
	w.Status = StatusFacturado
	w.Touch()
	return nil
}

// LinkQuote attaches a quote to the order (idempotent).
func (w *WorkOrder) LinkQuote(quoteID id.ID) {
	for _, qid := range w.LinkedQuoteIDs {
		if qid == quoteID {
			return
		}
	}
	w.LinkedQuoteIDs = append(w.LinkedQuoteIDs, quoteID)
	w.Touch()
}

// Validate implements entity.Validatable.
func (w *WorkOrder) Validate(ctx context.Context) error {
	if err := w.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(w.ClientID) {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}
	if id.IsNil(w.VehicleID) {
		return apperror.NewValidation("vehicle is required").
			WithDetail("field", "vehicleId")
	}
	if id.IsNil(w.AdvisorID) {
		return apperror.NewValidation("advisor is required").
			WithDetail("field", "advisorId")
	}
	if len(w.History) == 0 {
		return apperror.NewValidation("history must contain the reception entry").
			WithDetail("field", "history")
	}

	// History timestamps must be non-decreasing
	for i := 1; i < len(w.History); i++ {
		if w.History[i].Date.Before(w.History[i-1].Date) {
			return apperror.NewValidation("history is not in chronological order").
				WithDetail("field", "history").
				WithDetail("entry", i)
		}
	}

	// Stage/status consistency
	stage := w.Stage()
	switch {
	case stage == StageCancelado && w.Status != StatusCancelado:
		return apperror.NewValidation("cancelled stage requires cancelled status").
			WithDetail("stage", string(stage)).
			WithDetail("status", string(w.Status))
	case stage == StageEntregado && w.Status != StatusListoEntrega && w.Status != StatusFacturado:
		return apperror.NewValidation("delivered stage requires delivered or invoiced status").
			WithDetail("stage", string(stage)).
			WithDetail("status", string(w.Status))
	}

	return nil
}

// GetDocumentType returns the document type name.
func (w *WorkOrder) GetDocumentType() string {
	return "WorkOrder"
}
