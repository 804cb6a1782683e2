// Package reports computes derived financial metrics over in-memory
// snapshots of documents. Every computation is pure and re-entrant:
// empty input yields zero-valued results, never an error.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/documents/expense"
	"tallerpro/internal/domain/documents/workorder"
)

// WorkOrderProfitability breaks one work order's billing down into its
// cost components.
type WorkOrderProfitability struct {
	WorkOrderID id.ID `json:"workOrderId"`

	Subtotal       types.Money `json:"subtotal"`
	PartsCost      types.Money `json:"partsCost"`
	CommissionCost types.Money `json:"commissionCost"`
	FactoringCost  types.Money `json:"factoringCost"`
	GrossProfit    types.Money `json:"grossProfit"`

	// MarginPercent is 0 when subtotal is 0
	MarginPercent decimal.Decimal `json:"marginPercent"`
}

// ProfitAndLoss is the P&L statement for a period.
type ProfitAndLoss struct {
	Period Period `json:"period"`

	TotalRevenue      types.Money `json:"totalRevenue"`
	COGS              types.Money `json:"cogs"`
	GrossProfit       types.Money `json:"grossProfit"`
	OperatingExpenses types.Money `json:"operatingExpenses"`
	NetProfit         types.Money `json:"netProfit"`

	ExpensesByCategory map[expense.Category]types.Money `json:"expensesByCategory"`
}

// ReceivableEntry is one unpaid invoice in the aging report.
type ReceivableEntry struct {
	InvoiceID  id.ID       `json:"invoiceId"`
	Number     string      `json:"number"`
	ClientName string      `json:"clientName"`
	Amount     types.Money `json:"amount"`
	DueDate    time.Time   `json:"dueDate"`

	// DaysOverdue is 0 for invoices not yet due
	DaysOverdue int `json:"daysOverdue"`
}

// ReceivablesReport lists unpaid invoices sorted by days overdue.
type ReceivablesReport struct {
	Entries []ReceivableEntry `json:"entries"`
	Total   types.Money       `json:"total"`
}

// PayableKind distinguishes who the debt is owed to.
type PayableKind string

const (
	PayableToSupplier PayableKind = "supplier"
	PayableToPartner  PayableKind = "partner"
)

// PayableEntry is the summed debt to one counterparty.
type PayableEntry struct {
	Kind           PayableKind `json:"kind"`
	CounterpartyID id.ID       `json:"counterpartyId"`
	Total          types.Money `json:"total"`
}

// PayablesReport groups outstanding credit spending by counterparty.
type PayablesReport struct {
	Entries []PayableEntry `json:"entries"`
	Total   types.Money    `json:"total"`
}

// CommissionEntry is one advisor's commission for the period.
type CommissionEntry struct {
	AdvisorID   id.ID  `json:"advisorId"`
	AdvisorName string `json:"advisorName"`

	CommissionRate types.Percent `json:"commissionRate"`

	// ProfitBase is the sum of positive item profits of qualifying
	// invoices
	ProfitBase types.Money `json:"profitBase"`
	Commission types.Money `json:"commission"`
}

// CommissionReport covers one half-month period.
type CommissionReport struct {
	Period  Period            `json:"period"`
	Entries []CommissionEntry `json:"entries"`
	Total   types.Money       `json:"total"`
}

// RetentionReport measures repeat business.
type RetentionReport struct {
	TotalClients     int `json:"totalClients"`
	ReturningClients int `json:"returningClients"`

	// RetentionRate as a whole percent, 0 when there are no clients
	RetentionRate decimal.Decimal `json:"retentionRate"`

	// CLV is average lifetime invoice total per client
	CLV types.Money `json:"clv"`
}

// StageMetric is the average dwell time in one stage.
type StageMetric struct {
	Stage        workorder.Stage `json:"stage"`
	AverageHours decimal.Decimal `json:"averageHours"`
	Orders       int             `json:"orders"`
}

// EfficiencyReport measures pipeline speed over invoiced work orders.
type EfficiencyReport struct {
	CompletedOrders   int             `json:"completedOrders"`
	AverageCycleHours decimal.Decimal `json:"averageCycleHours"`
	SlowestStage      workorder.Stage `json:"slowestStage,omitempty"`
	Stages            []StageMetric   `json:"stages"`
}

// PayrollEntry is one staff member's pay for the period.
type PayrollEntry struct {
	StaffID   id.ID  `json:"staffId"`
	StaffName string `json:"staffName"`

	Hours      decimal.Decimal `json:"hours"`
	HourlyRate types.Money     `json:"hourlyRate"`
	GrossPay   types.Money     `json:"grossPay"`
}

// PayrollReport covers one half-month period.
type PayrollReport struct {
	Period  Period         `json:"period"`
	Entries []PayrollEntry `json:"entries"`
	Total   types.Money    `json:"total"`
}
