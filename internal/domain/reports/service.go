package reports

import (
	"context"
	"time"

	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/catalogs/staff"
)

// Service fetches snapshots and runs the pure aggregations. The
// location scope comes from the request context unless a report is
// explicitly company-wide.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) scope(ctx context.Context) *id.ID {
	req := appctx.GetRequest(ctx)
	if id.IsNil(req.LocationID) {
		return nil
	}
	locationID := req.LocationID
	return &locationID
}

// Profitability reports cost breakdowns per work order in the range.
func (s *Service) Profitability(ctx context.Context, from, to *time.Time) ([]WorkOrderProfitability, error) {
	invoices, err := s.repo.Invoices(ctx, s.scope(ctx), from, to)
	if err != nil {
		return nil, err
	}
	return ProfitabilityByWorkOrder(invoices), nil
}

// PnL builds the profit and loss statement for the period.
func (s *Service) PnL(ctx context.Context, period Period) (ProfitAndLoss, error) {
	locationID := s.scope(ctx)

	invoices, err := s.repo.Invoices(ctx, locationID, &period.From, &period.To)
	if err != nil {
		return ProfitAndLoss{}, err
	}
	expenses, err := s.repo.OperatingExpenses(ctx, locationID, &period.From, &period.To)
	if err != nil {
		return ProfitAndLoss{}, err
	}
	return ComputePnL(period, invoices, expenses), nil
}

// Receivable lists unpaid invoices aged against today.
func (s *Service) Receivable(ctx context.Context) (ReceivablesReport, error) {
	req := appctx.GetRequest(ctx)

	invoices, err := s.repo.Invoices(ctx, s.scope(ctx), nil, nil)
	if err != nil {
		return ReceivablesReport{}, err
	}
	return Receivables(req.Clock(), invoices), nil
}

// Payable groups outstanding credit spending by counterparty.
func (s *Service) Payable(ctx context.Context, from, to *time.Time) (PayablesReport, error) {
	locationID := s.scope(ctx)

	purchases, err := s.repo.Purchases(ctx, locationID, from, to)
	if err != nil {
		return PayablesReport{}, err
	}
	transactions, err := s.repo.PettyCashTransactions(ctx, locationID, nil, from, to)
	if err != nil {
		return PayablesReport{}, err
	}
	return Payables(purchases, transactions), nil
}

// Commissions computes advisor commissions for the half-month covering
// today.
func (s *Service) Commissions(ctx context.Context) (CommissionReport, error) {
	req := appctx.GetRequest(ctx)
	period := HalfMonth(req.Clock())

	role := staff.RoleAdvisor
	advisors, err := s.repo.StaffMembers(ctx, s.scope(ctx), &role)
	if err != nil {
		return CommissionReport{}, err
	}
	invoices, err := s.repo.Invoices(ctx, s.scope(ctx), &period.From, &period.To)
	if err != nil {
		return CommissionReport{}, err
	}
	return AdvisorCommissions(period, advisors, invoices), nil
}

// ClientRetention measures repeat business company-wide.
func (s *Service) ClientRetention(ctx context.Context) (RetentionReport, error) {
	totalClients, err := s.repo.ClientCount(ctx)
	if err != nil {
		return RetentionReport{}, err
	}
	invoices, err := s.repo.Invoices(ctx, nil, nil, nil)
	if err != nil {
		return RetentionReport{}, err
	}
	return Retention(totalClients, invoices), nil
}

// OperationalEfficiency measures stage dwell times in the range.
func (s *Service) OperationalEfficiency(ctx context.Context, from, to *time.Time) (EfficiencyReport, error) {
	locationID := s.scope(ctx)

	workOrders, err := s.repo.WorkOrdersWithHistory(ctx, locationID, from, to)
	if err != nil {
		return EfficiencyReport{}, err
	}
	invoices, err := s.repo.Invoices(ctx, locationID, from, to)
	if err != nil {
		return EfficiencyReport{}, err
	}
	return Efficiency(workOrders, invoices), nil
}

// Balance derives one account's balance from its transaction history.
func (s *Service) Balance(ctx context.Context, accountID id.ID) (types.Money, error) {
	transactions, err := s.repo.PettyCashTransactions(ctx, nil, &accountID, nil, nil)
	if err != nil {
		return types.Zero(), err
	}
	expenses, err := s.repo.OperatingExpenses(ctx, nil, nil, nil)
	if err != nil {
		return types.Zero(), err
	}
	return AccountBalance(accountID, transactions, expenses), nil
}

// PayrollSummary computes gross pay for the half-month covering today.
func (s *Service) PayrollSummary(ctx context.Context) (PayrollReport, error) {
	req := appctx.GetRequest(ctx)
	period := HalfMonth(req.Clock())

	members, err := s.repo.StaffMembers(ctx, s.scope(ctx), nil)
	if err != nil {
		return PayrollReport{}, err
	}
	entries, err := s.repo.TimeEntries(ctx, s.scope(ctx), &period.From, &period.To)
	if err != nil {
		return PayrollReport{}, err
	}
	return Payroll(period, members, entries), nil
}
