package auth

// Permission codes follow "resource:entity:action" for documents and
// "manage:area" for coarse area grants. Admins bypass the check entirely.
const (
	// Work order lifecycle
	PermWorkOrderCreate  = "document:work_order:create"
	PermWorkOrderUpdate  = "document:work_order:update"
	PermWorkOrderAdvance = "document:work_order:advance"
	PermWorkOrderRetreat = "document:work_order:retreat"
	PermWorkOrderCancel  = "document:work_order:cancel"
	PermWorkOrderAssign  = "document:work_order:assign"

	// Quoting and billing
	PermQuoteCreate   = "document:quote:create"
	PermQuoteApprove  = "document:quote:approve"
	PermQuoteInvoice  = "document:quote:invoice"
	PermInvoiceCreate = "document:invoice:create"
	PermInvoicePay    = "document:invoice:pay"
	PermInvoiceCancel = "document:invoice:cancel"

	// Purchasing and stock
	PermPurchaseCreate = "document:purchase:create"
	PermPurchasePost   = "document:purchase:post"

	// Coarse area grants
	PermManageCatalogs     = "manage:catalogs"
	PermManageInventory    = "manage:inventory"
	PermManageFinance      = "manage:finance"
	PermManagePayroll      = "manage:payroll"
	PermManageAppointments = "manage:appointments"
	PermManageUsers        = "manage:users"
)

// Built-in role codes. Mirrors the staff roles from the catalog so a
// linked user gets the matching grant set at registration.
const (
	RoleAdmin      = "admin"
	RoleAdvisor    = "advisor"
	RoleTechnician = "technician"
)
