// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/auth"
	"tallerpro/internal/infrastructure/storage/postgres"
	"tallerpro/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedRolesAndPermissions(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed roles and permissions", "error", err)
	}

	if _, err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// rolePermissions maps built-in roles to their grants. Admins bypass
// permission checks, the grants are still seeded for the UI.
var rolePermissions = map[string][]string{
	auth.RoleAdmin: {
		auth.PermWorkOrderCreate, auth.PermWorkOrderUpdate, auth.PermWorkOrderAdvance,
		auth.PermWorkOrderRetreat, auth.PermWorkOrderCancel, auth.PermWorkOrderAssign,
		auth.PermQuoteCreate, auth.PermQuoteApprove, auth.PermQuoteInvoice,
		auth.PermInvoiceCreate, auth.PermInvoicePay, auth.PermInvoiceCancel,
		auth.PermPurchaseCreate, auth.PermPurchasePost,
		auth.PermManageCatalogs, auth.PermManageInventory, auth.PermManageFinance,
		auth.PermManagePayroll, auth.PermManageAppointments, auth.PermManageUsers,
	},
	auth.RoleAdvisor: {
		auth.PermWorkOrderCreate, auth.PermWorkOrderUpdate, auth.PermWorkOrderAdvance,
		auth.PermWorkOrderRetreat, auth.PermWorkOrderCancel, auth.PermWorkOrderAssign,
		auth.PermQuoteCreate, auth.PermQuoteApprove, auth.PermQuoteInvoice,
		auth.PermInvoiceCreate, auth.PermInvoicePay,
		auth.PermPurchaseCreate,
		auth.PermManageCatalogs, auth.PermManageAppointments,
	},
	auth.RoleTechnician: {
		auth.PermWorkOrderAdvance, auth.PermWorkOrderUpdate,
	},
}

var roleNames = map[string]string{
	auth.RoleAdmin:      "Administrador",
	auth.RoleAdvisor:    "Asesor de servicio",
	auth.RoleTechnician: "Técnico",
}

func seedRolesAndPermissions(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	// Collect the distinct permission codes from the role grants
	seen := make(map[string]id.ID)
	for _, codes := range rolePermissions {
		for _, code := range codes {
			if _, ok := seen[code]; ok {
				continue
			}

			permID := id.New()
			// resource:action split; the last segment is the action
			idx := strings.LastIndex(code, ":")
			resource, action := code[:idx], code[idx+1:]

			tag, err := pool.Pool.Exec(ctx, `
				INSERT INTO sys_permissions (id, code, name, resource, action, created_at)
				VALUES ($1, $2, $3, $4, $5, NOW())
				ON CONFLICT (code) DO NOTHING
			`, permID, code, code, resource, action)
			if err != nil {
				return fmt.Errorf("insert permission %s: %w", code, err)
			}

			if tag.RowsAffected() == 0 {
				if err := pool.Pool.QueryRow(ctx,
					`SELECT id FROM sys_permissions WHERE code = $1`, code,
				).Scan(&permID); err != nil {
					return fmt.Errorf("fetch permission %s: %w", code, err)
				}
			}

			seen[code] = permID
		}
	}

	for roleCode, codes := range rolePermissions {
		roleID := id.New()
		tag, err := pool.Pool.Exec(ctx, `
			INSERT INTO sys_roles (id, code, name, description, is_system, created_at, updated_at)
			VALUES ($1, $2, $3, '', true, NOW(), NOW())
			ON CONFLICT (code) DO NOTHING
		`, roleID, roleCode, roleNames[roleCode])
		if err != nil {
			return fmt.Errorf("insert role %s: %w", roleCode, err)
		}

		if tag.RowsAffected() == 0 {
			if err := pool.Pool.QueryRow(ctx,
				`SELECT id FROM sys_roles WHERE code = $1`, roleCode,
			).Scan(&roleID); err != nil {
				return fmt.Errorf("fetch role %s: %w", roleCode, err)
			}
		}

		for _, code := range codes {
			_, err := pool.Pool.Exec(ctx, `
				INSERT INTO sys_role_permissions (role_id, permission_id, created_at)
				VALUES ($1, $2, NOW())
				ON CONFLICT (role_id, permission_id) DO NOTHING
			`, roleID, seen[code])
			if err != nil {
				return fmt.Errorf("grant %s to %s: %w", code, roleCode, err)
			}
		}
	}

	log.Infow("roles and permissions seeded", "roles", len(rolePermissions), "permissions", len(seen))
	return nil
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, error) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@tallerpro.co"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	// Check if admin already exists
	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM sys_users WHERE email = $1 AND deleted_at IS NULL`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return id.Nil(), fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now()

	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO sys_users (
			id, email, password_hash, first_name, last_name, staff_id,
			is_active, is_admin, created_at, updated_at, version
		)
		VALUES ($1, $2, $3, 'System', 'Admin', NULL, true, true, $4, $4, 1)
	`, userID, adminEmail, string(passwordHash), now)
	if err != nil {
		return id.Nil(), fmt.Errorf("insert admin user: %w", err)
	}

	// Assign admin role
	var adminRoleID id.ID
	err = pool.Pool.QueryRow(ctx,
		`SELECT id FROM sys_roles WHERE code = $1`, auth.RoleAdmin,
	).Scan(&adminRoleID)
	if err != nil {
		log.Warnw("admin role not found, skipping role assignment", "error", err)
	} else {
		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO sys_user_roles (user_id, role_id, granted_by)
			VALUES ($1, $2, NULL)
			ON CONFLICT (user_id, role_id) DO NOTHING
		`, userID, adminRoleID)
		if err != nil {
			log.Warnw("failed to assign admin role", "error", err)
		}
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return userID, nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	// 1. Workshop locations
	locations := []struct {
		code    string
		name    string
		address string
		city    string
	}{
		{"SEDE-NORTE", "Sede Norte", "Calle 170 #45-60", "Bogotá"},
		{"SEDE-SUR", "Sede Sur", "Autopista Sur #38-21", "Bogotá"},
	}

	locationIDs := make(map[string]id.ID)
	for _, l := range locations {
		locID := id.New()
		tag, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_locations (id, code, name, parent_id, is_folder, address, city, phone, active, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, NULL, false, $4, $5, NULL, true, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, locID, l.code, l.name, l.address, l.city)
		if err != nil {
			log.Warnw("failed to seed location", "name", l.name, "error", err)
			continue
		}

		if tag.RowsAffected() == 0 {
			if err := pool.Pool.QueryRow(ctx, `
				SELECT id FROM cat_locations WHERE code = $1 AND deletion_mark = FALSE
			`, l.code).Scan(&locID); err != nil {
				log.Warnw("failed to fetch existing location", "code", l.code, "error", err)
				continue
			}
		}

		locationIDs[l.code] = locID
	}

	// 2. Financial accounts per location
	accounts := []struct {
		code          string
		name          string
		accType       string
		locationCode  string
		bankName      *string
		accountNumber *string
	}{
		{"CAJA-NORTE", "Caja menor Sede Norte", "cash", "SEDE-NORTE", nil, nil},
		{"CAJA-SUR", "Caja menor Sede Sur", "cash", "SEDE-SUR", nil, nil},
		{"BANCO-001", "Cuenta corriente Bancolombia", "bank", "SEDE-NORTE", strPtr("Bancolombia"), strPtr("031-245678-90")},
	}

	for _, a := range accounts {
		locID, ok := locationIDs[a.locationCode]
		if !ok {
			continue
		}

		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_accounts (id, code, name, parent_id, is_folder, type, location_id, bank_name, account_number, active, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, NULL, false, $4, $5, $6, $7, true, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), a.code, a.name, a.accType, locID, a.bankName, a.accountNumber)
		if err != nil {
			log.Warnw("failed to seed account", "name", a.name, "error", err)
		}
	}

	// 3. Staff
	staffMembers := []struct {
		code           string
		name           string
		role           string
		locationCode   string
		document       string
		commissionRate string
		hourlyRate     string
	}{
		{"EMP-001", "Carlos Rodríguez", "advisor", "SEDE-NORTE", "79845123", "5", "0"},
		{"EMP-002", "Andrés Martínez", "technician", "SEDE-NORTE", "1023456789", "0", "15000"},
		{"EMP-003", "Luis Gómez", "technician", "SEDE-SUR", "1098765432", "0", "14000"},
	}

	for _, s := range staffMembers {
		locID, ok := locationIDs[s.locationCode]
		if !ok {
			continue
		}

		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_staff (id, code, name, parent_id, is_folder, role, location_id, document_number, commission_rate, hourly_rate, phone, active, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, NULL, false, $4, $5, $6, $7, $8, NULL, true, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), s.code, s.name, s.role, locID, s.document, s.commissionRate, s.hourlyRate)
		if err != nil {
			log.Warnw("failed to seed staff member", "name", s.name, "error", err)
		}
	}

	// 4. Clients with vehicles
	clients := []struct {
		code     string
		name     string
		docType  string
		document string
		plate    string
		brand    string
		model    string
		year     int
	}{
		{"CLI-001", "María Fernanda López", "cc", "52456789", "ABC123", "Chevrolet", "Spark GT", 2019},
		{"CLI-002", "Transportes El Dorado SAS", "nit", "900123456-7", "WXY789", "Renault", "Kangoo", 2021},
		{"CLI-003", "Jorge Ramírez", "cc", "80123456", "JKL456", "Mazda", "CX-30", 2022},
	}

	for _, c := range clients {
		clientID := id.New()
		tag, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_clients (id, code, name, parent_id, is_folder, document_type, document_number, phone, email, address, city, comment, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, NULL, false, $4, $5, NULL, NULL, NULL, NULL, NULL, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, clientID, c.code, c.name, c.docType, c.document)
		if err != nil {
			log.Warnw("failed to seed client", "name", c.name, "error", err)
			continue
		}

		if tag.RowsAffected() == 0 {
			if err := pool.Pool.QueryRow(ctx, `
				SELECT id FROM cat_clients WHERE code = $1 AND deletion_mark = FALSE
			`, c.code).Scan(&clientID); err != nil {
				log.Warnw("failed to fetch existing client", "code", c.code, "error", err)
				continue
			}
		}

		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO cat_vehicles (id, code, name, parent_id, is_folder, client_id, plate, vin, brand, model, year, color, mileage, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, NULL, false, $4, $5, NULL, $6, $7, $8, NULL, 0, 1, false, '{}')
			ON CONFLICT (plate) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), c.plate, c.brand+" "+c.model, clientID, c.plate, c.brand, c.model, c.year)
		if err != nil {
			log.Warnw("failed to seed vehicle", "plate", c.plate, "error", err)
		}
	}

	// 5. Products and services
	products := []struct {
		code      string
		name      string
		kind      string
		salePrice string
		costPrice string
		barcode   *string
		minStock  types.Quantity
	}{
		{"PRD-00001", "Aceite 10W-40 sintético (cuarto)", "part", "48000", "32000", strPtr("7701234500011"), types.NewQuantityFromFloat64(12)},
		{"PRD-00002", "Filtro de aceite", "part", "28000", "17000", strPtr("7701234500028"), types.NewQuantityFromFloat64(8)},
		{"PRD-00003", "Pastillas de freno delanteras", "part", "145000", "98000", nil, types.NewQuantityFromFloat64(4)},
		{"SRV-00001", "Cambio de aceite y filtro", "service", "45000", "0", nil, 0},
		{"SRV-00002", "Mano de obra mecánica (hora)", "service", "60000", "0", nil, 0},
	}

	for _, p := range products {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_products (id, code, name, parent_id, is_folder, kind, sale_price, cost_price, tax_rate, barcode, min_stock, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, NULL, false, $4, $5, $6, '19', $7, $8, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), p.code, p.name, p.kind, p.salePrice, p.costPrice, p.barcode, p.minStock.Int64Scaled())
		if err != nil {
			log.Warnw("failed to seed product", "name", p.name, "error", err)
		}
	}

	// 6. Suppliers
	suppliers := []struct {
		code string
		name string
		nit  string
	}{
		{"PRV-001", "Importadora de Repuestos Andina SAS", "800987654-1"},
		{"PRV-002", "Lubricantes del Centro Ltda", "830456789-2"},
	}

	for _, s := range suppliers {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_suppliers (id, code, name, parent_id, is_folder, nit, contact_person, phone, email, address, credit_days, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, NULL, false, $4, NULL, NULL, NULL, NULL, 30, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), s.code, s.name, s.nit)
		if err != nil {
			log.Warnw("failed to seed supplier", "name", s.name, "error", err)
		}
	}

	log.Info("demo data seeded successfully")
	return nil
}

func strPtr(s string) *string { return &s }
