package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/apperror"
	"tallerpro/internal/domain/auth"
	"tallerpro/pkg/logger"
)

// tokenValidator maps bearer tokens straight to user contexts.
type tokenValidator struct {
	users map[string]*appctx.UserContext
}

func (v *tokenValidator) ValidateToken(token string) (*appctx.UserContext, error) {
	user, ok := v.users[token]
	if !ok {
		return nil, apperror.NewUnauthorized("invalid token")
	}
	return user, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)

	validator := &tokenValidator{users: map[string]*appctx.UserContext{
		"technician": {
			UserID:      "user-tech",
			Roles:       []string{auth.RoleTechnician},
			Permissions: []string{auth.PermWorkOrderAdvance, auth.PermWorkOrderUpdate},
		},
		"accountant": {
			UserID:      "user-accounting",
			Permissions: []string{auth.PermManageFinance},
		},
	}}

	return NewRouter(RouterConfig{
		Logger:       log,
		JWTValidator: validator,
	})
}

func get(router http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestReports_RequireAuthentication(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/reports/retention",
		"/api/v1/reports/efficiency",
		"/api/v1/reports/pnl",
	} {
		w := get(router, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestReports_RequireFinancePermission(t *testing.T) {
	router := newTestRouter(t)

	// Retention and efficiency carry the same finance gate as the
	// money reports; operational staff without the grant are refused.
	for _, path := range []string{
		"/api/v1/reports/retention",
		"/api/v1/reports/efficiency",
		"/api/v1/reports/profitability",
		"/api/v1/reports/receivable",
	} {
		w := get(router, path, "technician")
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}
}

func TestStocktakes_RequireInventoryPermission(t *testing.T) {
	router := newTestRouter(t)

	w := get(router, "/api/v1/stocktakes", "technician")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = get(router, "/api/v1/stocktakes", "accountant")
	assert.Equal(t, http.StatusForbidden, w.Code, "finance grant does not cover counts")
}
