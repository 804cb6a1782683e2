package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/id"
)

// LocationHeader is the HTTP header selecting the active workshop location.
const LocationHeader = "X-Location-Id"

// RequestScope builds the request context the domain layer works with:
// acting user, active workshop location, and request clock.
//
// The location header is optional; company-wide reads (reports, admin
// endpoints) run without it. When present it must be a valid UUID and
// the user must hold a grant for it.
//
// Must run AFTER Auth, which populates the user context.
func RequestScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		rc := appctx.RequestContext{
			UserID: appctx.GetUserID(ctx),
			Now:    time.Now().UTC(),
		}

		if raw := c.GetHeader(LocationHeader); raw != "" {
			locationID, err := id.Parse(raw)
			if err != nil {
				_ = c.Error(
					apperror.NewValidation("invalid location id").
						WithDetail("header", LocationHeader).
						WithDetail("value", raw),
				)
				c.Abort()
				return
			}

			user := appctx.GetUser(ctx)
			if user != nil && !userCanOperateIn(user, locationID.String()) {
				_ = c.Error(
					apperror.NewForbidden("no access to this location").
						WithDetail("location_id", locationID),
				)
				c.Abort()
				return
			}

			rc.LocationID = locationID
			c.Set("location_id", locationID.String())
		}

		c.Request = c.Request.WithContext(appctx.WithRequest(ctx, rc))
		c.Next()
	}
}

// RequireLocation rejects requests without an active location. Used on
// routes that write location-scoped documents.
func RequireLocation() gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := appctx.GetRequest(c.Request.Context())
		if id.IsNil(rc.LocationID) {
			_ = c.Error(
				apperror.NewValidation("location is required").
					WithDetail("header", LocationHeader),
			)
			c.Abort()
			return
		}
		c.Next()
	}
}

func userCanOperateIn(user *appctx.UserContext, locationID string) bool {
	if user.IsAdmin || len(user.LocationIDs) == 0 {
		return true
	}
	for _, loc := range user.LocationIDs {
		if loc == locationID {
			return true
		}
	}
	return false
}
