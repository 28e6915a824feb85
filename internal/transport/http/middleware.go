package httptransport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-server-go/internal/domain/auth"
	"portfolio-server-go/internal/domain/auth/aggregate"
	"portfolio-server-go/internal/domain/events"
)

const adminContextKey = "adminUser"

// RequireAdmin gates a route group on a valid session. Browsers get a
// redirect to the login page with the stale cookie cleared; API calls
// get a 401. The protected handler never runs on a denial.
func RequireAdmin(gate *auth.Gate, cookies *auth.SessionCookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.Read(c.Request)
		admin, err := gate.Authorize(c.Request.Context(), token)
		if err == nil {
			c.Set(adminContextKey, admin)
			c.Next()
			return
		}

		// Presented-but-rejected tokens feed the audit trail. A plain
		// missing cookie is just a logged-out visitor.
		if token != "" {
			events.PublishAsync(events.EventTokenRejected, events.AuthEventData{
				RemoteIP: c.ClientIP(),
				Reason:   auth.RejectionReason(err),
				At:       time.Now(),
			})
		}

		if isAPIRequest(c) {
			RespondError(c, http.StatusUnauthorized, "authentication required", nil)
			c.Abort()
			return
		}

		cookies.Clear(c.Writer)
		c.Redirect(http.StatusFound, "/auth/login")
		c.Abort()
	}
}

// OptionalAdmin resolves the session when one is present without
// gating the route. Public pages use it to show drafts and admin
// controls to a logged-in administrator.
func OptionalAdmin(gate *auth.Gate, cookies *auth.SessionCookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := cookies.Read(c.Request); token != "" {
			if admin, err := gate.Authorize(c.Request.Context(), token); err == nil {
				c.Set(adminContextKey, admin)
			}
		}
		c.Next()
	}
}

// AdminFromContext returns the authenticated admin, or nil for an
// anonymous request.
func AdminFromContext(c *gin.Context) *aggregate.AdminUser {
	if v, ok := c.Get(adminContextKey); ok {
		if admin, ok := v.(*aggregate.AdminUser); ok {
			return admin
		}
	}
	return nil
}
