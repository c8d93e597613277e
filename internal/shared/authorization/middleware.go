package authorization

import (
	"github.com/gin-gonic/gin"

	"timeclock/internal/shared/constants"
)

// RequireReportAccess gates the audit listing endpoints to agency and
// admin callers. Contractors see only their own state and timesheet.
func RequireReportAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := ParseUserRole(c.GetString(constants.ContextKeyUserRole))
		if !role.CanViewReports() {
			c.JSON(403, gin.H{
				"error": "report access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CanAccessEventOwner reports whether a caller may read an audit row
// belonging to ownerID.
func CanAccessEventOwner(userID string, role UserRole, ownerID string) bool {
	if role.CanViewReports() {
		return true
	}
	return userID == ownerID
}
