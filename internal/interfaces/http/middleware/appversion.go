package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeclock/internal/shared/constants"
	"timeclock/internal/shared/utils"
	"timeclock/internal/shared/version"
)

// RequireMinAppVersion rejects punch clients older than minVersion with
// 426 so they force-update before recording punches. Requests without the
// version header pass through; an empty minVersion disables the gate.
func RequireMinAppVersion(minVersion string) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientVersion := c.GetHeader(constants.HeaderAppVersion)
		if minVersion == "" || clientVersion == "" {
			c.Next()
			return
		}

		if version.HasNewerVersion(clientVersion, minVersion) {
			utils.ErrorResponse(c, http.StatusUpgradeRequired, "app update required")
			c.Abort()
			return
		}

		c.Next()
	}
}
