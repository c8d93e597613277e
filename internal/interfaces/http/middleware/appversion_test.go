package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"timeclock/internal/shared/constants"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performWithAppVersion(minVersion, clientVersion string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/punch", nil)
	if clientVersion != "" {
		c.Request.Header.Set(constants.HeaderAppVersion, clientVersion)
	}

	handler := RequireMinAppVersion(minVersion)
	handler(c)
	if !c.IsAborted() {
		c.Status(http.StatusOK)
	}
	return w
}

func TestRequireMinAppVersion(t *testing.T) {
	tests := []struct {
		name          string
		minVersion    string
		clientVersion string
		wantStatus    int
	}{
		{"gate disabled", "", "0.0.1", http.StatusOK},
		{"no version header", "2.0.0", "", http.StatusOK},
		{"client at minimum", "2.0.0", "2.0.0", http.StatusOK},
		{"client above minimum", "2.0.0", "2.1.3", http.StatusOK},
		{"client below minimum", "2.0.0", "1.9.0", http.StatusUpgradeRequired},
		{"client without v prefix", "v2.0.0", "1.9.0", http.StatusUpgradeRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performWithAppVersion(tt.minVersion, tt.clientVersion)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
