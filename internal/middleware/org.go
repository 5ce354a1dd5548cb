package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/smartcms/smartcontent/internal/common"
)

// OrgScope resolves the tenant for the request. The org comes from the
// X-Org-ID header (set by the gateway) or, failing that, the token claim.
// Every content query downstream is scoped by this value.
func OrgScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID := c.GetHeader("X-Org-ID")
		if orgID == "" {
			if tokenOrg, exists := c.Get("tokenOrgID"); exists {
				orgID, _ = tokenOrg.(string)
			}
		}

		if orgID == "" {
			common.ErrorResponse(c, 400, "Missing org scope", nil)
			c.Abort()
			return
		}

		c.Set("orgID", orgID)
		c.Next()
	}
}

// GetOrgID extracts the resolved org ID from context
func GetOrgID(c *gin.Context) string {
	orgID, exists := c.Get("orgID")
	if !exists {
		return ""
	}
	if str, ok := orgID.(string); ok {
		return str
	}
	return ""
}
