package middleware

import (
	"go-doctask/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenantResolution menetapkan tenant aktif untuk satu request.
// Urutan resolusi: path param companyId, lalu header X-Company-Id (override
// eksplisit), lalu claim company_id dari token. Tanpa ketiganya context tetap
// tanpa tenant dan semua query tenant-scoped menghasilkan nol baris.
func TenantResolution() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("companyId")
		if raw == "" {
			raw = c.GetHeader("X-Company-Id")
		}
		if raw == "" {
			raw = c.GetString("claim_company_id")
		}

		if companyID, err := uuid.Parse(raw); err == nil && companyID != uuid.Nil {
			c.Set("company_id", companyID.String())
			ctx := tenant.WithCompany(c.Request.Context(), companyID)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}
