package tenant

import (
	"context"

	"gorm.io/gorm"
)

// Scope membatasi query ke tenant yang dibawa context.
// Context tanpa tenant menghasilkan predikat company_id = uuid.Nil yang tidak
// pernah cocok dengan baris manapun.
func Scope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	companyID := CompanyID(ctx)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
