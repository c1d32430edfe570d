package tenant

import (
	"context"

	"github.com/google/uuid"
)

// contextKey privat agar tidak bentrok dengan key milik library lain
type contextKey struct{}

var companyKey contextKey

// WithCompany mengikat tenant (company) aktif ke context untuk satu unit of work.
// Setiap request atau iterasi job memegang context-nya sendiri, tidak pernah
// disimpan sebagai state global.
func WithCompany(ctx context.Context, companyID uuid.UUID) context.Context {
	return context.WithValue(ctx, companyKey, companyID)
}

// CompanyID mengembalikan tenant aktif dari context.
// Jika context tidak membawa tenant, hasilnya uuid.Nil: scope di store akan
// cocok dengan nol baris (fail-closed), bukan seluruh tabel.
func CompanyID(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if id, ok := ctx.Value(companyKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// HasCompany melaporkan apakah context membawa tenant yang valid
func HasCompany(ctx context.Context) bool {
	return CompanyID(ctx) != uuid.Nil
}
