package mailqueue

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=mailqueue_repo.go -destination=mock/mailqueue_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Enqueue(ctx context.Context, record *EmailQueue) error
	ListDue(ctx context.Context, now time.Time, limit int) ([]EmailQueue, error)
	Save(ctx context.Context, record *EmailQueue) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Enqueue(ctx context.Context, record *EmailQueue) error {
	if r.tx != nil {
		query := `
        INSERT INTO email_queue (
            id, company_id, to_address, subject, body, entity_id, status, try_count, next_try_at_utc, version, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
    `
		_, err := r.tx.ExecContext(
			ctx, query,
			record.ID, record.CompanyID, record.ToAddress, record.Subject,
			record.Body, record.EntityID, record.Status, record.TryCount,
			record.NextTryAtUtc, record.Version,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// ListDue mengambil record yang jatuh tempo LINTAS tenant: worker pengingat
// berjalan untuk semua company sekaligus, lalu memasang tenant context per
// record saat memprosesnya
func (r *repository) ListDue(ctx context.Context, now time.Time, limit int) ([]EmailQueue, error) {
	var records []EmailQueue
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Where("next_try_at_utc IS NULL OR next_try_at_utc <= ?", now).
		Order("created_at ASC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *repository) Save(ctx context.Context, record *EmailQueue) error {
	return r.db.WithContext(ctx).
		Model(&EmailQueue{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"body":            record.Body,
			"status":          record.Status,
			"try_count":       record.TryCount,
			"next_try_at_utc": record.NextTryAtUtc,
			"sent_at_utc":     record.SentAtUtc,
			"error":           record.Error,
			"version":         gorm.Expr("version + 1"),
		}).Error
}
