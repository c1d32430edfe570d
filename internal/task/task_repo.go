package task

import (
	"context"
	"database/sql"
	"errors"

	"go-doctask/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrVersionConflict = errors.New("task version conflict")

type ListFilter struct {
	Status         string
	AssigneeUserID *uuid.UUID
}

//go:generate mockgen -source=task_repo.go -destination=mock/task_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Insert(ctx context.Context, t *TaskItem) error
	InsertRequiredGroup(ctx context.Context, link *TaskRequiredGroup) error
	FindByID(ctx context.Context, id uuid.UUID) (*TaskItem, error)
	FindAll(ctx context.Context, filter ListFilter) ([]TaskItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	RequiredDocumentTypes(ctx context.Context, taskID uuid.UUID) ([]DocumentTypeRef, error)
	SatisfiedDocumentTypeIDs(ctx context.Context, taskID uuid.UUID) ([]uuid.UUID, error)
	InsertDocument(ctx context.Context, doc *TaskDocument) error
	FindDocumentByID(ctx context.Context, taskID, documentID uuid.UUID) (*TaskDocument, error)
	UpdateDocumentReview(ctx context.Context, doc *TaskDocument, version int64) error
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

func (r *repository) Insert(ctx context.Context, t *TaskItem) error {
	if r.tx != nil {
		query := `
        INSERT INTO tasks (
            id, company_id, title, description, assignee_user_id, due_date_utc,
            priority, status, created_by_user_id, version, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
    `
		_, err := r.tx.ExecContext(
			ctx, query,
			t.ID, t.CompanyID, t.Title, t.Description, t.AssigneeUserID,
			t.DueDateUtc, t.Priority, t.Status, t.CreatedByUserID, t.Version,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) InsertRequiredGroup(ctx context.Context, link *TaskRequiredGroup) error {
	if r.tx != nil {
		query := `
        INSERT INTO task_required_groups (
            task_id, document_group_id, company_id, created_at
        ) VALUES ($1, $2, $3, NOW())
    `
		_, err := r.tx.ExecContext(ctx, query, link.TaskID, link.DocumentGroupID, link.CompanyID)
		return err
	}
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*TaskItem, error) {
	var t TaskItem
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		Preload("RequiredGroups").
		Preload("Documents").
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]TaskItem, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx))
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.AssigneeUserID != nil {
		q = q.Where("assignee_user_id = ?", *filter.AssigneeUserID)
	}

	var tasks []TaskItem
	err := q.Order("due_date_utc ASC").Find(&tasks).Error
	return tasks, err
}

// UpdateStatus menimpa status tanpa syarat: penulis terakhir menang, token
// version tetap naik supaya pembaruan atribut lain tetap terdeteksi konflik
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).
		Model(&TaskItem{}).
		Scopes(tenant.Scope(ctx)).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":  status,
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) RequiredDocumentTypes(ctx context.Context, taskID uuid.UUID) ([]DocumentTypeRef, error) {
	var refs []DocumentTypeRef
	err := r.db.WithContext(ctx).
		Table("task_required_groups").
		Select("DISTINCT document_types.id AS id, document_types.name AS name").
		Joins("JOIN document_group_items ON document_group_items.document_group_id = task_required_groups.document_group_id").
		Joins("JOIN document_types ON document_types.id = document_group_items.document_type_id").
		Where("task_required_groups.task_id = ?", taskID).
		Where("task_required_groups.company_id = ?", tenant.CompanyID(ctx)).
		Scan(&refs).Error
	return refs, err
}

func (r *repository) SatisfiedDocumentTypeIDs(ctx context.Context, taskID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&TaskDocument{}).
		Scopes(tenant.Scope(ctx)).
		Distinct("document_type_id").
		Where("task_id = ?", taskID).
		Where("status <> ?", DocumentStatusRejected).
		Pluck("document_type_id", &ids).Error
	return ids, err
}

func (r *repository) InsertDocument(ctx context.Context, doc *TaskDocument) error {
	if r.tx != nil {
		query := `
        INSERT INTO task_documents (
            id, company_id, task_id, document_type_id, file_path, file_name,
            content_type, size_bytes, status, uploaded_by_user_id, version, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
    `
		_, err := r.tx.ExecContext(
			ctx, query,
			doc.ID, doc.CompanyID, doc.TaskID, doc.DocumentTypeID, doc.FilePath,
			doc.FileName, doc.ContentType, doc.SizeBytes, doc.Status, doc.UploadedByUserID, doc.Version,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *repository) FindDocumentByID(ctx context.Context, taskID, documentID uuid.UUID) (*TaskDocument, error) {
	var doc TaskDocument
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		Where("task_id = ?", taskID).
		First(&doc, "id = ?", documentID).Error
	return &doc, err
}

func (r *repository) UpdateDocumentReview(ctx context.Context, doc *TaskDocument, version int64) error {
	res := r.db.WithContext(ctx).
		Model(&TaskDocument{}).
		Scopes(tenant.Scope(ctx)).
		Where("id = ? AND version = ?", doc.ID, version).
		Updates(map[string]any{
			"status":  doc.Status,
			"notes":   doc.Notes,
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&TaskDocument{}).
			Scopes(tenant.Scope(ctx)).
			Where("id = ?", doc.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrVersionConflict
		}
		return gorm.ErrRecordNotFound
	}
	doc.Version = version + 1
	return nil
}
