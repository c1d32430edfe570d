package task_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"go-doctask/internal/documentgroup"
	"go-doctask/internal/documenttype"
	"go-doctask/internal/task"
	"go-doctask/internal/tenant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type repoFixture struct {
	repo      task.Repository
	db        *gorm.DB
	companyID uuid.UUID
	ctx       context.Context
}

func setupTaskRepoTest(t *testing.T) *repoFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&documenttype.DocumentType{},
		&documentgroup.DocumentGroup{},
		&documentgroup.DocumentGroupItem{},
		&task.TaskItem{},
		&task.TaskRequiredGroup{},
		&task.TaskDocument{},
	))

	companyID := uuid.New()
	return &repoFixture{
		repo:      task.NewRepository(db),
		db:        db,
		companyID: companyID,
		ctx:       tenant.WithCompany(context.Background(), companyID),
	}
}

func (f *repoFixture) seedType(t *testing.T, name string) *documenttype.DocumentType {
	t.Helper()
	dt := &documenttype.DocumentType{
		ID:        uuid.New(),
		CompanyID: f.companyID,
		Name:      name,
		Code:      name,
		IsActive:  true,
		Version:   1,
	}
	assert.NoError(t, f.db.Create(dt).Error)
	return dt
}

func (f *repoFixture) seedGroup(t *testing.T, name string, types ...*documenttype.DocumentType) *documentgroup.DocumentGroup {
	t.Helper()
	g := &documentgroup.DocumentGroup{
		ID:        uuid.New(),
		CompanyID: f.companyID,
		Name:      name,
		Code:      strings.ToUpper(name),
		IsActive:  true,
		Version:   1,
	}
	for _, dt := range types {
		g.Items = append(g.Items, documentgroup.DocumentGroupItem{
			DocumentGroupID: g.ID,
			DocumentTypeID:  dt.ID,
			CompanyID:       f.companyID,
		})
	}
	assert.NoError(t, f.db.Create(g).Error)
	return g
}

func (f *repoFixture) seedTask(t *testing.T, groups ...*documentgroup.DocumentGroup) *task.TaskItem {
	t.Helper()
	item := &task.TaskItem{
		ID:              uuid.New(),
		CompanyID:       f.companyID,
		Title:           "Collect onboarding documents",
		AssigneeUserID:  uuid.New(),
		DueDateUtc:      time.Now().Add(72 * time.Hour).UTC(),
		Priority:        task.PriorityNormal,
		Status:          task.StatusOpen,
		CreatedByUserID: uuid.New(),
		Version:         1,
	}
	assert.NoError(t, f.repo.Insert(f.ctx, item))
	for _, g := range groups {
		assert.NoError(t, f.repo.InsertRequiredGroup(f.ctx, &task.TaskRequiredGroup{
			TaskID:          item.ID,
			DocumentGroupID: g.ID,
			CompanyID:       f.companyID,
		}))
	}
	return item
}

func (f *repoFixture) seedDocument(t *testing.T, taskID, typeID uuid.UUID, status string) *task.TaskDocument {
	t.Helper()
	doc := &task.TaskDocument{
		ID:               uuid.New(),
		CompanyID:        f.companyID,
		TaskID:           taskID,
		DocumentTypeID:   typeID,
		FilePath:         "uploads/scan.pdf",
		FileName:         "scan.pdf",
		ContentType:      "application/pdf",
		SizeBytes:        1024,
		Status:           status,
		UploadedByUserID: uuid.New(),
		Version:          1,
	}
	assert.NoError(t, f.repo.InsertDocument(f.ctx, doc))
	return doc
}

func TestTaskRepository_RequiredDocumentTypes(t *testing.T) {
	t.Run("unions items across overlapping groups", func(t *testing.T) {
		f := setupTaskRepoTest(t)

		passport := f.seedType(t, "PASSPORT")
		contract := f.seedType(t, "CONTRACT")
		diploma := f.seedType(t, "DIPLOMA")
		onboarding := f.seedGroup(t, "Onboarding", passport, contract)
		legal := f.seedGroup(t, "Legal", contract, diploma)
		item := f.seedTask(t, onboarding, legal)

		refs, err := f.repo.RequiredDocumentTypes(f.ctx, item.ID)

		assert.NoError(t, err)
		assert.Len(t, refs, 3)
		ids := make(map[uuid.UUID]bool, len(refs))
		for _, ref := range refs {
			ids[ref.ID] = true
		}
		assert.True(t, ids[passport.ID])
		assert.True(t, ids[contract.ID])
		assert.True(t, ids[diploma.ID])
	})

	t.Run("other tenant resolves nothing", func(t *testing.T) {
		f := setupTaskRepoTest(t)

		passport := f.seedType(t, "PASSPORT")
		group := f.seedGroup(t, "Onboarding", passport)
		item := f.seedTask(t, group)

		otherCtx := tenant.WithCompany(context.Background(), uuid.New())
		refs, err := f.repo.RequiredDocumentTypes(otherCtx, item.ID)

		assert.NoError(t, err)
		assert.Empty(t, refs)
	})
}

func TestTaskRepository_SatisfiedDocumentTypeIDs(t *testing.T) {
	t.Run("rejected upload does not satisfy", func(t *testing.T) {
		f := setupTaskRepoTest(t)

		passport := f.seedType(t, "PASSPORT")
		contract := f.seedType(t, "CONTRACT")
		group := f.seedGroup(t, "Onboarding", passport, contract)
		item := f.seedTask(t, group)

		f.seedDocument(t, item.ID, passport.ID, task.DocumentStatusUploaded)
		f.seedDocument(t, item.ID, contract.ID, task.DocumentStatusRejected)

		ids, err := f.repo.SatisfiedDocumentTypeIDs(f.ctx, item.ID)

		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{passport.ID}, ids)
	})

	t.Run("rejection after approval reopens the requirement", func(t *testing.T) {
		f := setupTaskRepoTest(t)

		passport := f.seedType(t, "PASSPORT")
		group := f.seedGroup(t, "Onboarding", passport)
		item := f.seedTask(t, group)
		doc := f.seedDocument(t, item.ID, passport.ID, task.DocumentStatusUploaded)

		ids, err := f.repo.SatisfiedDocumentTypeIDs(f.ctx, item.ID)
		assert.NoError(t, err)
		assert.Len(t, ids, 1)

		doc.Status = task.DocumentStatusRejected
		assert.NoError(t, f.repo.UpdateDocumentReview(f.ctx, doc, 1))

		ids, err = f.repo.SatisfiedDocumentTypeIDs(f.ctx, item.ID)
		assert.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("duplicate uploads collapse to one type", func(t *testing.T) {
		f := setupTaskRepoTest(t)

		passport := f.seedType(t, "PASSPORT")
		group := f.seedGroup(t, "Onboarding", passport)
		item := f.seedTask(t, group)

		f.seedDocument(t, item.ID, passport.ID, task.DocumentStatusUploaded)
		f.seedDocument(t, item.ID, passport.ID, task.DocumentStatusApproved)

		ids, err := f.repo.SatisfiedDocumentTypeIDs(f.ctx, item.ID)

		assert.NoError(t, err)
		assert.Len(t, ids, 1)
	})
}

func TestTaskRepository_UpdateStatus(t *testing.T) {
	t.Run("overwrites regardless of version and bumps it", func(t *testing.T) {
		f := setupTaskRepoTest(t)
		passport := f.seedType(t, "PASSPORT")
		group := f.seedGroup(t, "Onboarding", passport)
		item := f.seedTask(t, group)

		assert.NoError(t, f.repo.UpdateStatus(f.ctx, item.ID, task.StatusInProgress))
		assert.NoError(t, f.repo.UpdateStatus(f.ctx, item.ID, task.StatusReview))

		fresh, err := f.repo.FindByID(f.ctx, item.ID)
		assert.NoError(t, err)
		assert.Equal(t, task.StatusReview, fresh.Status)
		assert.Equal(t, int64(3), fresh.Version)
	})

	t.Run("other tenant looks like not found", func(t *testing.T) {
		f := setupTaskRepoTest(t)
		passport := f.seedType(t, "PASSPORT")
		group := f.seedGroup(t, "Onboarding", passport)
		item := f.seedTask(t, group)

		otherCtx := tenant.WithCompany(context.Background(), uuid.New())
		err := f.repo.UpdateStatus(otherCtx, item.ID, task.StatusCompleted)

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestTaskRepository_UpdateDocumentReview(t *testing.T) {
	t.Run("stale version conflicts", func(t *testing.T) {
		f := setupTaskRepoTest(t)
		passport := f.seedType(t, "PASSPORT")
		group := f.seedGroup(t, "Onboarding", passport)
		item := f.seedTask(t, group)
		doc := f.seedDocument(t, item.ID, passport.ID, task.DocumentStatusUploaded)

		doc.Status = task.DocumentStatusApproved
		assert.NoError(t, f.repo.UpdateDocumentReview(f.ctx, doc, 1))
		assert.Equal(t, int64(2), doc.Version)

		stale := *doc
		stale.Status = task.DocumentStatusRejected
		err := f.repo.UpdateDocumentReview(f.ctx, &stale, 1)

		assert.ErrorIs(t, err, task.ErrVersionConflict)
	})
}
