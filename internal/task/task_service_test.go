package task_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-doctask/internal/documentgroup"
	documentgroupMock "go-doctask/internal/documentgroup/mock"
	documenttypeMock "go-doctask/internal/documenttype/mock"
	"go-doctask/internal/events"
	"go-doctask/internal/mailqueue"
	mailqueueMock "go-doctask/internal/mailqueue/mock"
	"go-doctask/internal/messaging/kafka"
	kafkaMock "go-doctask/internal/messaging/kafka/mock"
	"go-doctask/internal/shared/apperror"
	"go-doctask/internal/task"
	taskerrors "go-doctask/internal/task/errors"
	taskMock "go-doctask/internal/task/mock"
	"go-doctask/internal/tenant"
	"go-doctask/internal/user"
	userMock "go-doctask/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   task.Service
	repo      *taskMock.MockRepository
	groupRepo *documentgroupMock.MockRepository
	userRepo  *userMock.MockRepository
	typeRepo  *documenttypeMock.MockRepository
	mailRepo  *mailqueueMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := taskMock.NewMockRepository(ctrl)
	groupRepo := documentgroupMock.NewMockRepository(ctrl)
	userRepo := userMock.NewMockRepository(ctrl)
	typeRepo := documenttypeMock.NewMockRepository(ctrl)
	mailRepo := mailqueueMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := task.NewService(db, repo, groupRepo, userRepo, typeRepo, mailRepo, outbox)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		typeRepo:  typeRepo,
		mailRepo:  mailRepo,
		outbox:    outbox,
	}
}

func expectAssignee(deps *serviceDeps, ctx context.Context, companyID uuid.UUID, assignee *user.User) {
	deps.userRepo.EXPECT().
		FindByID(ctx, assignee.ID).
		Return(assignee, nil)
	deps.userRepo.EXPECT().
		RolesByUser(ctx, assignee.ID).
		Return([]user.UserCompanyRole{
			{UserID: assignee.ID, CompanyID: companyID, Role: user.RoleStaff},
		}, nil)
}

func TestTaskService_Create(t *testing.T) {
	companyID := uuid.New()
	ctx := tenant.WithCompany(context.Background(), companyID)
	actorID := uuid.New().String()

	assignee := &user.User{
		ID:       uuid.New(),
		Email:    "staff@acme.test",
		FullName: "Staff Member",
		IsActive: true,
	}
	dueDate := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		groupID := uuid.New()
		req := task.CreateTaskRequest{
			Title:            "Collect onboarding documents",
			AssigneeUserID:   assignee.ID.String(),
			DueDateUtc:       dueDate.Format(time.RFC3339),
			RequiredGroupIDs: []string{groupID.String()},
		}

		expectAssignee(deps, ctx, companyID, assignee)
		deps.groupRepo.EXPECT().
			FindByIDs(ctx, []uuid.UUID{groupID}).
			Return([]documentgroup.DocumentGroup{{ID: groupID, CompanyID: companyID}}, nil)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Insert(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, item *task.TaskItem) error {
				assert.Equal(t, companyID, item.CompanyID)
				assert.Equal(t, req.Title, item.Title)
				assert.Equal(t, task.StatusOpen, item.Status)
				assert.Equal(t, task.PriorityNormal, item.Priority)
				assert.Equal(t, dueDate, item.DueDateUtc)
				return nil
			})
		deps.repo.EXPECT().
			InsertRequiredGroup(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, link *task.TaskRequiredGroup) error {
				assert.Equal(t, groupID, link.DocumentGroupID)
				assert.Equal(t, companyID, link.CompanyID)
				return nil
			})

		deps.mailRepo.EXPECT().WithTx(gomock.Any()).Return(deps.mailRepo)
		deps.mailRepo.EXPECT().
			Enqueue(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *mailqueue.EmailQueue) error {
				assert.Equal(t, assignee.Email, rec.ToAddress)
				assert.Equal(t, mailqueue.StatusPending, rec.Status)
				if assert.NotNil(t, rec.NextTryAtUtc) {
					assert.Equal(t, dueDate, *rec.NextTryAtUtc)
				}
				return nil
			})

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, event kafka.OutboxEvent) error {
				assert.Equal(t, events.TaskCreatedTopic, event.Topic)
				assert.Equal(t, events.TaskCreatedEventType, event.EventType)
				assert.Equal(t, companyID.String(), event.CompanyID)
				assert.Equal(t, kafka.OutboxStatusPending, event.Status)
				return nil
			})

		resp, err := deps.service.Create(ctx, actorID, req)

		assert.NoError(t, err)
		assert.Equal(t, task.StatusOpen, resp.Status)
		assert.Equal(t, []string{groupID.String()}, resp.RequiredGroupIDs)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown group ids silently dropped", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		knownID := uuid.New()
		unknownID := uuid.New()
		req := task.CreateTaskRequest{
			Title:            "Collect contracts",
			AssigneeUserID:   assignee.ID.String(),
			DueDateUtc:       dueDate.Format(time.RFC3339),
			RequiredGroupIDs: []string{knownID.String(), unknownID.String(), "not-a-uuid"},
		}

		expectAssignee(deps, ctx, companyID, assignee)
		deps.groupRepo.EXPECT().
			FindByIDs(ctx, []uuid.UUID{knownID, unknownID}).
			Return([]documentgroup.DocumentGroup{{ID: knownID, CompanyID: companyID}}, nil)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
		deps.repo.EXPECT().
			InsertRequiredGroup(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, link *task.TaskRequiredGroup) error {
				assert.Equal(t, knownID, link.DocumentGroupID)
				return nil
			})
		deps.mailRepo.EXPECT().WithTx(gomock.Any()).Return(deps.mailRepo)
		deps.mailRepo.EXPECT().Enqueue(ctx, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Create(ctx, actorID, req)

		assert.NoError(t, err)
		assert.Equal(t, []string{knownID.String()}, resp.RequiredGroupIDs)
	})

	t.Run("no group resolves", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := task.CreateTaskRequest{
			Title:            "Collect nothing",
			AssigneeUserID:   assignee.ID.String(),
			DueDateUtc:       dueDate.Format(time.RFC3339),
			RequiredGroupIDs: []string{uuid.New().String()},
		}

		expectAssignee(deps, ctx, companyID, assignee)
		deps.groupRepo.EXPECT().
			FindByIDs(ctx, gomock.Any()).
			Return(nil, nil)

		_, err := deps.service.Create(ctx, actorID, req)

		assert.ErrorIs(t, err, taskerrors.ErrNoRequiredGroups)
	})

	t.Run("assignee outside company", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		otherCompany := uuid.New()
		req := task.CreateTaskRequest{
			Title:            "Collect payroll slips",
			AssigneeUserID:   assignee.ID.String(),
			DueDateUtc:       dueDate.Format(time.RFC3339),
			RequiredGroupIDs: []string{uuid.New().String()},
		}

		deps.userRepo.EXPECT().FindByID(ctx, assignee.ID).Return(assignee, nil)
		deps.userRepo.EXPECT().
			RolesByUser(ctx, assignee.ID).
			Return([]user.UserCompanyRole{
				{UserID: assignee.ID, CompanyID: otherCompany, Role: user.RoleStaff},
			}, nil)

		_, err := deps.service.Create(ctx, actorID, req)

		assert.ErrorIs(t, err, taskerrors.ErrAssigneeNotInCompany)
	})
}

func TestTaskService_MissingDocumentTypes(t *testing.T) {
	companyID := uuid.New()
	ctx := tenant.WithCompany(context.Background(), companyID)
	taskID := uuid.New()

	typeA := task.DocumentTypeRef{ID: uuid.New(), Name: "Passport"}
	typeB := task.DocumentTypeRef{ID: uuid.New(), Name: "Contract"}
	typeC := task.DocumentTypeRef{ID: uuid.New(), Name: "Diploma"}

	t.Run("union minus non-rejected uploads", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByID(ctx, taskID).
			Return(&task.TaskItem{ID: taskID, CompanyID: companyID}, nil)
		deps.repo.EXPECT().
			RequiredDocumentTypes(ctx, taskID).
			Return([]task.DocumentTypeRef{typeA, typeB, typeC}, nil)
		deps.repo.EXPECT().
			SatisfiedDocumentTypeIDs(ctx, taskID).
			Return([]uuid.UUID{typeB.ID}, nil)

		missing, err := deps.service.MissingDocumentTypes(ctx, taskID.String())

		assert.NoError(t, err)
		assert.Len(t, missing, 2)
		assert.Equal(t, typeA.Name, missing[0].Name)
		assert.Equal(t, typeC.Name, missing[1].Name)
	})

	t.Run("all satisfied yields empty set", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByID(ctx, taskID).
			Return(&task.TaskItem{ID: taskID, CompanyID: companyID}, nil)
		deps.repo.EXPECT().
			RequiredDocumentTypes(ctx, taskID).
			Return([]task.DocumentTypeRef{typeA}, nil)
		deps.repo.EXPECT().
			SatisfiedDocumentTypeIDs(ctx, taskID).
			Return([]uuid.UUID{typeA.ID}, nil)

		missing, err := deps.service.MissingDocumentTypes(ctx, taskID.String())

		assert.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("resolution is repeatable", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByID(ctx, taskID).
			Return(&task.TaskItem{ID: taskID, CompanyID: companyID}, nil).
			Times(2)
		deps.repo.EXPECT().
			RequiredDocumentTypes(ctx, taskID).
			Return([]task.DocumentTypeRef{typeA, typeB}, nil).
			Times(2)
		deps.repo.EXPECT().
			SatisfiedDocumentTypeIDs(ctx, taskID).
			Return([]uuid.UUID{typeA.ID}, nil).
			Times(2)

		first, err := deps.service.MissingDocumentTypes(ctx, taskID.String())
		assert.NoError(t, err)
		second, err := deps.service.MissingDocumentTypes(ctx, taskID.String())
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("task not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByID(ctx, taskID).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.MissingDocumentTypes(ctx, taskID.String())

		assert.ErrorIs(t, err, taskerrors.ErrTaskNotFound)
	})
}

func TestTaskService_UpdateStatus(t *testing.T) {
	companyID := uuid.New()
	ctx := tenant.WithCompany(context.Background(), companyID)
	taskID := uuid.New()
	actorID := uuid.New().String()

	t.Run("overwrites status and publishes event", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		current := &task.TaskItem{ID: taskID, CompanyID: companyID, Status: task.StatusOpen}
		updated := &task.TaskItem{ID: taskID, CompanyID: companyID, Status: task.StatusInProgress}

		gomock.InOrder(
			deps.repo.EXPECT().FindByID(ctx, taskID).Return(current, nil),
			deps.repo.EXPECT().FindByID(ctx, taskID).Return(updated, nil),
		)
		deps.repo.EXPECT().
			UpdateStatus(ctx, taskID, task.StatusInProgress).
			Return(nil)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, event kafka.OutboxEvent) error {
				assert.Equal(t, events.TaskStatusChangedTopic, event.Topic)
				return nil
			})

		resp, err := deps.service.UpdateStatus(ctx, actorID, taskID.String(), task.UpdateTaskStatusRequest{
			Status: "in_progress",
		})

		assert.NoError(t, err)
		assert.Equal(t, task.StatusInProgress, resp.Status)
	})

	t.Run("same status emits no event", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		current := &task.TaskItem{ID: taskID, CompanyID: companyID, Status: task.StatusOpen}
		deps.repo.EXPECT().FindByID(ctx, taskID).Return(current, nil).Times(2)
		deps.repo.EXPECT().UpdateStatus(ctx, taskID, task.StatusOpen).Return(nil)

		_, err := deps.service.UpdateStatus(ctx, actorID, taskID.String(), task.UpdateTaskStatusRequest{
			Status: task.StatusOpen,
		})

		assert.NoError(t, err)
	})

	t.Run("invalid status", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.UpdateStatus(ctx, actorID, taskID.String(), task.UpdateTaskStatusRequest{
			Status: "DONE",
		})

		assert.ErrorIs(t, err, taskerrors.ErrInvalidStatus)
	})

	t.Run("not found under another tenant", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByID(ctx, taskID).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.UpdateStatus(ctx, actorID, taskID.String(), task.UpdateTaskStatusRequest{
			Status: task.StatusCompleted,
		})

		assert.ErrorIs(t, err, taskerrors.ErrTaskNotFound)
	})
}

func TestTaskService_ReviewDocument(t *testing.T) {
	companyID := uuid.New()
	ctx := tenant.WithCompany(context.Background(), companyID)
	taskID := uuid.New()
	docID := uuid.New()

	t.Run("reject with notes", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		notes := "blurry scan"
		doc := &task.TaskDocument{
			ID:             docID,
			CompanyID:      companyID,
			TaskID:         taskID,
			DocumentTypeID: uuid.New(),
			Status:         task.DocumentStatusUploaded,
			Version:        1,
		}

		deps.repo.EXPECT().FindDocumentByID(ctx, taskID, docID).Return(doc, nil)
		deps.repo.EXPECT().
			UpdateDocumentReview(ctx, gomock.Any(), int64(1)).
			DoAndReturn(func(_ context.Context, d *task.TaskDocument, _ int64) error {
				assert.Equal(t, task.DocumentStatusRejected, d.Status)
				assert.Equal(t, &notes, d.Notes)
				d.Version = 2
				return nil
			})

		resp, err := deps.service.ReviewDocument(ctx, taskID.String(), docID.String(), task.ReviewDocumentRequest{
			Action:  "reject",
			Notes:   &notes,
			Version: 1,
		})

		assert.NoError(t, err)
		assert.Equal(t, task.DocumentStatusRejected, resp.Status)
		assert.Equal(t, int64(2), resp.Version)
	})

	t.Run("already reviewed", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		doc := &task.TaskDocument{
			ID:        docID,
			CompanyID: companyID,
			TaskID:    taskID,
			Status:    task.DocumentStatusApproved,
		}
		deps.repo.EXPECT().FindDocumentByID(ctx, taskID, docID).Return(doc, nil)

		_, err := deps.service.ReviewDocument(ctx, taskID.String(), docID.String(), task.ReviewDocumentRequest{
			Action:  "APPROVE",
			Version: 1,
		})

		assert.ErrorIs(t, err, taskerrors.ErrDocumentAlreadyReviewed)
	})

	t.Run("stale version", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		doc := &task.TaskDocument{
			ID:        docID,
			CompanyID: companyID,
			TaskID:    taskID,
			Status:    task.DocumentStatusUploaded,
			Version:   3,
		}
		deps.repo.EXPECT().FindDocumentByID(ctx, taskID, docID).Return(doc, nil)
		deps.repo.EXPECT().
			UpdateDocumentReview(ctx, gomock.Any(), int64(1)).
			Return(task.ErrVersionConflict)

		_, err := deps.service.ReviewDocument(ctx, taskID.String(), docID.String(), task.ReviewDocumentRequest{
			Action:  "APPROVE",
			Version: 1,
		})

		assert.ErrorIs(t, err, apperror.ErrConcurrencyConflict)
	})

	t.Run("invalid action", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.ReviewDocument(ctx, taskID.String(), docID.String(), task.ReviewDocumentRequest{
			Action:  "ESCALATE",
			Version: 1,
		})

		assert.ErrorIs(t, err, taskerrors.ErrInvalidReviewAction)
	})
}

func TestTaskService_UploadDocument(t *testing.T) {
	companyID := uuid.New()
	ctx := tenant.WithCompany(context.Background(), companyID)
	taskID := uuid.New()
	actorID := uuid.New().String()

	t.Run("unknown document type", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		typeID := uuid.New()
		deps.repo.EXPECT().
			FindByID(ctx, taskID).
			Return(&task.TaskItem{ID: taskID, CompanyID: companyID}, nil)
		deps.typeRepo.EXPECT().
			FindByID(ctx, typeID).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.UploadDocument(ctx, actorID, taskID.String(), task.UploadDocumentRequest{
			DocumentTypeID: typeID.String(),
			FilePath:       "uploads/passport.pdf",
			FileName:       "passport.pdf",
			ContentType:    "application/pdf",
			SizeBytes:      1024,
		})

		assert.ErrorIs(t, err, taskerrors.ErrUnknownDocumentType)
	})

	t.Run("repository failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		typeID := uuid.New()
		deps.repo.EXPECT().
			FindByID(ctx, taskID).
			Return(&task.TaskItem{ID: taskID, CompanyID: companyID}, nil)
		deps.typeRepo.EXPECT().
			FindByID(ctx, typeID).
			Return(nil, nil)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			InsertDocument(ctx, gomock.Any()).
			Return(errors.New("insert failed"))

		_, err := deps.service.UploadDocument(ctx, actorID, taskID.String(), task.UploadDocumentRequest{
			DocumentTypeID: typeID.String(),
			FilePath:       "uploads/passport.pdf",
			FileName:       "passport.pdf",
			ContentType:    "application/pdf",
			SizeBytes:      1024,
		})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
