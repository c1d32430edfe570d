package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-doctask/internal/documentgroup"
	"go-doctask/internal/documenttype"
	"go-doctask/internal/events"
	"go-doctask/internal/mailqueue"
	"go-doctask/internal/messaging/kafka"
	"go-doctask/internal/shared/apperror"
	"go-doctask/internal/shared/contextutil"
	taskerrors "go-doctask/internal/task/errors"
	"go-doctask/internal/tenant"
	"go-doctask/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateTaskRequest) (TaskResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]TaskResponse, error)
	GetByID(ctx context.Context, id string) (TaskResponse, error)
	UpdateStatus(ctx context.Context, actorID, id string, req UpdateTaskStatusRequest) (TaskResponse, error)
	MissingDocumentTypes(ctx context.Context, id string) ([]MissingDocumentTypeResponse, error)
	UploadDocument(ctx context.Context, actorID, taskID string, req UploadDocumentRequest) (TaskDocumentResponse, error)
	ReviewDocument(ctx context.Context, taskID, documentID string, req ReviewDocumentRequest) (TaskDocumentResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	groupRepo  documentgroup.Repository
	userRepo   user.Repository
	typeRepo   documenttype.Repository
	mailRepo   mailqueue.Repository
	outboxRepo kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	groupRepo documentgroup.Repository,
	userRepo user.Repository,
	typeRepo documenttype.Repository,
	mailRepo mailqueue.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		typeRepo:   typeRepo,
		mailRepo:   mailRepo,
		outboxRepo: outboxRepo,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateTaskRequest) (TaskResponse, error) {
	companyID := tenant.CompanyID(ctx)
	s.logger.Debug("create task requested",
		zap.String("company_id", companyID.String()),
		zap.String("actor_id", actorID),
		zap.String("title", req.Title),
	)

	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return TaskResponse{}, apperror.InvalidField("actor_id")
	}

	if strings.TrimSpace(req.Title) == "" {
		return TaskResponse{}, apperror.RequiredField("title")
	}

	dueDate, err := time.Parse(time.RFC3339, req.DueDateUtc)
	if err != nil {
		return TaskResponse{}, apperror.InvalidField("due_date_utc")
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityNormal
	}
	if !IsValidPriority(priority) {
		return TaskResponse{}, taskerrors.ErrInvalidPriority
	}

	assignee, err := s.resolveAssignee(ctx, req.AssigneeUserID)
	if err != nil {
		return TaskResponse{}, err
	}

	// Id group yang tidak dikenal di tenant ini dibuang diam-diam; yang wajib
	// hanya hasil resolusi akhirnya tidak boleh kosong
	resolvedGroups, err := s.resolveRequiredGroups(ctx, req.RequiredGroupIDs)
	if err != nil {
		return TaskResponse{}, err
	}
	if len(resolvedGroups) == 0 {
		s.logger.Warn("create task no required groups resolved",
			zap.Strings("requested_group_ids", req.RequiredGroupIDs),
		)
		return TaskResponse{}, taskerrors.ErrNoRequiredGroups
	}

	t := &TaskItem{
		ID:              uuid.New(),
		CompanyID:       companyID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		AssigneeUserID:  assignee.ID,
		DueDateUtc:      dueDate.UTC(),
		Priority:        priority,
		Status:          StatusOpen,
		CreatedByUserID: createdBy,
		Version:         1,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create task begin tx failed", zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Insert(ctx, t); err != nil {
		s.logger.Error("create task persist failed", zap.Error(err))
		return TaskResponse{}, err
	}

	for _, groupID := range resolvedGroups {
		link := &TaskRequiredGroup{
			TaskID:          t.ID,
			DocumentGroupID: groupID,
			CompanyID:       companyID,
		}
		t.RequiredGroups = append(t.RequiredGroups, *link)
		if err := qtx.InsertRequiredGroup(ctx, link); err != nil {
			s.logger.Error("create task persist required group failed", zap.Error(err))
			return TaskResponse{}, err
		}
	}

	// Pengingat jatuh tempo ikut transaksi yang sama: task tanpa pengingat
	// atau pengingat tanpa task tidak boleh terjadi
	dueReminder := &mailqueue.EmailQueue{
		ID:           uuid.New(),
		CompanyID:    companyID,
		ToAddress:    assignee.Email,
		Subject:      "Reminder: " + t.Title,
		Body:         "",
		EntityID:     t.ID,
		Status:       mailqueue.StatusPending,
		NextTryAtUtc: &t.DueDateUtc,
		Version:      1,
	}
	if err := s.mailRepo.WithTx(tx).Enqueue(ctx, dueReminder); err != nil {
		s.logger.Error("create task enqueue reminder failed", zap.Error(err))
		return TaskResponse{}, err
	}

	if err := s.writeOutboxEvent(ctx, tx, t.ID, events.TaskCreatedTopic, events.TaskCreatedEventType, events.TaskCreatedEvent{
		EventType:      events.TaskCreatedEventType,
		TaskID:         t.ID.String(),
		CompanyID:      companyID.String(),
		AssigneeUserID: t.AssigneeUserID.String(),
		DueDateUtc:     t.DueDateUtc,
		OccurredAt:     time.Now().UTC(),
	}); err != nil {
		s.logger.Error("create task outbox write failed", zap.Error(err))
		return TaskResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create task commit failed", zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("create task success",
		zap.String("task_id", t.ID.String()),
		zap.String("company_id", companyID.String()),
		zap.Int("required_group_count", len(resolvedGroups)),
	)
	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]TaskResponse, error) {
	tasks, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = mapToResponse(t)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TaskResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidTaskID
	}

	t, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, taskerrors.ErrTaskNotFound
		}
		return TaskResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) UpdateStatus(ctx context.Context, actorID, id string, req UpdateTaskStatusRequest) (TaskResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidTaskID
	}

	newStatus := strings.ToUpper(req.Status)
	if !IsValidStatus(newStatus) {
		return TaskResponse{}, taskerrors.ErrInvalidStatus
	}

	t, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, taskerrors.ErrTaskNotFound
		}
		return TaskResponse{}, err
	}
	oldStatus := t.Status

	// Penimpaan tanpa syarat: tidak ada pemeriksaan version di sini, penulis
	// terakhir menang
	if err := s.repo.UpdateStatus(ctx, uid, newStatus); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, taskerrors.ErrTaskNotFound
		}
		s.logger.Error("update task status persist failed",
			zap.String("task_id", id),
			zap.Error(err),
		)
		return TaskResponse{}, err
	}

	if oldStatus != newStatus {
		s.publishStatusChanged(ctx, t, oldStatus, newStatus, actorID)
	}

	s.logger.Info("update task status success",
		zap.String("task_id", id),
		zap.String("old_status", oldStatus),
		zap.String("new_status", newStatus),
	)
	return s.GetByID(ctx, id)
}

// MissingDocumentTypes menghitung tipe dokumen yang masih kurang:
// gabungan item seluruh group wajib dikurangi tipe dokumen dari upload
// yang tidak ditolak
func (s *service) MissingDocumentTypes(ctx context.Context, id string) ([]MissingDocumentTypeResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, taskerrors.ErrInvalidTaskID
	}

	if _, err := s.repo.FindByID(ctx, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, taskerrors.ErrTaskNotFound
		}
		return nil, err
	}

	required, err := s.repo.RequiredDocumentTypes(ctx, uid)
	if err != nil {
		return nil, err
	}
	satisfiedIDs, err := s.repo.SatisfiedDocumentTypeIDs(ctx, uid)
	if err != nil {
		return nil, err
	}

	satisfied := make(map[uuid.UUID]struct{}, len(satisfiedIDs))
	for _, typeID := range satisfiedIDs {
		satisfied[typeID] = struct{}{}
	}

	missing := make([]MissingDocumentTypeResponse, 0, len(required))
	for _, ref := range required {
		if _, ok := satisfied[ref.ID]; ok {
			continue
		}
		missing = append(missing, MissingDocumentTypeResponse{
			ID:   ref.ID.String(),
			Name: ref.Name,
		})
	}
	return missing, nil
}

func (s *service) UploadDocument(ctx context.Context, actorID, taskID string, req UploadDocumentRequest) (TaskDocumentResponse, error) {
	tid, err := uuid.Parse(taskID)
	if err != nil {
		return TaskDocumentResponse{}, taskerrors.ErrInvalidTaskID
	}
	typeID, err := uuid.Parse(req.DocumentTypeID)
	if err != nil {
		return TaskDocumentResponse{}, taskerrors.ErrUnknownDocumentType
	}
	uploadedBy, err := uuid.Parse(actorID)
	if err != nil {
		return TaskDocumentResponse{}, apperror.InvalidField("actor_id")
	}

	if _, err := s.repo.FindByID(ctx, tid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskDocumentResponse{}, taskerrors.ErrTaskNotFound
		}
		return TaskDocumentResponse{}, err
	}
	if _, err := s.typeRepo.FindByID(ctx, typeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskDocumentResponse{}, taskerrors.ErrUnknownDocumentType
		}
		return TaskDocumentResponse{}, err
	}

	companyID := tenant.CompanyID(ctx)
	doc := &TaskDocument{
		ID:               uuid.New(),
		CompanyID:        companyID,
		TaskID:           tid,
		DocumentTypeID:   typeID,
		FilePath:         req.FilePath,
		FileName:         req.FileName,
		ContentType:      req.ContentType,
		SizeBytes:        req.SizeBytes,
		Status:           DocumentStatusUploaded,
		UploadedByUserID: uploadedBy,
		Version:          1,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("upload document begin tx failed", zap.Error(err))
		return TaskDocumentResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).InsertDocument(ctx, doc); err != nil {
		s.logger.Error("upload document persist failed", zap.Error(err))
		return TaskDocumentResponse{}, err
	}

	if err := s.writeOutboxEvent(ctx, tx, tid, events.TaskDocumentUploadedTopic, events.TaskDocumentUploadedEventType, events.TaskDocumentUploadedEvent{
		EventType:      events.TaskDocumentUploadedEventType,
		TaskID:         tid.String(),
		TaskDocumentID: doc.ID.String(),
		DocumentTypeID: typeID.String(),
		CompanyID:      companyID.String(),
		UploadedBy:     actorID,
		OccurredAt:     time.Now().UTC(),
	}); err != nil {
		s.logger.Error("upload document outbox write failed", zap.Error(err))
		return TaskDocumentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("upload document commit failed", zap.Error(err))
		return TaskDocumentResponse{}, err
	}

	s.logger.Info("upload document success",
		zap.String("task_id", taskID),
		zap.String("task_document_id", doc.ID.String()),
		zap.String("document_type_id", typeID.String()),
	)
	return mapDocumentToResponse(*doc), nil
}

func (s *service) ReviewDocument(ctx context.Context, taskID, documentID string, req ReviewDocumentRequest) (TaskDocumentResponse, error) {
	tid, err := uuid.Parse(taskID)
	if err != nil {
		return TaskDocumentResponse{}, taskerrors.ErrInvalidTaskID
	}
	did, err := uuid.Parse(documentID)
	if err != nil {
		return TaskDocumentResponse{}, taskerrors.ErrDocumentNotFound
	}

	var newStatus string
	switch strings.ToUpper(req.Action) {
	case "APPROVE":
		newStatus = DocumentStatusApproved
	case "REJECT":
		newStatus = DocumentStatusRejected
	default:
		return TaskDocumentResponse{}, taskerrors.ErrInvalidReviewAction
	}

	doc, err := s.repo.FindDocumentByID(ctx, tid, did)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskDocumentResponse{}, taskerrors.ErrDocumentNotFound
		}
		return TaskDocumentResponse{}, err
	}
	if doc.Status != DocumentStatusUploaded {
		return TaskDocumentResponse{}, taskerrors.ErrDocumentAlreadyReviewed
	}

	doc.Status = newStatus
	doc.Notes = req.Notes
	if err := s.repo.UpdateDocumentReview(ctx, doc, req.Version); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return TaskDocumentResponse{}, taskerrors.ErrDocumentNotFound
		case errors.Is(err, ErrVersionConflict):
			return TaskDocumentResponse{}, apperror.ErrConcurrencyConflict
		}
		s.logger.Error("review document persist failed",
			zap.String("task_document_id", documentID),
			zap.Error(err),
		)
		return TaskDocumentResponse{}, err
	}

	s.logger.Info("review document success",
		zap.String("task_id", taskID),
		zap.String("task_document_id", documentID),
		zap.String("status", newStatus),
	)
	return mapDocumentToResponse(*doc), nil
}

func (s *service) resolveAssignee(ctx context.Context, assigneeID string) (*user.User, error) {
	uid, err := uuid.Parse(assigneeID)
	if err != nil {
		return nil, apperror.InvalidField("assignee_user_id")
	}

	u, err := s.userRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, taskerrors.ErrAssigneeNotInCompany
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, taskerrors.ErrAssigneeNotInCompany
	}

	companyID := tenant.CompanyID(ctx)
	roles, err := s.userRepo.RolesByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if role.CompanyID == companyID {
			return u, nil
		}
	}
	return nil, taskerrors.ErrAssigneeNotInCompany
}

func (s *service) resolveRequiredGroups(ctx context.Context, rawIDs []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(rawIDs))
	requested := make([]uuid.UUID, 0, len(rawIDs))
	for _, rawID := range rawIDs {
		id, err := uuid.Parse(rawID)
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		requested = append(requested, id)
	}

	groups, err := s.groupRepo.FindByIDs(ctx, requested)
	if err != nil {
		return nil, err
	}

	resolved := make([]uuid.UUID, len(groups))
	for i, g := range groups {
		resolved[i] = g.ID
	}
	return resolved, nil
}

func (s *service) writeOutboxEvent(ctx context.Context, tx *sql.Tx, aggregateID uuid.UUID, topic, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		CompanyID:     tenant.CompanyID(ctx).String(),
		AggregateType: "task",
		AggregateID:   aggregateID.String(),
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(event); err != nil {
		return err
	}
	return s.outboxRepo.WithTx(tx).Create(ctx, event)
}

// publishStatusChanged menulis event perubahan status di luar transaksi
// pembaruan; kegagalan hanya dicatat
func (s *service) publishStatusChanged(ctx context.Context, t *TaskItem, oldStatus, newStatus, actorID string) {
	payload, err := json.Marshal(events.TaskStatusChangedEvent{
		EventType:  events.TaskStatusChangedEventType,
		TaskID:     t.ID.String(),
		CompanyID:  t.CompanyID.String(),
		OldStatus:  oldStatus,
		NewStatus:  newStatus,
		ChangedBy:  actorID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("marshal status changed event failed", zap.Error(err))
		return
	}

	event := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		CompanyID:     t.CompanyID.String(),
		AggregateType: "task",
		AggregateID:   t.ID.String(),
		EventType:     events.TaskStatusChangedEventType,
		Topic:         events.TaskStatusChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		s.logger.Error("write status changed outbox event failed",
			zap.String("task_id", t.ID.String()),
			zap.Error(err),
		)
	}
}

func mapToResponse(t TaskItem) TaskResponse {
	groupIDs := make([]string, len(t.RequiredGroups))
	for i, g := range t.RequiredGroups {
		groupIDs[i] = g.DocumentGroupID.String()
	}

	var docs []TaskDocumentResponse
	for _, d := range t.Documents {
		docs = append(docs, mapDocumentToResponse(d))
	}

	return TaskResponse{
		ID:               t.ID.String(),
		Title:            t.Title,
		Description:      t.Description,
		AssigneeUserID:   t.AssigneeUserID.String(),
		DueDateUtc:       t.DueDateUtc.UTC().Format(time.RFC3339),
		Priority:         t.Priority,
		Status:           t.Status,
		CreatedByUserID:  t.CreatedByUserID.String(),
		RequiredGroupIDs: groupIDs,
		Documents:        docs,
		Version:          t.Version,
		CreatedAt:        t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapDocumentToResponse(d TaskDocument) TaskDocumentResponse {
	return TaskDocumentResponse{
		ID:             d.ID.String(),
		DocumentTypeID: d.DocumentTypeID.String(),
		FilePath:       d.FilePath,
		FileName:       d.FileName,
		ContentType:    d.ContentType,
		SizeBytes:      d.SizeBytes,
		Status:         d.Status,
		Notes:          d.Notes,
		UploadedBy:     d.UploadedByUserID.String(),
		Version:        d.Version,
		UploadedAt:     d.CreatedAt.UTC().Format(time.RFC3339),
	}
}
