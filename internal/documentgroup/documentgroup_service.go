package documentgroup

import (
	"context"
	"errors"
	"strings"

	documentgrouperrors "go-doctask/internal/documentgroup/errors"
	"go-doctask/internal/documenttype"
	"go-doctask/internal/shared/apperror"
	"go-doctask/internal/tenant"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=documentgroup_service.go -destination=mock/documentgroup_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDocumentGroupRequest) (DocumentGroupResponse, error)
	GetAll(ctx context.Context) ([]DocumentGroupResponse, error)
	GetByID(ctx context.Context, id string) (DocumentGroupResponse, error)
	Update(ctx context.Context, id string, req UpdateDocumentGroupRequest) (DocumentGroupResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	typeRepo documenttype.Repository
	logger   *zap.Logger
}

func NewService(repo Repository, typeRepo documenttype.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("documentgroup.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("documentgroup.service")
	}
	return &service{repo: repo, typeRepo: typeRepo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDocumentGroupRequest) (DocumentGroupResponse, error) {
	typeIDs, err := s.resolveTypeIDs(ctx, req.DocumentTypeIDs)
	if err != nil {
		return DocumentGroupResponse{}, err
	}

	companyID := tenant.CompanyID(ctx)
	g := &DocumentGroup{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(req.Name),
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		IsActive:  true,
		Version:   1,
	}
	for _, typeID := range typeIDs {
		g.Items = append(g.Items, DocumentGroupItem{
			DocumentGroupID: g.ID,
			DocumentTypeID:  typeID,
			CompanyID:       companyID,
		})
	}

	if err := s.repo.Create(ctx, g); err != nil {
		s.logger.Error("create document group persist failed", zap.Error(err))
		return DocumentGroupResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create document group success",
		zap.String("document_group_id", g.ID.String()),
		zap.Int("item_count", len(g.Items)),
	)
	return mapToResponse(*g), nil
}

func (s *service) GetAll(ctx context.Context) ([]DocumentGroupResponse, error) {
	groups, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]DocumentGroupResponse, len(groups))
	for i, g := range groups {
		resp[i] = mapToResponse(g)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DocumentGroupResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return DocumentGroupResponse{}, documentgrouperrors.ErrInvalidDocumentGroupID
	}

	g, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DocumentGroupResponse{}, documentgrouperrors.ErrDocumentGroupNotFound
		}
		return DocumentGroupResponse{}, err
	}
	return mapToResponse(*g), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDocumentGroupRequest) (DocumentGroupResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return DocumentGroupResponse{}, documentgrouperrors.ErrInvalidDocumentGroupID
	}

	typeIDs, err := s.resolveTypeIDs(ctx, req.DocumentTypeIDs)
	if err != nil {
		return DocumentGroupResponse{}, err
	}

	companyID := tenant.CompanyID(ctx)
	g := &DocumentGroup{
		ID:       uid,
		Name:     strings.TrimSpace(req.Name),
		Code:     strings.ToUpper(strings.TrimSpace(req.Code)),
		IsActive: req.IsActive != nil && *req.IsActive,
	}
	for _, typeID := range typeIDs {
		g.Items = append(g.Items, DocumentGroupItem{
			DocumentGroupID: uid,
			DocumentTypeID:  typeID,
			CompanyID:       companyID,
		})
	}

	if err := s.repo.Update(ctx, g, req.Version); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return DocumentGroupResponse{}, documentgrouperrors.ErrDocumentGroupNotFound
		case errors.Is(err, ErrVersionConflict):
			return DocumentGroupResponse{}, apperror.ErrConcurrencyConflict
		}
		s.logger.Error("update document group persist failed",
			zap.String("document_group_id", id),
			zap.Error(err),
		)
		return DocumentGroupResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update document group success", zap.String("document_group_id", id))
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return documentgrouperrors.ErrInvalidDocumentGroupID
	}
	return s.repo.Delete(ctx, uid)
}

// resolveTypeIDs memvalidasi bahwa setiap id merupakan tipe dokumen yang
// benar-benar ada pada tenant aktif
func (s *service) resolveTypeIDs(ctx context.Context, raw []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, rawID := range raw {
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, documentgrouperrors.ErrUnknownDocumentType
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, id := range ids {
		if _, err := s.typeRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, documentgrouperrors.ErrUnknownDocumentType
			}
			return nil, err
		}
	}
	return ids, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return documentgrouperrors.ErrCodeAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return documentgrouperrors.ErrCodeAlreadyExists
	}
	return err
}

func mapToResponse(g DocumentGroup) DocumentGroupResponse {
	typeIDs := make([]string, len(g.Items))
	for i, item := range g.Items {
		typeIDs[i] = item.DocumentTypeID.String()
	}
	return DocumentGroupResponse{
		ID:              g.ID.String(),
		Name:            g.Name,
		Code:            g.Code,
		IsActive:        g.IsActive,
		DocumentTypeIDs: typeIDs,
		Version:         g.Version,
	}
}
