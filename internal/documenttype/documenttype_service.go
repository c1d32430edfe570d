package documenttype

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	documenttypeerrors "go-doctask/internal/documenttype/errors"
	"go-doctask/internal/shared/apperror"
	"go-doctask/internal/tenant"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const optionsCacheTTL = 5 * time.Minute

//go:generate mockgen -source=documenttype_service.go -destination=mock/documenttype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDocumentTypeRequest) (DocumentTypeResponse, error)
	GetAll(ctx context.Context) ([]DocumentTypeResponse, error)
	GetByID(ctx context.Context, id string) (DocumentTypeResponse, error)
	GetOptions(ctx context.Context) ([]DocumentTypeOption, error)
	Update(ctx context.Context, id string, req UpdateDocumentTypeRequest) (DocumentTypeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("documenttype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("documenttype.service")
	}
	return &service{repo: repo, rdb: rdb, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDocumentTypeRequest) (DocumentTypeResponse, error) {
	dt := &DocumentType{
		ID:        uuid.New(),
		CompanyID: tenant.CompanyID(ctx),
		Name:      strings.TrimSpace(req.Name),
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		IsActive:  true,
		Version:   1,
	}

	if err := s.repo.Create(ctx, dt); err != nil {
		s.logger.Error("create document type persist failed", zap.Error(err))
		return DocumentTypeResponse{}, mapRepositoryError(err)
	}
	s.invalidateOptions(ctx)

	s.logger.Info("create document type success",
		zap.String("document_type_id", dt.ID.String()),
		zap.String("code", dt.Code),
	)
	return mapToResponse(*dt), nil
}

func (s *service) GetAll(ctx context.Context) ([]DocumentTypeResponse, error) {
	types, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]DocumentTypeResponse, len(types))
	for i, dt := range types {
		resp[i] = mapToResponse(dt)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DocumentTypeResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return DocumentTypeResponse{}, documenttypeerrors.ErrInvalidDocumentTypeID
	}

	dt, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DocumentTypeResponse{}, documenttypeerrors.ErrDocumentTypeNotFound
		}
		return DocumentTypeResponse{}, err
	}
	return mapToResponse(*dt), nil
}

// GetOptions melayani dropdown pemilihan tipe dokumen; hasil di-cache per
// tenant dan pengisian cache dijaga singleflight supaya cache-miss serentak
// hanya memukul database sekali
func (s *service) GetOptions(ctx context.Context) ([]DocumentTypeOption, error) {
	key := s.optionsCacheKey(ctx)

	if s.rdb != nil {
		if payload, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var cached []DocumentTypeOption
			if jsonErr := json.Unmarshal(payload, &cached); jsonErr == nil {
				return cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("document type options cache read failed", zap.Error(err))
		}
	}

	result, err, _ := s.sf.Do(key, func() (any, error) {
		types, err := s.repo.FindActive(ctx)
		if err != nil {
			return nil, err
		}

		options := make([]DocumentTypeOption, len(types))
		for i, dt := range types {
			options[i] = DocumentTypeOption{
				ID:   dt.ID.String(),
				Name: dt.Name,
				Code: dt.Code,
			}
		}

		if s.rdb != nil {
			if payload, marshalErr := json.Marshal(options); marshalErr == nil {
				if setErr := s.rdb.Set(ctx, key, payload, optionsCacheTTL).Err(); setErr != nil {
					s.logger.Warn("document type options cache write failed", zap.Error(setErr))
				}
			}
		}
		return options, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]DocumentTypeOption), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDocumentTypeRequest) (DocumentTypeResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return DocumentTypeResponse{}, documenttypeerrors.ErrInvalidDocumentTypeID
	}

	dt := &DocumentType{
		ID:       uid,
		Name:     strings.TrimSpace(req.Name),
		Code:     strings.ToUpper(strings.TrimSpace(req.Code)),
		IsActive: req.IsActive != nil && *req.IsActive,
	}

	if err := s.repo.Update(ctx, dt, req.Version); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return DocumentTypeResponse{}, documenttypeerrors.ErrDocumentTypeNotFound
		case errors.Is(err, ErrVersionConflict):
			return DocumentTypeResponse{}, apperror.ErrConcurrencyConflict
		}
		s.logger.Error("update document type persist failed",
			zap.String("document_type_id", id),
			zap.Error(err),
		)
		return DocumentTypeResponse{}, mapRepositoryError(err)
	}
	s.invalidateOptions(ctx)

	s.logger.Info("update document type success", zap.String("document_type_id", id))
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return documenttypeerrors.ErrInvalidDocumentTypeID
	}
	if err := s.repo.Delete(ctx, uid); err != nil {
		return err
	}
	s.invalidateOptions(ctx)
	return nil
}

func (s *service) optionsCacheKey(ctx context.Context) string {
	return "doctask:document_type_options:" + tenant.CompanyID(ctx).String()
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, s.optionsCacheKey(ctx)).Err(); err != nil {
		s.logger.Warn("document type options cache invalidation failed", zap.Error(err))
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return documenttypeerrors.ErrCodeAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return documenttypeerrors.ErrCodeAlreadyExists
	}
	return err
}

func mapToResponse(dt DocumentType) DocumentTypeResponse {
	return DocumentTypeResponse{
		ID:       dt.ID.String(),
		Name:     dt.Name,
		Code:     dt.Code,
		IsActive: dt.IsActive,
		Version:  dt.Version,
	}
}
