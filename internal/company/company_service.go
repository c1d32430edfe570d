package company

import (
	"context"
	"errors"
	"strings"
	"time"

	companyerrors "go-doctask/internal/company/errors"
	"go-doctask/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetAll(ctx context.Context) ([]CompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return CompanyResponse{}, companyerrors.ErrMissingName
	}

	tz := req.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		s.logger.Warn("create company unknown time zone, falling back to UTC",
			zap.String("time_zone", tz),
		)
		tz = "UTC"
	}

	id := uuid.New()
	c := &Company{
		ID:        id,
		CompanyID: id,
		Name:      req.Name,
		TimeZone:  tz,
		Version:   1,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("create company persist failed", zap.Error(err))
		return CompanyResponse{}, err
	}

	s.logger.Info("create company success", zap.String("company_id", c.ID.String()))
	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context) ([]CompanyResponse, error) {
	companies, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		resp[i] = mapToResponse(c)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	c, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, companyerrors.ErrCompanyNotFound
		}
		return CompanyResponse{}, err
	}
	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	// Zona waktu kosong dipertahankan apa adanya; repository tidak akan
	// menimpa kolom time_zone untuk nilai kosong
	tz := strings.TrimSpace(req.TimeZone)
	if tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			tz = "UTC"
		}
	}

	c := &Company{
		ID:       uid,
		Name:     req.Name,
		TimeZone: tz,
	}

	if err := s.repo.Update(ctx, c, req.Version); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return CompanyResponse{}, companyerrors.ErrCompanyNotFound
		case errors.Is(err, ErrVersionConflict):
			return CompanyResponse{}, apperror.ErrConcurrencyConflict
		}
		s.logger.Error("update company persist failed",
			zap.String("company_id", id),
			zap.Error(err),
		)
		return CompanyResponse{}, err
	}

	s.logger.Info("update company success", zap.String("company_id", id))
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return companyerrors.ErrInvalidCompanyID
	}
	return s.repo.Delete(ctx, uid)
}

func mapToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		TimeZone:  c.TimeZone,
		Version:   c.Version,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
