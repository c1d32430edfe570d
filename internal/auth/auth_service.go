package auth

import (
	"context"
	"os"
	"time"

	autherrors "go-doctask/internal/auth/errors"
	"go-doctask/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
}

type service struct {
	users user.Repository
}

func NewService(users user.Repository) Service {
	return &service{users: users}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, string, AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrUserInactive
	}

	companyID, role, err := s.resolveCompanyRole(ctx, u.ID, req.CompanyID)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	accessToken, err := s.generateToken(u.ID.String(), companyID, role, 15*time.Minute)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(u.ID.String(), companyID, role, 7*24*time.Hour)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, AuthResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		CompanyID: companyID,
		Role:      role,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, _ := claims["user_id"].(string)
	companyID, _ := claims["company_id"].(string)
	role, _ := claims["role"].(string)

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil || !u.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	newAccessToken, err := s.generateToken(u.ID.String(), companyID, role, 15*time.Minute)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(u.ID.String(), companyID, role, 7*24*time.Hour)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, AuthResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		CompanyID: companyID,
		Role:      role,
	}, nil
}

// resolveCompanyRole memilih company aktif untuk sesi login.
// Kalau request menyebut company, role user di company itu yang dipakai;
// kalau tidak, pakai role pertama yang dimiliki user.
func (s *service) resolveCompanyRole(ctx context.Context, userID uuid.UUID, requestedCompanyID string) (string, string, error) {
	roles, err := s.users.RolesByUser(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if len(roles) == 0 {
		return "", "", nil
	}

	if requestedCompanyID != "" {
		for _, r := range roles {
			if r.CompanyID.String() == requestedCompanyID {
				return r.CompanyID.String(), r.Role, nil
			}
		}
		return "", "", autherrors.ErrNoCompanyRole
	}

	return roles[0].CompanyID.String(), roles[0].Role, nil
}

func (s *service) generateToken(userID, companyID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"company_id": companyID,
		"role":       role,
		"exp":        time.Now().Add(ttl).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
