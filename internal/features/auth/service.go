package auth

import (
	"context"
	"errors"

	"jzf-portal/internal/common/models"
	"jzf-portal/internal/features/user"
	"jzf-portal/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("usuário ou senha inválidos")

type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, u *models.User, err error)
}

type AuthServiceImpl struct {
	UserRepo user.UserRepository
}

func NewAuthService(userRepo user.UserRepository) AuthService {
	return &AuthServiceImpl{UserRepo: userRepo}
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	u, err := s.UserRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	clientIDs := make([]string, 0, len(u.ClientIDs))
	for _, id := range u.ClientIDs {
		clientIDs = append(clientIDs, id.Hex())
	}

	token, err := utils.GenerateToken(u.ID, u.Name, string(u.Role), clientIDs)
	if err != nil {
		return "", nil, err
	}

	_ = s.UserRepo.UpdateLastLogin(ctx, u.ID)

	return token, u, nil
}
