package usecase

import (
	"context"
	"errors"
	"strings"

	"motofinance/internal/domain/entities"
	"motofinance/internal/usecase/interfaces"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserInactive = errors.New("user inactive")
	ErrInvalidRole  = errors.New("invalid role")
	ErrInvalidUser  = errors.New("invalid user id")
)

type IUserUseCase interface {
	GetProfile(ctx context.Context, role entities.Role, id string) (entities.User, error)
}

type UserUseCase struct {
	repo interfaces.IUserRepository
}

var _ IUserUseCase = (*UserUseCase)(nil)

func NewUserUseCase(repo interfaces.IUserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

func (u *UserUseCase) GetProfile(ctx context.Context, role entities.Role, id string) (entities.User, error) {
	if !role.Valid() {
		return entities.User{}, ErrInvalidRole
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.User{}, ErrInvalidUser
	}

	user, err := u.repo.GetByID(ctx, role, id)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	if !user.Active {
		return entities.User{}, ErrUserInactive
	}
	return user, nil
}
