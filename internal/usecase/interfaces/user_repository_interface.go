package interfaces

import (
	"context"
	"motofinance/internal/domain/entities"
)

// IUserRepository reads user profiles from the collection of their role.

type IUserRepository interface {
	GetByID(ctx context.Context, role entities.Role, id string) (entities.User, error)
}
