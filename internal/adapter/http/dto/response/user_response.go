package response

import (
	"time"

	"motofinance/internal/domain/entities"
)

type UserProfileResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Role         string           `json:"role"`
	Active       bool             `json:"active"`
	Profile      entities.Profile `json:"profile"`
	Capabilities []string         `json:"capabilities"`
	CreatedAt    time.Time        `json:"created_at"`
}

func FromUser(u entities.User) UserProfileResponse {
	caps := entities.Capabilities(u.Role())
	names := make([]string, 0, len(caps))
	for _, c := range caps {
		names = append(names, string(c))
	}
	return UserProfileResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role()),
		Active:       u.Active,
		Profile:      u.Profile,
		Capabilities: names,
		CreatedAt:    u.CreatedAt,
	}
}
