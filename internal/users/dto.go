package users

import (
	"strings"
	"time"

	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Role          enums.UserRole `json:"role"`
	WalletBalance int64          `json:"walletBalance"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Role          enums.UserRole
	WalletBalance int64
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		WalletBalance: u.WalletBalance,
		CreatedAt:     u.CreatedAt,
	}
}

func (dto CreateUserDTO) ToModel() *models.User {
	role := dto.Role
	if role == "" {
		role = enums.UserRoleCustomer
	}
	return &models.User{
		ID:            dto.ID,
		Name:          strings.TrimSpace(dto.Name),
		Email:         strings.ToLower(strings.TrimSpace(dto.Email)),
		PasswordHash:  dto.PasswordHash,
		Role:          role,
		WalletBalance: dto.WalletBalance,
	}
}
