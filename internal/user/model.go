package user

import (
	"time"

	"foodhub-be/internal/provider"
	"foodhub-be/internal/utils"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusSuspended
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Status       Status    `json:"status"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	ProviderProfile *provider.Profile `json:"providerProfile,omitempty"`
}

type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Role           Role
	Phone          *string
	Address        *string
	RestaurantName string
	CuisineType    *string
	Description    *string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type UpdateProfileParams struct {
	UserID  uuid.UUID
	Name    *string
	Phone   *string
	Address *string
}

type ListFilter struct {
	Role Role
	Page utils.Page
}
