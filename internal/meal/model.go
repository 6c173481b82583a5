package meal

import (
	"time"

	"foodhub-be/internal/review"
	"foodhub-be/internal/utils"

	"github.com/google/uuid"
)

type Meal struct {
	ID          uuid.UUID  `json:"id"`
	ProviderID  uuid.UUID  `json:"providerId"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Price       float64    `json:"price"`
	ImageURL    *string    `json:"imageUrl"`
	DietaryInfo []string   `json:"dietaryInfo"`
	PrepTime    *int       `json:"prepTime"`
	IsAvailable bool       `json:"isAvailable"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	CategoryName   *string `json:"categoryName,omitempty"`
	RestaurantName *string `json:"restaurantName,omitempty"`
}

// Detail is a meal with its rating summary and latest reviews.
type Detail struct {
	*Meal
	review.Summary
	Reviews []*review.Review `json:"reviews"`
}

type ListFilter struct {
	Search        string
	CategoryID    *uuid.UUID
	ProviderID    *uuid.UUID
	Dietary       string
	MinPrice      *float64
	MaxPrice      *float64
	AvailableOnly bool
	Page          utils.Page
}

type CreateParams struct {
	ProviderID  uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Description *string
	Price       float64
	ImageURL    *string
	DietaryInfo []string
	PrepTime    *int
	IsAvailable *bool
}

// UpdateParams holds a partial update. Nil fields are left unchanged.
type UpdateParams struct {
	ID          uuid.UUID
	ProviderID  uuid.UUID
	CategoryID  *uuid.UUID
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	DietaryInfo []string
	PrepTime    *int
	IsAvailable *bool
}
