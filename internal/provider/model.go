package provider

import (
	"time"

	"foodhub-be/internal/meal"
	"foodhub-be/internal/utils"

	"github.com/google/uuid"
)

// Profile is keyed by the provider's user id.
type Profile struct {
	UserID         uuid.UUID `json:"id"`
	RestaurantName string    `json:"restaurantName"`
	Description    *string   `json:"description"`
	CuisineType    *string   `json:"cuisineType"`
	Address        *string   `json:"address"`
	ImageURL       *string   `json:"imageUrl"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Provider struct {
	Profile
	OwnerName string       `json:"ownerName"`
	Phone     *string      `json:"phone"`
	MealCount int          `json:"mealCount"`
	Meals     []*meal.Meal `json:"meals,omitempty"`
}

type ListFilter struct {
	Search string
	Page   utils.Page
}

type UpdateProfileParams struct {
	UserID         uuid.UUID
	RestaurantName *string
	Description    *string
	CuisineType    *string
	Address        *string
	ImageURL       *string
}
