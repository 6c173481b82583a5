package category

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	MealCount   int       `json:"mealCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateParams struct {
	Name        string
	Description *string
	ImageURL    *string
}

type UpdateParams struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	ImageURL    *string
}
