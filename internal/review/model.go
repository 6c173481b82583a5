package review

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID           uuid.UUID `json:"id"`
	CustomerID   uuid.UUID `json:"customerId"`
	MealID       uuid.UUID `json:"mealId"`
	OrderID      uuid.UUID `json:"orderId"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
	CustomerName string    `json:"customerName,omitempty"`
	MealName     string    `json:"mealName,omitempty"`
}

type CreateInput struct {
	OrderID uuid.UUID
	MealID  uuid.UUID
	Rating  int
	Comment *string
}

// MealReviews is one page of a meal's reviews plus its overall rating.
type MealReviews struct {
	Reviews       []*Review `json:"reviews"`
	AverageRating float64   `json:"averageRating"`
	Total         int64     `json:"total"`
}

// Summary is the aggregate rating of a meal.
type Summary struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}
