package order

import (
	"time"

	"foodhub-be/internal/utils"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending        Status = "PENDING"
	StatusConfirmed      Status = "CONFIRMED"
	StatusPreparing      Status = "PREPARING"
	StatusReadyForPickup Status = "READY_FOR_PICKUP"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReadyForPickup,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	PaymentCard           PaymentMethod = "CARD"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCashOnDelivery || m == PaymentCard
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

const (
	RoleCustomer = "CUSTOMER"
	RoleProvider = "PROVIDER"
	RoleAdmin    = "ADMIN"
)

// Actor is the authenticated caller of an order operation.
type Actor struct {
	ID   uuid.UUID
	Role string
}

type Order struct {
	ID                    uuid.UUID     `json:"id"`
	CustomerID            uuid.UUID     `json:"customerId"`
	ProviderID            uuid.UUID     `json:"providerId"`
	Status                Status        `json:"status"`
	TotalAmount           float64       `json:"totalAmount"`
	DeliveryAddress       string        `json:"deliveryAddress"`
	ContactPhone          string        `json:"contactPhone"`
	OrderNotes            *string       `json:"orderNotes"`
	PaymentMethod         PaymentMethod `json:"paymentMethod"`
	PaymentStatus         PaymentStatus `json:"paymentStatus"`
	CancellationReason    *string       `json:"cancellationReason"`
	EstimatedDeliveryTime *time.Time    `json:"estimatedDeliveryTime"`
	ActualDeliveryTime    *time.Time    `json:"actualDeliveryTime"`
	CreatedAt             time.Time     `json:"createdAt"`
	UpdatedAt             time.Time     `json:"updatedAt"`

	Items    []*Item          `json:"orderItems"`
	Customer *CustomerSummary `json:"customer,omitempty"`
	Provider *ProviderSummary `json:"provider,omitempty"`
	History  []*StatusHistory `json:"statusHistory"`
	Reviews  []*Review        `json:"reviews,omitempty"`
}

type Item struct {
	ID           uuid.UUID `json:"id"`
	OrderID      uuid.UUID `json:"orderId"`
	MealID       uuid.UUID `json:"mealId"`
	Quantity     int       `json:"quantity"`
	PriceAtOrder float64   `json:"priceAtOrder"`
	MealName     string    `json:"mealName"`
	MealImage    *string   `json:"mealImage"`
}

type CustomerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone *string   `json:"phone"`
}

type ProviderSummary struct {
	ID             uuid.UUID `json:"id"`
	RestaurantName string    `json:"restaurantName"`
	ImageURL       *string   `json:"imageUrl"`
	Phone          *string   `json:"phone"`
}

type StatusHistory struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"orderId"`
	Status    Status    `json:"status"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

type Review struct {
	ID        uuid.UUID `json:"id"`
	MealID    uuid.UUID `json:"mealId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type StatusCounts struct {
	Pending        int64 `json:"pending"`
	Confirmed      int64 `json:"confirmed"`
	Preparing      int64 `json:"preparing"`
	ReadyForPickup int64 `json:"readyForPickup"`
	OutForDelivery int64 `json:"outForDelivery"`
	Delivered      int64 `json:"delivered"`
	Cancelled      int64 `json:"cancelled"`
}

type Statistics struct {
	Total    int64        `json:"total"`
	ByStatus StatusCounts `json:"byStatus"`
	Today    int64        `json:"today"`
	Revenue  float64      `json:"revenue"`
}

type ItemInput struct {
	MealID   uuid.UUID
	Quantity int
}

type CreateInput struct {
	Items           []ItemInput
	DeliveryAddress string
	ContactPhone    string
	OrderNotes      *string
	PaymentMethod   PaymentMethod
}

// MealRef is the slice of a meal needed to price an order line.
type MealRef struct {
	ID         uuid.UUID
	ProviderID uuid.UUID
	Price      float64
}

type ListFilter struct {
	CustomerID *uuid.UUID
	ProviderID *uuid.UUID
	Status     Status
	From       *time.Time
	To         *time.Time
	Page       utils.Page
}

// StatusUpdate moves an order to To only while its status is one of From.
type StatusUpdate struct {
	OrderID            uuid.UUID
	From               []Status
	To                 Status
	Note               string
	PaymentStatus      *PaymentStatus
	DeliveredAt        *time.Time
	CancellationReason *string
}
