package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodhub-be/internal/logger"
	"foodhub-be/internal/metrics"
	"foodhub-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultCustomerPageLimit = 10
	DefaultProviderPageLimit = 20
	MaxItemQuantity          = 100

	// orders.total_amount is NUMERIC(10,2).
	maxOrderTotal = 99_999_999.99

	estimatedDeliveryWindow = 45 * time.Minute
	placedNote              = "Order placed successfully"
	defaultCancelReason     = "Customer cancelled"
	defaultCancelNote       = "Cancelled by customer"
	dateLayout              = "2006-01-02"
)

type Service interface {
	CreateOrder(ctx context.Context, customerID uuid.UUID, in CreateInput) (*Order, error)
	GetCustomerOrders(ctx context.Context, customerID uuid.UUID, status Status, page utils.Page) ([]*Order, int64, error)
	GetOrderByID(ctx context.Context, actor Actor, id uuid.UUID) (*Order, error)
	UpdateOrderStatus(ctx context.Context, actor Actor, id uuid.UUID, status Status, note string) (*Order, error)
	CancelOrder(ctx context.Context, customerID, id uuid.UUID, reason string) (*Order, error)
	// GetProviderOrders lists the provider's orders, or every order for an
	// admin. date is optional and filters one local calendar day.
	GetProviderOrders(ctx context.Context, actor Actor, status Status, date string, page utils.Page) ([]*Order, int64, error)
	GetStatistics(ctx context.Context, actor Actor) (*Statistics, error)
	AdminListOrders(ctx context.Context, status Status, page utils.Page) ([]*Order, int64, error)
}

type service struct {
	repo    Repository
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewService builds the order service. m may be nil.
func NewService(repo Repository, m *metrics.Metrics) Service {
	return &service{repo: repo, metrics: m, now: time.Now}
}

// mergeItems sums quantities of repeated meals, keeping first-seen order.
func mergeItems(items []ItemInput) ([]ItemInput, error) {
	merged := make([]ItemInput, 0, len(items))
	index := make(map[uuid.UUID]int, len(items))
	for _, it := range items {
		if it.MealID == uuid.Nil {
			return nil, ErrMissingFields
		}
		if it.Quantity < 1 || it.Quantity > MaxItemQuantity {
			return nil, ErrInvalidQuantity
		}
		if i, ok := index[it.MealID]; ok {
			merged[i].Quantity += it.Quantity
			if merged[i].Quantity > MaxItemQuantity {
				return nil, ErrInvalidQuantity
			}
			continue
		}
		index[it.MealID] = len(merged)
		merged = append(merged, it)
	}
	return merged, nil
}

func (s *service) CreateOrder(ctx context.Context, customerID uuid.UUID, in CreateInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("customer_id", customerID.String()),
	)

	in.DeliveryAddress = strings.TrimSpace(in.DeliveryAddress)
	in.ContactPhone = strings.TrimSpace(in.ContactPhone)
	if len(in.Items) == 0 || in.DeliveryAddress == "" || in.ContactPhone == "" {
		return nil, ErrMissingFields
	}

	if in.PaymentMethod == "" {
		in.PaymentMethod = PaymentCashOnDelivery
	}
	if !in.PaymentMethod.Valid() {
		return nil, ErrInvalidPayment
	}

	items, err := mergeItems(in.Items)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.MealID
	}

	meals, err := s.repo.GetAvailableMeals(ctx, ids)
	if err != nil {
		log.Error("failed to load meals", zap.Error(err))
		return nil, err
	}
	if len(meals) != len(ids) {
		log.Info("order rejected, unavailable meals",
			zap.Int("requested", len(ids)),
			zap.Int("available", len(meals)),
		)
		return nil, ErrMealsUnavailable
	}

	byID := make(map[uuid.UUID]MealRef, len(meals))
	providerID := meals[0].ProviderID
	for _, m := range meals {
		if m.ProviderID != providerID {
			return nil, ErrMixedProviders
		}
		byID[m.ID] = m
	}

	now := s.now()
	eta := now.Add(estimatedDeliveryWindow)
	o := &Order{
		CustomerID:            customerID,
		ProviderID:            providerID,
		Status:                StatusPending,
		DeliveryAddress:       in.DeliveryAddress,
		ContactPhone:          in.ContactPhone,
		OrderNotes:            in.OrderNotes,
		PaymentMethod:         in.PaymentMethod,
		PaymentStatus:         PaymentPending,
		EstimatedDeliveryTime: &eta,
	}

	for _, it := range items {
		price := byID[it.MealID].Price
		o.Items = append(o.Items, &Item{
			MealID:       it.MealID,
			Quantity:     it.Quantity,
			PriceAtOrder: price,
		})
		o.TotalAmount += price * float64(it.Quantity)
	}
	if o.TotalAmount > maxOrderTotal {
		log.Info("order rejected, total too large", zap.Float64("total", o.TotalAmount))
		return nil, ErrTotalTooLarge
	}

	created, err := s.repo.Create(ctx, o, placedNote)
	if err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}
	s.metrics.OrderCreated()

	log.Info("order placed",
		zap.String("order_id", created.ID.String()),
		zap.Float64("total", created.TotalAmount),
	)

	return s.loadDetail(ctx, created.ID, false)
}

// loadDetail reloads an order with items, history and optionally reviews.
func (s *service) loadDetail(ctx context.Context, id uuid.UUID, withReviews bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ItemsByOrders(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	o.Items = items[id]

	if o.History, err = s.repo.History(ctx, id); err != nil {
		return nil, err
	}

	if withReviews {
		if o.Reviews, err = s.repo.Reviews(ctx, id); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (s *service) attachItems(ctx context.Context, orders []*Order) error {
	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := s.repo.ItemsByOrders(ctx, ids)
	if err != nil {
		return err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
		if o.Items == nil {
			o.Items = []*Item{}
		}
	}
	return nil
}

func (s *service) list(ctx context.Context, filter ListFilter) ([]*Order, int64, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if err := s.attachItems(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *service) GetCustomerOrders(ctx context.Context, customerID uuid.UUID, status Status, page utils.Page) ([]*Order, int64, error) {
	orders, total, err := s.list(ctx, ListFilter{CustomerID: &customerID, Status: status, Page: page})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list customer orders",
			zap.String("layer", "service"),
			zap.String("customer_id", customerID.String()),
			zap.Error(err),
		)
		return nil, 0, err
	}
	for _, o := range orders {
		o.Customer = nil
	}
	return orders, total, nil
}

func canView(actor Actor, o *Order) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleCustomer:
		return o.CustomerID == actor.ID
	case RoleProvider:
		return o.ProviderID == actor.ID
	}
	return false
}

func (s *service) GetOrderByID(ctx context.Context, actor Actor, id uuid.UUID) (*Order, error) {
	o, err := s.loadDetail(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if !canView(actor, o) {
		logger.FromCtx(ctx).Warn("order access denied",
			zap.String("order_id", id.String()),
			zap.String("actor_id", actor.ID.String()),
		)
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, actor Actor, id uuid.UUID, status Status, note string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", id.String()),
		zap.String("status", string(status)),
	)

	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case RoleAdmin:
	case RoleProvider:
		if o.ProviderID != actor.ID {
			return nil, ErrForbidden
		}
	case RoleCustomer:
		if o.CustomerID != actor.ID {
			return nil, ErrForbidden
		}
		if o.Status != StatusPending || status != StatusCancelled {
			return nil, ErrCustomerCancelOnly
		}
	default:
		return nil, ErrForbidden
	}

	if o.Status.IsTerminal() {
		log.Info("status change on terminal order", zap.String("current", string(o.Status)))
		return nil, ErrInvalidTransition
	}

	note = strings.TrimSpace(note)
	reason := note
	if note == "" {
		note = fmt.Sprintf("Order status updated to %s", status)
		reason = note
		if actor.Role == RoleCustomer {
			reason = defaultCancelReason
		}
	}

	update := StatusUpdate{
		OrderID: id,
		From:    []Status{o.Status},
		To:      status,
		Note:    note,
	}
	switch status {
	case StatusDelivered:
		paid := PaymentPaid
		at := s.now()
		update.PaymentStatus = &paid
		update.DeliveredAt = &at
	case StatusCancelled:
		update.CancellationReason = &reason
	}

	if err := s.repo.UpdateStatus(ctx, update); err != nil {
		if !errors.Is(err, ErrInvalidTransition) {
			log.Error("failed to update status", zap.Error(err))
		}
		return nil, err
	}
	s.metrics.OrderStatusChanged(string(status))

	log.Info("order status updated",
		zap.String("actor_id", actor.ID.String()),
		zap.String("previous", string(o.Status)),
	)

	return s.loadDetail(ctx, id, false)
}

func (s *service) CancelOrder(ctx context.Context, customerID, id uuid.UUID, reason string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CancelOrder"),
		zap.String("order_id", id.String()),
	)

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}
	if o.Status != StatusPending && o.Status != StatusConfirmed {
		return nil, ErrNotCancellable
	}

	reason = strings.TrimSpace(reason)
	cancelReason, note := defaultCancelReason, defaultCancelNote
	if reason != "" {
		cancelReason, note = reason, reason
	}

	err = s.repo.UpdateStatus(ctx, StatusUpdate{
		OrderID:            id,
		From:               []Status{StatusPending, StatusConfirmed},
		To:                 StatusCancelled,
		Note:               note,
		CancellationReason: &cancelReason,
	})
	if errors.Is(err, ErrInvalidTransition) {
		return nil, ErrNotCancellable
	}
	if err != nil {
		log.Error("failed to cancel order", zap.Error(err))
		return nil, err
	}
	s.metrics.OrderStatusChanged(string(StatusCancelled))

	log.Info("order cancelled by customer")
	return s.loadDetail(ctx, id, false)
}

func (s *service) GetProviderOrders(ctx context.Context, actor Actor, status Status, date string, page utils.Page) ([]*Order, int64, error) {
	filter := ListFilter{Status: status, Page: page}
	if actor.Role != RoleAdmin {
		filter.ProviderID = &actor.ID
	}

	if date = strings.TrimSpace(date); date != "" {
		day, err := time.ParseInLocation(dateLayout, date, s.now().Location())
		if err != nil {
			return nil, 0, ErrInvalidDate
		}
		next := day.AddDate(0, 0, 1)
		filter.From, filter.To = &day, &next
	}

	orders, total, err := s.list(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	latest, err := s.repo.LatestHistory(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, o := range orders {
		o.History = []*StatusHistory{}
		if h, ok := latest[o.ID]; ok {
			o.History = append(o.History, h)
		}
	}

	return orders, total, nil
}

func (s *service) GetStatistics(ctx context.Context, actor Actor) (*Statistics, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var providerID *uuid.UUID
	if actor.Role != RoleAdmin {
		providerID = &actor.ID
	}

	stats, err := s.repo.Statistics(ctx, providerID, midnight)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load order statistics", zap.Error(err))
		return nil, err
	}
	return stats, nil
}

func (s *service) AdminListOrders(ctx context.Context, status Status, page utils.Page) ([]*Order, int64, error) {
	return s.list(ctx, ListFilter{Status: status, Page: page})
}
