package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodhub-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// GetAvailableMeals returns the available meals among ids. Missing or
	// unavailable ids are simply absent from the result.
	GetAvailableMeals(ctx context.Context, ids []uuid.UUID) ([]MealRef, error)
	// Create writes the order, its items and the initial history entry in
	// one transaction.
	Create(ctx context.Context, o *Order, note string) (*Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, int64, error)
	ItemsByOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]*Item, error)
	History(ctx context.Context, orderID uuid.UUID) ([]*StatusHistory, error)
	LatestHistory(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]*StatusHistory, error)
	Reviews(ctx context.Context, orderID uuid.UUID) ([]*Review, error)
	// UpdateStatus applies u and appends a history entry. It returns
	// ErrInvalidTransition when the order left u.From in the meantime.
	UpdateStatus(ctx context.Context, u StatusUpdate) error
	Statistics(ctx context.Context, providerID *uuid.UUID, since time.Time) (*Statistics, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderSelect = `
	SELECT o.id, o.customer_id, o.provider_id, o.status, o.total_amount,
		o.delivery_address, o.contact_phone, o.order_notes, o.payment_method,
		o.payment_status, o.cancellation_reason, o.estimated_delivery_time,
		o.actual_delivery_time, o.created_at, o.updated_at,
		cu.name, cu.email, cu.phone,
		pp.restaurant_name, pp.image_url, pu.phone
	FROM orders o
	JOIN users cu ON cu.id = o.customer_id
	JOIN users pu ON pu.id = o.provider_id
	JOIN provider_profiles pp ON pp.user_id = o.provider_id`

func scanOrder(scan func(dest ...any) error) (*Order, error) {
	o := Order{
		Customer: &CustomerSummary{},
		Provider: &ProviderSummary{},
	}
	err := scan(
		&o.ID, &o.CustomerID, &o.ProviderID, &o.Status, &o.TotalAmount,
		&o.DeliveryAddress, &o.ContactPhone, &o.OrderNotes, &o.PaymentMethod,
		&o.PaymentStatus, &o.CancellationReason, &o.EstimatedDeliveryTime,
		&o.ActualDeliveryTime, &o.CreatedAt, &o.UpdatedAt,
		&o.Customer.Name, &o.Customer.Email, &o.Customer.Phone,
		&o.Provider.RestaurantName, &o.Provider.ImageURL, &o.Provider.Phone,
	)
	if err != nil {
		return nil, err
	}
	o.Customer.ID = o.CustomerID
	o.Provider.ID = o.ProviderID
	return &o, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func statusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func (r *repository) GetAvailableMeals(ctx context.Context, ids []uuid.UUID) ([]MealRef, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, provider_id, price
		FROM meals
		WHERE id = ANY($1::uuid[]) AND is_available = TRUE
	`, pq.Array(uuidStrings(ids)))
	if err != nil {
		return nil, fmt.Errorf("query meals: %w", err)
	}
	defer rows.Close()

	var meals []MealRef
	for rows.Next() {
		var m MealRef
		if err := rows.Scan(&m.ID, &m.ProviderID, &m.Price); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

func (r *repository) Create(ctx context.Context, o *Order, note string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("customer_id", o.CustomerID.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// 1. Insert order
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			customer_id, provider_id, status, total_amount,
			delivery_address, contact_phone, order_notes,
			payment_method, payment_status, estimated_delivery_time
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at
	`,
		o.CustomerID,
		o.ProviderID,
		o.Status,
		o.TotalAmount,
		o.DeliveryAddress,
		o.ContactPhone,
		o.OrderNotes,
		o.PaymentMethod,
		o.PaymentStatus,
		o.EstimatedDeliveryTime,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, fmt.Errorf("insert order: %w", err)
	}

	// 2. Insert order items
	for _, item := range o.Items {
		item.OrderID = o.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, meal_id, quantity, price_at_order)
			VALUES ($1,$2,$3,$4)
			RETURNING id
		`, o.ID, item.MealID, item.Quantity, item.PriceAtOrder).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item", zap.String("meal_id", item.MealID.String()), zap.Error(err))
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	// 3. Initial history entry
	h := &StatusHistory{OrderID: o.ID, Status: o.Status, Note: &note}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO order_status_history (order_id, status, note)
		VALUES ($1,$2,$3)
		RETURNING id, created_at
	`, o.ID, o.Status, note).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		log.Error("failed to insert status history", zap.Error(err))
		return nil, fmt.Errorf("insert status history: %w", err)
	}
	o.History = []*StatusHistory{h}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}

	log.Info("order created", zap.String("order_id", o.ID.String()), zap.Int("items", len(o.Items)))
	return o, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, orderSelect+" WHERE o.id = $1", id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Order, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	where := []string{}
	args := []interface{}{}

	if filter.CustomerID != nil {
		where = append(where, fmt.Sprintf("o.customer_id = $%d", len(args)+1))
		args = append(args, *filter.CustomerID)
	}
	if filter.ProviderID != nil {
		where = append(where, fmt.Sprintf("o.provider_id = $%d", len(args)+1))
		args = append(args, *filter.ProviderID)
	}
	if filter.Status != "" {
		where = append(where, fmt.Sprintf("o.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.From != nil {
		where = append(where, fmt.Sprintf("o.created_at >= $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		where = append(where, fmt.Sprintf("o.created_at < $%d", len(args)+1))
		args = append(args, *filter.To)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders o"+whereSQL, args...).Scan(&total); err != nil {
		log.Error("failed to count orders", zap.Error(err))
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := orderSelect + whereSQL +
		" ORDER BY o.created_at DESC" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	log.Debug("executing list query", zap.String("query", query))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*Order, 0, filter.Page.Limit)
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *repository) ItemsByOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]*Item, error) {
	items := make(map[uuid.UUID][]*Item, len(orderIDs))
	if len(orderIDs) == 0 {
		return items, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.meal_id, oi.quantity, oi.price_at_order,
			m.name, m.image_url
		FROM order_items oi
		JOIN meals m ON m.id = oi.meal_id
		WHERE oi.order_id = ANY($1::uuid[])
		ORDER BY m.name
	`, pq.Array(uuidStrings(orderIDs)))
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MealID, &it.Quantity, &it.PriceAtOrder, &it.MealName, &it.MealImage); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items[it.OrderID] = append(items[it.OrderID], &it)
	}
	return items, rows.Err()
}

func scanHistory(rows *sql.Rows) (*StatusHistory, error) {
	var h StatusHistory
	if err := rows.Scan(&h.ID, &h.OrderID, &h.Status, &h.Note, &h.CreatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}

// History returns the order's entries, newest first.
func (r *repository) History(ctx context.Context, orderID uuid.UUID) ([]*StatusHistory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, status, note, created_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY created_at DESC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query status history: %w", err)
	}
	defer rows.Close()

	history := []*StatusHistory{}
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan status history: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

func (r *repository) LatestHistory(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]*StatusHistory, error) {
	latest := make(map[uuid.UUID]*StatusHistory, len(orderIDs))
	if len(orderIDs) == 0 {
		return latest, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT ON (order_id) id, order_id, status, note, created_at
		FROM order_status_history
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, created_at DESC
	`, pq.Array(uuidStrings(orderIDs)))
	if err != nil {
		return nil, fmt.Errorf("query latest history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan status history: %w", err)
		}
		latest[h.OrderID] = h
	}
	return latest, rows.Err()
}

func (r *repository) Reviews(ctx context.Context, orderID uuid.UUID) ([]*Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, meal_id, rating, comment, created_at
		FROM reviews
		WHERE order_id = $1
		ORDER BY created_at DESC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.MealID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order review: %w", err)
		}
		reviews = append(reviews, &rv)
	}
	return reviews, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, u StatusUpdate) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", u.OrderID.String()),
		zap.String("status", string(u.To)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $2,
			payment_status = COALESCE($3, payment_status),
			actual_delivery_time = COALESCE($4, actual_delivery_time),
			cancellation_reason = COALESCE($5, cancellation_reason),
			updated_at = NOW()
		WHERE id = $1 AND status = ANY($6)
	`, u.OrderID, u.To, u.PaymentStatus, u.DeliveredAt, u.CancellationReason, pq.Array(statusStrings(u.From)))
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return fmt.Errorf("update order status: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		log.Warn("order status changed concurrently")
		return ErrInvalidTransition
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_status_history (order_id, status, note)
		VALUES ($1,$2,$3)
	`, u.OrderID, u.To, u.Note)
	if err != nil {
		log.Error("failed to insert status history", zap.Error(err))
		return fmt.Errorf("insert status history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit status update: %w", err)
	}

	log.Info("order status updated")
	return nil
}

// Statistics aggregates over all orders when providerID is nil.
func (r *repository) Statistics(ctx context.Context, providerID *uuid.UUID, since time.Time) (*Statistics, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'CONFIRMED'),
			COUNT(*) FILTER (WHERE status = 'PREPARING'),
			COUNT(*) FILTER (WHERE status = 'READY_FOR_PICKUP'),
			COUNT(*) FILTER (WHERE status = 'OUT_FOR_DELIVERY'),
			COUNT(*) FILTER (WHERE status = 'DELIVERED'),
			COUNT(*) FILTER (WHERE status = 'CANCELLED'),
			COUNT(*) FILTER (WHERE created_at >= $1),
			COALESCE(SUM(total_amount) FILTER (WHERE status = 'DELIVERED'), 0)::float8
		FROM orders`
	args := []interface{}{since}
	if providerID != nil {
		query += " WHERE provider_id = $2"
		args = append(args, *providerID)
	}

	var s Statistics
	c := &s.ByStatus
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.Total, &c.Pending, &c.Confirmed, &c.Preparing, &c.ReadyForPickup,
		&c.OutForDelivery, &c.Delivered, &c.Cancelled, &s.Today, &s.Revenue,
	)
	if err != nil {
		return nil, fmt.Errorf("order statistics: %w", err)
	}
	return &s, nil
}
