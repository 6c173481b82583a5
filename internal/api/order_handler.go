package api

import (
	"errors"
	"net/http"
	"strings"

	"foodhub-be/internal/order"
	"foodhub-be/internal/transport"
	"foodhub-be/internal/utils"
)

type orderItemRequest struct {
	MealID   string `json:"mealId"`
	Quantity int    `json:"quantity"`
}

// Presence checks live in the service so every missing field maps to the
// same message.
type createOrderRequest struct {
	Items           []orderItemRequest `json:"items"`
	DeliveryAddress string             `json:"deliveryAddress"`
	ContactPhone    string             `json:"contactPhone"`
	OrderNotes      *string            `json:"orderNotes"`
	PaymentMethod   string             `json:"paymentMethod"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func actorFrom(w http.ResponseWriter, r *http.Request) (order.Actor, bool) {
	id, role, ok := currentUser(w, r)
	if !ok {
		return order.Actor{}, false
	}
	return order.Actor{ID: id, Role: role}, true
}

// orderStatusQuery reads the optional status filter.
func orderStatusQuery(w http.ResponseWriter, r *http.Request) (order.Status, bool) {
	raw := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status")))
	if raw == "" {
		return "", true
	}
	status := order.Status(raw)
	if !status.Valid() {
		writeError(w, r, order.ErrInvalidStatus)
		return "", false
	}
	return status, true
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	customerID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createOrderRequest
	if !decode(w, r, &req) {
		return
	}

	in := order.CreateInput{
		Items:           make([]order.ItemInput, 0, len(req.Items)),
		DeliveryAddress: req.DeliveryAddress,
		ContactPhone:    req.ContactPhone,
		OrderNotes:      req.OrderNotes,
		PaymentMethod:   order.PaymentMethod(strings.ToUpper(strings.TrimSpace(req.PaymentMethod))),
	}
	for _, it := range req.Items {
		if strings.TrimSpace(it.MealID) == "" {
			writeError(w, r, order.ErrMissingFields)
			return
		}
		mealID, ok := utils.ParseUUID(it.MealID)
		if !ok {
			transport.Error(w, http.StatusBadRequest, "Invalid mealId")
			return
		}
		in.Items = append(in.Items, order.ItemInput{MealID: mealID, Quantity: it.Quantity})
	}

	o, err := h.orders.CreateOrder(r.Context(), customerID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusCreated, o, "Order placed successfully! Provider will confirm shortly.")
}

func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	customerID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	status, ok := orderStatusQuery(w, r)
	if !ok {
		return
	}

	page := pageFrom(r, order.DefaultCustomerPageLimit)
	orders, total, err := h.orders.GetCustomerOrders(r.Context(), customerID, status, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Paginated(w, orders, page, total)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	o, err := h.orders.GetOrderByID(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, o, "")
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateOrderStatusRequest
	if !decode(w, r, &req) {
		return
	}

	status := order.Status(strings.ToUpper(strings.TrimSpace(req.Status)))
	o, err := h.orders.UpdateOrderStatus(r.Context(), actor, id, status, req.Note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, o, "Order status updated to "+string(status))
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	customerID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	// the body is optional
	var req cancelOrderRequest
	if err := transport.DecodeJSON(r, &req); err != nil && !errors.Is(err, transport.ErrEmptyBody) {
		transport.Error(w, http.StatusBadRequest, upperFirst(err.Error()))
		return
	}

	o, err := h.orders.CancelOrder(r.Context(), customerID, id, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, o, "Order cancelled successfully")
}

func (h *OrderHandler) ProviderOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	status, ok := orderStatusQuery(w, r)
	if !ok {
		return
	}

	page := pageFrom(r, order.DefaultProviderPageLimit)
	orders, total, err := h.orders.GetProviderOrders(r.Context(), actor, status, r.URL.Query().Get("date"), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Paginated(w, orders, page, total)
}

func (h *OrderHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	stats, err := h.orders.GetStatistics(r.Context(), actor)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, stats, "")
}
