package api

import (
	"net/http"
	"strings"

	"foodhub-be/internal/order"
	"foodhub-be/internal/transport"
	"foodhub-be/internal/user"
)

type updateUserStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminHandler serves the platform administration routes.
type AdminHandler struct {
	users  user.Service
	orders order.Service
}

func NewAdminHandler(users user.Service, orders order.Service) *AdminHandler {
	return &AdminHandler{users: users, orders: orders}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	role := user.Role(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("role"))))
	if role != "" && !role.Valid() {
		writeError(w, r, user.ErrInvalidRole)
		return
	}

	page := pageFrom(r, user.DefaultPageLimit)
	users, total, err := h.users.ListUsers(r.Context(), user.ListFilter{Role: role, Page: page})
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Paginated(w, users, page, total)
}

func (h *AdminHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	targetID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateUserStatusRequest
	if !decode(w, r, &req) {
		return
	}

	status := user.Status(strings.ToUpper(req.Status))
	u, err := h.users.UpdateUserStatus(r.Context(), actorID, targetID, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, u, "User status updated to "+string(status))
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	status, ok := orderStatusQuery(w, r)
	if !ok {
		return
	}

	page := pageFrom(r, order.DefaultProviderPageLimit)
	orders, total, err := h.orders.AdminListOrders(r.Context(), status, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Paginated(w, orders, page, total)
}
