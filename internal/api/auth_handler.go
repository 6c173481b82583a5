package api

import (
	"net/http"
	"strings"
	"time"

	"foodhub-be/internal/auth"
	"foodhub-be/internal/transport"
	"foodhub-be/internal/user"
)

type registerRequest struct {
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=6"`
	Role           string  `json:"role" validate:"omitempty,oneof=CUSTOMER PROVIDER ADMIN"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	RestaurantName string  `json:"restaurantName"`
	CuisineType    *string `json:"cuisineType"`
	Description    *string `json:"description"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type AuthHandler struct {
	users         user.Service
	secureCookies bool
	tokenTTL      time.Duration
}

func NewAuthHandler(users user.Service, secureCookies bool, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{users: users, secureCookies: secureCookies, tokenTTL: tokenTTL}
}

func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if h.secureCookies {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: sameSite,
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.users.Register(r.Context(), user.RegisterInput{
		Name:           strings.TrimSpace(req.Name),
		Email:          req.Email,
		Password:       req.Password,
		Role:           user.Role(req.Role),
		Phone:          req.Phone,
		Address:        req.Address,
		RestaurantName: req.RestaurantName,
		CuisineType:    req.CuisineType,
		Description:    req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setTokenCookie(w, res.Token, int(h.tokenTTL.Seconds()))
	transport.Success(w, http.StatusCreated, res, "Registration successful")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setTokenCookie(w, res.Token, int(h.tokenTTL.Seconds()))
	transport.Success(w, http.StatusOK, res, "Login successful")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setTokenCookie(w, "", -1)
	transport.Success(w, http.StatusOK, nil, "Logged out successfully")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	u, err := h.users.Me(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, u, "")
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.users.UpdateProfile(r.Context(), user.UpdateProfileParams{
		UserID:  id,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, u, "Profile updated successfully")
}
