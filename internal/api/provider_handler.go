package api

import (
	"net/http"
	"strings"

	"foodhub-be/internal/provider"
	"foodhub-be/internal/transport"
)

type updateProviderProfileRequest struct {
	RestaurantName *string `json:"restaurantName"`
	Description    *string `json:"description"`
	CuisineType    *string `json:"cuisineType"`
	Address        *string `json:"address"`
	ImageURL       *string `json:"imageUrl"`
}

type ProviderHandler struct {
	providers provider.Service
}

func NewProviderHandler(providers provider.Service) *ProviderHandler {
	return &ProviderHandler{providers: providers}
}

func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pageFrom(r, provider.DefaultPageLimit)
	providers, total, err := h.providers.ListProviders(r.Context(), provider.ListFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Page:   page,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Paginated(w, providers, page, total)
}

func (h *ProviderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.providers.GetProvider(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, p, "")
}

func (h *ProviderHandler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	id, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	p, err := h.providers.GetOwnProfile(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, p, "")
}

func (h *ProviderHandler) UpdateOwnProfile(w http.ResponseWriter, r *http.Request) {
	id, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req updateProviderProfileRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := h.providers.UpdateOwnProfile(r.Context(), provider.UpdateProfileParams{
		UserID:         id,
		RestaurantName: req.RestaurantName,
		Description:    req.Description,
		CuisineType:    req.CuisineType,
		Address:        req.Address,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, p, "Profile updated successfully")
}
