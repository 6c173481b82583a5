package api

import (
	"net/http"
	"strings"

	"foodhub-be/internal/meal"
	"foodhub-be/internal/transport"
	"foodhub-be/internal/utils"
)

type createMealRequest struct {
	CategoryID  string   `json:"categoryId" validate:"required,uuid"`
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Price       float64  `json:"price" validate:"gt=0"`
	ImageURL    *string  `json:"imageUrl"`
	DietaryInfo []string `json:"dietaryInfo"`
	PrepTime    *int     `json:"prepTime" validate:"omitempty,min=0"`
	IsAvailable *bool    `json:"isAvailable"`
}

type updateMealRequest struct {
	CategoryID  *string  `json:"categoryId" validate:"omitempty,uuid"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	DietaryInfo []string `json:"dietaryInfo"`
	PrepTime    *int     `json:"prepTime" validate:"omitempty,min=0"`
	IsAvailable *bool    `json:"isAvailable"`
}

type MealHandler struct {
	meals meal.Service
}

func NewMealHandler(meals meal.Service) *MealHandler {
	return &MealHandler{meals: meals}
}

func (h *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := queryID(w, r, "categoryId")
	if !ok {
		return
	}
	providerID, ok := queryID(w, r, "providerId")
	if !ok {
		return
	}
	minPrice, ok := queryFloat(w, r, "minPrice")
	if !ok {
		return
	}
	maxPrice, ok := queryFloat(w, r, "maxPrice")
	if !ok {
		return
	}

	q := r.URL.Query()
	page := pageFrom(r, meal.DefaultPageLimit)
	meals, total, err := h.meals.ListMeals(r.Context(), meal.ListFilter{
		Search:     strings.TrimSpace(q.Get("search")),
		CategoryID: categoryID,
		ProviderID: providerID,
		Dietary:    strings.TrimSpace(q.Get("dietary")),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Page:       page,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Paginated(w, meals, page, total)
}

func (h *MealHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	m, err := h.meals.GetMeal(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, m, "")
}

// ListOwn returns every meal of the calling provider, unavailable ones included.
func (h *MealHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	providerID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	page := pageFrom(r, meal.DefaultPageLimit)
	meals, total, err := h.meals.ListProviderMeals(r.Context(), providerID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Paginated(w, meals, page, total)
}

func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	providerID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createMealRequest
	if !decode(w, r, &req) {
		return
	}
	// validated above
	categoryID, _ := utils.ParseUUID(req.CategoryID)

	m, err := h.meals.CreateMeal(r.Context(), meal.CreateParams{
		ProviderID:  providerID,
		CategoryID:  categoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		DietaryInfo: req.DietaryInfo,
		PrepTime:    req.PrepTime,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusCreated, m, "Meal created successfully")
}

func (h *MealHandler) Update(w http.ResponseWriter, r *http.Request) {
	providerID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateMealRequest
	if !decode(w, r, &req) {
		return
	}

	p := meal.UpdateParams{
		ID:          id,
		ProviderID:  providerID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		DietaryInfo: req.DietaryInfo,
		PrepTime:    req.PrepTime,
		IsAvailable: req.IsAvailable,
	}
	if req.CategoryID != nil {
		categoryID, _ := utils.ParseUUID(*req.CategoryID)
		p.CategoryID = &categoryID
	}

	m, err := h.meals.UpdateMeal(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, m, "Meal updated successfully")
}

func (h *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	providerID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.meals.DeleteMeal(r.Context(), providerID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	msg := "Meal deleted successfully"
	if !deleted {
		msg = "Meal has existing orders and was marked unavailable"
	}
	transport.Success(w, http.StatusOK, nil, msg)
}
