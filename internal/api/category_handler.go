package api

import (
	"net/http"
	"strings"

	"foodhub-be/internal/category"
	"foodhub-be/internal/transport"
)

type categoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

type CategoryHandler struct {
	categories category.Service
}

func NewCategoryHandler(categories category.Service) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.GetCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, cats, "")
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.categories.GetCategory(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, c, "")
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decode(w, r, &req) {
		return
	}

	c, err := h.categories.AddCategory(r.Context(), category.CreateParams{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusCreated, c, "Category created successfully")
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateCategoryRequest
	if !decode(w, r, &req) {
		return
	}

	c, err := h.categories.UpdateCategory(r.Context(), category.UpdateParams{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, c, "Category updated successfully")
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.categories.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, nil, "Category deleted successfully")
}
