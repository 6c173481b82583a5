package api

import (
	"net/http"

	"foodhub-be/internal/review"
	"foodhub-be/internal/transport"
	"foodhub-be/internal/utils"
)

type createReviewRequest struct {
	OrderID string  `json:"orderId" validate:"required,uuid"`
	MealID  string  `json:"mealId" validate:"required,uuid"`
	Rating  int     `json:"rating" validate:"required"`
	Comment *string `json:"comment"`
}

type mealReviewsResponse struct {
	Success       bool                  `json:"success"`
	Data          []*review.Review      `json:"data"`
	AverageRating float64               `json:"averageRating"`
	Pagination    *transport.Pagination `json:"pagination"`
}

type ReviewHandler struct {
	reviews review.Service
}

func NewReviewHandler(reviews review.Service) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	customerID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createReviewRequest
	if !decode(w, r, &req) {
		return
	}
	orderID, _ := utils.ParseUUID(req.OrderID)
	mealID, _ := utils.ParseUUID(req.MealID)

	rv, err := h.reviews.CreateReview(r.Context(), customerID, review.CreateInput{
		OrderID: orderID,
		MealID:  mealID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusCreated, rv, "Review submitted successfully")
}

func (h *ReviewHandler) ListForMeal(w http.ResponseWriter, r *http.Request) {
	mealID, ok := pathID(w, r, "mealId")
	if !ok {
		return
	}

	page := pageFrom(r, review.DefaultPageLimit)
	res, err := h.reviews.ListMealReviews(r.Context(), mealID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	transport.JSON(w, http.StatusOK, mealReviewsResponse{
		Success:       true,
		Data:          res.Reviews,
		AverageRating: res.AverageRating,
		Pagination: &transport.Pagination{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      res.Total,
			TotalPages: utils.TotalPages(res.Total, page.Limit),
		},
	})
}

func (h *ReviewHandler) Mine(w http.ResponseWriter, r *http.Request) {
	customerID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	page := pageFrom(r, review.DefaultPageLimit)
	reviews, total, err := h.reviews.ListMyReviews(r.Context(), customerID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.Paginated(w, reviews, page, total)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, role, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.reviews.DeleteReview(r.Context(), actorID, role, id); err != nil {
		writeError(w, r, err)
		return
	}
	transport.Success(w, http.StatusOK, nil, "Review deleted successfully")
}
