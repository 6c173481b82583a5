package api

import (
	"errors"
	"net/http"

	"foodhub-be/internal/category"
	"foodhub-be/internal/chat"
	"foodhub-be/internal/logger"
	"foodhub-be/internal/meal"
	"foodhub-be/internal/nutrition"
	"foodhub-be/internal/order"
	"foodhub-be/internal/provider"
	"foodhub-be/internal/review"
	"foodhub-be/internal/transport"
	"foodhub-be/internal/user"

	"go.uber.org/zap"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

var errorMappings = []errorMapping{
	// accounts
	{user.ErrEmailExists, http.StatusConflict, "Email already registered"},
	{user.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{user.ErrAccountSuspended, http.StatusForbidden, "Your account has been suspended"},
	{user.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{user.ErrInvalidRole, http.StatusBadRequest, "Invalid role"},
	{user.ErrInvalidStatus, http.StatusBadRequest, "Status must be ACTIVE or SUSPENDED"},
	{user.ErrRestaurantNameRequired, http.StatusBadRequest, "Restaurant name is required for providers"},
	{user.ErrCannotChangeOwnStatus, http.StatusBadRequest, "You cannot change your own status"},

	// catalogue
	{provider.ErrProviderNotFound, http.StatusNotFound, "Provider not found"},
	{provider.ErrRestaurantNameRequired, http.StatusBadRequest, "Restaurant name cannot be empty"},
	{category.ErrCategoryNotFound, http.StatusNotFound, "Category not found"},
	{category.ErrCategoryExists, http.StatusConflict, "Category already exists"},
	{category.ErrCategoryInUse, http.StatusConflict, "Cannot delete a category that still has meals"},
	{category.ErrNameRequired, http.StatusBadRequest, "Category name is required"},
	{meal.ErrMealNotFound, http.StatusNotFound, "Meal not found"},
	{meal.ErrCategoryNotFound, http.StatusBadRequest, "Category not found"},
	{meal.ErrForbidden, http.StatusForbidden, "You can only manage your own meals"},
	{meal.ErrInvalidPrice, http.StatusBadRequest, "Price must be greater than 0"},
	{meal.ErrNameRequired, http.StatusBadRequest, "Meal name is required"},

	// orders
	{order.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
	{order.ErrForbidden, http.StatusForbidden, "Access denied"},
	{order.ErrMissingFields, http.StatusBadRequest, "Missing required fields"},
	{order.ErrInvalidQuantity, http.StatusBadRequest, "Quantity must be between 1 and 100"},
	{order.ErrTotalTooLarge, http.StatusBadRequest, "Order total is too large"},
	{order.ErrInvalidPayment, http.StatusBadRequest, "Invalid payment method"},
	{order.ErrMealsUnavailable, http.StatusBadRequest, "Some meals are not available"},
	{order.ErrMixedProviders, http.StatusBadRequest, "All items must be from the same provider"},
	{order.ErrInvalidStatus, http.StatusBadRequest, "Invalid order status"},
	{order.ErrCustomerCancelOnly, http.StatusForbidden, "Customers can only cancel pending orders"},
	{order.ErrNotCancellable, http.StatusBadRequest, "Only pending or confirmed orders can be cancelled"},
	{order.ErrInvalidTransition, http.StatusBadRequest, "Order status can no longer be changed"},
	{order.ErrInvalidDate, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD"},

	// reviews
	{review.ErrReviewNotFound, http.StatusNotFound, "Review not found"},
	{review.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
	{review.ErrOrderNotDelivered, http.StatusBadRequest, "You can only review delivered orders"},
	{review.ErrMealNotInOrder, http.StatusBadRequest, "This meal is not part of the order"},
	{review.ErrAlreadyReviewed, http.StatusConflict, "You have already reviewed this meal for this order"},
	{review.ErrInvalidRating, http.StatusBadRequest, "Rating must be between 1 and 5"},
	{review.ErrForbidden, http.StatusForbidden, "Access denied"},

	// assistant
	{chat.ErrEmptyMessage, http.StatusBadRequest, "Please provide a message."},
	{chat.ErrNotConfigured, http.StatusInternalServerError, "AI service not configured. Add ANTHROPIC_API_KEY to your .env file."},
	{chat.ErrInvalidAPIKey, http.StatusInternalServerError, "Invalid Anthropic API key. Check your ANTHROPIC_API_KEY in .env"},
	{chat.ErrUpstream, http.StatusInternalServerError, "AI service temporarily unavailable. Please try again."},
	{chat.ErrUpstreamFailed, http.StatusInternalServerError, "Something went wrong. Please try again."},
	{nutrition.ErrEmptyQuery, http.StatusBadRequest, "Please provide a meal name to search for."},
	{nutrition.ErrNotConfigured, http.StatusInternalServerError, "Nutrition API key not configured. Add USDA_API_KEY to your .env file."},
	{nutrition.ErrInvalidAPIKey, http.StatusInternalServerError, "Invalid USDA API key. Please check your USDA_API_KEY in .env"},
	{nutrition.ErrUpstream, http.StatusInternalServerError, "Failed to reach the nutrition database. Try again in a moment."},
	{nutrition.ErrUpstreamFailed, http.StatusInternalServerError, "Something went wrong fetching nutrition data. Please try again."},
}

// resolveError maps a domain error to its status and client message.
func resolveError(err error) (int, string, bool) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.message, true
		}
	}
	return http.StatusInternalServerError, "Internal server error", false
}

// writeError logs unexpected errors and never leaks their text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message, known := resolveError(err)
	log := logger.FromCtx(r.Context())
	switch {
	case !known:
		log.Error("unhandled error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	case status >= http.StatusInternalServerError:
		log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	transport.Error(w, status, message)
}
