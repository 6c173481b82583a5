package transport

import (
	"encoding/json"
	"net/http"

	"foodhub-be/internal/logger"
	"foodhub-be/internal/utils"

	"go.uber.org/zap"
)

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Warn("failed to encode response", zap.Error(err))
	}
}

func Success(w http.ResponseWriter, status int, data any, message string) {
	JSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, envelope{Success: false, Message: message})
}

func Paginated(w http.ResponseWriter, data any, page utils.Page, total int64) {
	JSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    data,
		Pagination: &Pagination{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      total,
			TotalPages: utils.TotalPages(total, page.Limit),
		},
	})
}
