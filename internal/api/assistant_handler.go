package api

import (
	"errors"
	"fmt"
	"net/http"

	"foodhub-be/internal/chat"
	"foodhub-be/internal/nutrition"
	"foodhub-be/internal/transport"
)

type chatRequest struct {
	Message             string         `json:"message"`
	ConversationHistory []chat.Message `json:"conversationHistory"`
}

type chatResponse struct {
	Success bool   `json:"success"`
	Reply   string `json:"reply"`
}

type nutritionResponse struct {
	Success bool `json:"success"`
	*nutrition.Result
}

type noNutritionResponse struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// AssistantHandler serves the AI chat and the nutrition lookup.
type AssistantHandler struct {
	chat      chat.Service
	nutrition nutrition.Service
}

func NewAssistantHandler(c chat.Service, n nutrition.Service) *AssistantHandler {
	return &AssistantHandler{chat: c, nutrition: n}
}

func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		if errors.Is(err, transport.ErrEmptyBody) {
			writeError(w, r, chat.ErrEmptyMessage)
			return
		}
		transport.Error(w, http.StatusBadRequest, upperFirst(err.Error()))
		return
	}

	reply, err := h.chat.Chat(r.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.JSON(w, http.StatusOK, chatResponse{Success: true, Reply: reply})
}

func (h *AssistantHandler) Nutrition(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	res, err := h.nutrition.Lookup(r.Context(), query)
	if errors.Is(err, nutrition.ErrNoResults) {
		transport.JSON(w, http.StatusOK, noNutritionResponse{
			Success:     false,
			Message:     fmt.Sprintf(`No nutrition data found for "%s". Try a simpler name like "burger" or "pizza".`, query),
			Suggestions: nutrition.Suggestions,
		})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.JSON(w, http.StatusOK, nutritionResponse{Success: true, Result: res})
}
