package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"mindfitAPI/internal/chat"
	"mindfitAPI/middleware"
	"mindfitAPI/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	// Generation can be slow; give it more room than the CRUD endpoints.
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req chat.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		respondWithError(w, http.StatusBadRequest, "message is required")
		return
	}

	resp, err := h.chatService.Respond(ctx, userID, req.Message)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to process message")
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	messages, err := h.chatService.History(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get chat history")
		return
	}

	respondWithJSON(w, http.StatusOK, messages)
}

func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := h.chatService.ClearHistory(ctx, userID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "No chat history found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to clear chat history")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Chat history cleared successfully"})
}
