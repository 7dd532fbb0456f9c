package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"mindfitAPI/internal/mood"
	"mindfitAPI/middleware"
	"mindfitAPI/services"
)

type MoodHandler struct {
	moodService *services.MoodService
}

func NewMoodHandler(moodService *services.MoodService) *MoodHandler {
	return &MoodHandler{
		moodService: moodService,
	}
}

func (h *MoodHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req mood.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, streak, newBadges, err := h.moodService.Create(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to create mood entry")
		return
	}

	if len(newBadges) > 0 {
		log.Printf("CreateEntry: user %s reached streak %d, new badges: %v", userID, streak, newBadges)
	}

	respondWithJSON(w, http.StatusCreated, entry)
}

func (h *MoodHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	entries, err := h.moodService.List(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list mood entries")
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

func (h *MoodHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	stats, err := h.moodService.Stats(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get mood stats")
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
