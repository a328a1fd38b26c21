package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"goRaceServer/config"
	"goRaceServer/db"
)

/* =========================
   NEWS ENDPOINTS
========================= */

// HandleGetNews handles GET /api/news
// Query params: limit (default 10), category (optional)
func HandleGetNews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 50 {
			limit = v
		}
	}
	category := r.URL.Query().Get("category")

	records, err := db.GetActiveNews(r.Context(), limit, category)
	if err != nil {
		log.Printf("❌ Failed to get news: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to retrieve news")
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"news":    records,
	})
}

// HandleUnreadNewsCount handles GET /api/news/unread-count
func HandleUnreadNewsCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx := r.Context()
	user, err := db.GetUserByID(ctx, userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to count unread news")
		return
	}
	if user == nil {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}

	count, err := db.CountUnreadNews(ctx, user.LastNewsCheck)
	if err != nil {
		log.Printf("❌ Failed to count unread news: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to count unread news")
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"unread":  count,
	})
}

// HandleMarkNewsRead handles POST /api/news/mark-read
func HandleMarkNewsRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if err := db.UpdateLastNewsCheck(r.Context(), userIDFrom(r)); err != nil {
		log.Printf("❌ Failed to mark news read: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to mark news read")
		return
	}

	sendJSON(w, http.StatusOK, map[string]bool{"success": true})
}

/* =========================
   CHAT HISTORY (REST)
========================= */

// HandleChatHistory handles GET /api/chat/history
// Query params: limit (default 50), before (RFC3339, optional) for paging
// backwards through history.
func HandleChatHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := config.ChatHistoryLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}

	var before *time.Time
	if s := r.URL.Query().Get("before"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			sendError(w, http.StatusBadRequest, "Invalid before timestamp")
			return
		}
		before = &t
	}

	records, err := db.GetRecentChatMessages(r.Context(), limit, before)
	if err != nil {
		log.Printf("❌ Failed to get chat history: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to retrieve chat history")
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": records,
	})
}
