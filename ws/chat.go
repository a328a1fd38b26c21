package ws

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"goRaceServer/api"
	"goRaceServer/config"
	"goRaceServer/db"
	"goRaceServer/game"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  config.WSReadBufferSize,
	WriteBufferSize: config.WSWriteBufferSize,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type ChatClient struct {
	UserID   int
	Conn     *websocket.Conn
	Username string
	Level    int
	Rating   int
}

type ChatMessage struct {
	Type      string    `json:"type"`
	Username  string    `json:"username"`
	Level     int       `json:"level,omitempty"`
	Rating    int       `json:"rating,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	UserID    int       `json:"userId"`
}

var (
	chatClients   = make(map[*ChatClient]bool)
	chatBroadcast = make(chan ChatMessage, config.ChatSendBufferSize)
	chatMutex     sync.Mutex
)

func init() {
	go handleChatMessages()
}

func handleChatMessages() {
	for {
		msg := <-chatBroadcast

		chatMutex.Lock()
		for client := range chatClients {
			err := client.Conn.WriteJSON(msg)
			if err != nil {
				log.Printf("❌ Error sending chat message to user %d: %v", client.UserID, err)
				client.Conn.Close()
				delete(chatClients, client)
			}
		}
		chatMutex.Unlock()
	}
}

// AnnounceEvent broadcasts an event start or end to every connected chat
// client. Wired into the event scheduler from main.
func AnnounceEvent(event *game.Event, started bool) {
	text := event.Icon + " Event ended: " + event.Title
	if started {
		text = event.Title + ": " + event.Description
	}

	chatBroadcast <- ChatMessage{
		Type:      "event",
		Username:  "System",
		Message:   text,
		Timestamp: time.Now(),
	}
}

// HandleChatWS handles GET /ws/chat?token=...
// The connection is authenticated with the same JWT as the REST API; the
// player's name, level and rating are attached to every message.
func HandleChatWS(w http.ResponseWriter, r *http.Request) {
	userID, err := api.ParseToken(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	user, err := db.GetUserByID(r.Context(), userID)
	if err != nil || user == nil {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("❌ Chat WebSocket upgrade failed:", err)
		return
	}

	client := &ChatClient{
		UserID:   user.ID,
		Conn:     conn,
		Username: user.Username,
		Level:    user.GameData.Level,
		Rating:   user.GameData.Rating,
	}

	// History is replayed before the client joins the broadcast set, so
	// these writes cannot race the hub goroutine on the same conn.
	sendChatHistory(client)

	chatMutex.Lock()
	chatClients[client] = true
	total := len(chatClients)
	chatMutex.Unlock()

	log.Printf("✅ Chat client connected: %s, total chat clients: %d", client.Username, total)

	chatBroadcast <- ChatMessage{
		Type:      "system",
		Username:  "System",
		Message:   client.Username + " joined the chat",
		Timestamp: time.Now(),
	}

	defer func() {
		chatMutex.Lock()
		delete(chatClients, client)
		total := len(chatClients)
		chatMutex.Unlock()

		chatBroadcast <- ChatMessage{
			Type:      "system",
			Username:  "System",
			Message:   client.Username + " left the chat",
			Timestamp: time.Now(),
		}

		conn.Close()
		log.Printf("👋 Chat client disconnected: %s, total chat clients: %d", client.Username, total)
	}()

	for {
		var msg ChatMessage
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("❌ Chat WebSocket error: %v", err)
			}
			break
		}

		text := strings.TrimSpace(msg.Message)
		if text == "" {
			continue
		}
		if len(text) > config.MaxChatMessageLen {
			text = text[:config.MaxChatMessageLen]
		}

		if overChatLimit(client) {
			// Registered conns are only written under chatMutex, the same
			// lock the hub goroutine holds while broadcasting.
			chatMutex.Lock()
			conn.WriteJSON(ChatMessage{
				Type:      "system",
				Username:  "System",
				Message:   "You are sending messages too quickly",
				Timestamp: time.Now(),
			})
			chatMutex.Unlock()
			continue
		}

		now := time.Now()
		out := ChatMessage{
			Type:      "message",
			Username:  client.Username,
			Level:     client.Level,
			Rating:    client.Rating,
			Message:   text,
			Timestamp: now,
			UserID:    client.UserID,
		}

		record := &db.ChatHistoryRecord{
			UserID:     client.UserID,
			Username:   client.Username,
			UserLevel:  client.Level,
			UserRating: client.Rating,
			Message:    text,
			Timestamp:  now,
		}
		if err := db.StoreChatMessage(context.Background(), record); err != nil {
			log.Printf("⚠️  Failed to persist chat message: %v", err)
		}

		chatBroadcast <- out
	}
}

// sendChatHistory replays recent messages to a newly connected client only.
func sendChatHistory(client *ChatClient) {
	records, err := db.GetRecentChatMessages(context.Background(), config.ChatHistoryLimit, nil)
	if err != nil {
		log.Printf("⚠️  Failed to load chat history: %v", err)
		return
	}

	for _, record := range records {
		msg := ChatMessage{
			Type:      "history",
			Username:  record.Username,
			Level:     record.UserLevel,
			Rating:    record.UserRating,
			Message:   record.Message,
			Timestamp: record.Timestamp,
			UserID:    record.UserID,
		}
		if err := client.Conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// overChatLimit applies the per-user chat rate limit through the shared
// Redis fixed-window counter.
func overChatLimit(client *ChatClient) bool {
	count, err := db.CountRequest(context.Background(), "chat",
		"user:"+client.Username, config.ChatLimitWindow)
	if err != nil {
		return false
	}
	return count > config.ChatLimitMax
}
