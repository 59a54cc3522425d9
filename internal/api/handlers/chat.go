package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mira/chat-relay/internal/api/middleware"
	"github.com/mira/chat-relay/internal/llm"
	"github.com/mira/chat-relay/internal/service"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	Timestamp   time.Time `json:"timestamp"`
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Message == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	record, err := h.chatService.SendMessage(r.Context(), user, req.Message)
	if err != nil {
		status, msg := relayStatus(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ChatResponse{
		UserMessage: record.UserMessage,
		BotResponse: record.BotResponse,
		Timestamp:   record.CreatedAt,
	})
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := h.chatService.History(r.Context(), user, limit)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]ChatResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, ChatResponse{
			UserMessage: record.UserMessage,
			BotResponse: record.BotResponse,
			Timestamp:   record.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// relayStatus maps provider failures onto gateway status codes so clients
// can tell a timeout worth retrying from a hard provider error.
func relayStatus(err error) (int, string) {
	switch {
	case errors.Is(err, llm.ErrTimeout):
		return http.StatusGatewayTimeout, "Model provider timed out"
	case errors.Is(err, llm.ErrProvider), errors.Is(err, llm.ErrNetwork), errors.Is(err, llm.ErrMalformedResponse):
		return http.StatusBadGateway, "Model provider unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
