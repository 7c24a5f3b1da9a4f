package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/lingora/lingora-backend/internal/service/chat"
	"github.com/lingora/lingora-backend/pkg/ctxutil"
)

// chatService defines the minimal interface needed by ChatHandler.
type chatService interface {
	Respond(ctx context.Context, text string, mode chat.Mode, history []chat.Turn) (chat.Reply, error)
}

// ChatHandler serves the AI conversation endpoint.
type ChatHandler struct {
	svc chatService
	log *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc chatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, log: logger.With("handler", "chat")}
}

type chatRequest struct {
	Message string      `json:"message"`
	Mode    string      `json:"mode"`
	History []chat.Turn `json:"history"`
}

type chatResponse struct {
	Reply    string `json:"reply"`
	Model    string `json:"model,omitempty"`
	Degraded bool   `json:"degraded,omitempty"`
}

// Respond handles POST /chat.
func (h *ChatHandler) Respond(w http.ResponseWriter, r *http.Request) {
	if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}

	mode := chat.ModeConversation
	if req.Mode == string(chat.ModeVoice) {
		mode = chat.ModeVoice
	}

	reply, err := h.svc.Respond(r.Context(), req.Message, mode, req.History)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Reply:    reply.Text,
		Model:    reply.Model,
		Degraded: reply.Degraded,
	})
}
