package handler

import (
	"net/http"

	"ayitichat/internal/domain/services"
	"ayitichat/internal/httputil"
)

// ChatHandler serves the relay endpoint and chat CRUD.
type ChatHandler struct {
	chats services.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chats services.ChatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

// Relay handles POST /api/chat
func (h *ChatHandler) Relay(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.RelayRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.chats.Relay(r.Context(), userID, &req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": reply})
}

// Create handles POST /api/chats
func (h *ChatHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.CreateChatRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	chat, err := h.chats.CreateChat(r.Context(), userID, &req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, chat)
}

// List handles GET /api/chats
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	chats, err := h.chats.ListChats(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"chats": chats})
}

// Get handles GET /api/chats/{id}
func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	chat, err := h.chats.GetChat(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chat)
}

// Update handles PATCH /api/chats/{id}
func (h *ChatHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.UpdateChatRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	chat, err := h.chats.UpdateChat(r.Context(), r.PathValue("id"), userID, &req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chat)
}

// Delete handles DELETE /api/chats/{id}
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.chats.DeleteChat(r.Context(), r.PathValue("id"), userID); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Messages handles GET /api/chats/{id}/messages
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	messages, err := h.chats.ListMessages(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}
