package handler

import (
	"admin-chat-server/internal/model/requestresponse"
	"admin-chat-server/internal/ports"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const defaultRecentLimit = 50

type ChatHandler struct {
	ports.ChatServiceInterface
}

func NewChatHandler(chatService ports.ChatServiceInterface) *ChatHandler {
	return &ChatHandler{chatService}
}

// GetConversation godoc
// @Summary История переписки
// @Description Возвращает переписку двух участников по возрастанию времени
// @Tags Messages
// @Produce json
// @Param user1 query string true "Идентификатор первого участника"
// @Param user2 query string true "Идентификатор второго участника"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ConversationResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/messages/conversation [get]
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user1 := r.URL.Query().Get("user1")
	user2 := r.URL.Query().Get("user2")
	if user1 == "" || user2 == "" {
		sendErrorResponse(w, 400, "user1 и user2 обязательны")
		return
	}

	messages, err := h.ChatServiceInterface.GetConversation(r.Context(), user1, user2)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.ConversationResponse{
		Success:  true,
		Messages: messages,
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetUnread godoc
// @Summary Непрочитанные сообщения
// @Description Возвращает непрочитанные сообщения, адресованные пользователю
// @Tags Messages
// @Produce json
// @Param userId path string true "Идентификатор получателя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UnreadResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/messages/unread/{userId} [get]
func (h *ChatHandler) GetUnread(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID := chi.URLParam(r, "userId")

	messages, err := h.ChatServiceInterface.GetUnread(r.Context(), userID)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.UnreadResponse{
		Success:  true,
		Messages: messages,
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetRecent godoc
// @Summary Последние сообщения пользователя
// @Description Возвращает последние сообщения пользователя по убыванию времени, для сводки диалогов
// @Tags Messages
// @Produce json
// @Param userId path string true "Идентификатор участника"
// @Param limit query int false "Количество сообщений" default(50)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.RecentResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/messages/recent/{userId} [get]
func (h *ChatHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID := chi.URLParam(r, "userId")

	limit := defaultRecentLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	messages, err := h.ChatServiceInterface.GetRecent(r.Context(), userID, limit)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.RecentResponse{
		Success:  true,
		Messages: messages,
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// MarkRead godoc
// @Summary Пометить сообщения прочитанными
// @Description Помечает одно сообщение по messageId либо весь диалог по паре userId/interlocutorId
// @Tags Messages
// @Accept json
// @Produce json
// @Param body body requestresponse.MarkReadRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MarkReadResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/messages/read [post]
func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.MarkReadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	var err error
	switch {
	case req.MessageID != "":
		err = h.ChatServiceInterface.MarkRead(r.Context(), req.MessageID)
	case req.UserID != "" && req.InterlocutorID != "":
		err = h.ChatServiceInterface.MarkConversationRead(r.Context(), req.UserID, req.InterlocutorID)
	default:
		sendErrorResponse(w, 400, "нужен messageId либо пара userId/interlocutorId")
		return
	}
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.MarkReadResponse{Success: true})
}

// DeleteMessage godoc
// @Summary Удаление сообщения
// @Description Удаляет сообщение из истории. Операция администратора, в обычном потоке сообщения не удаляются.
// @Tags Messages
// @Produce json
// @Param messageId path string true "Идентификатор сообщения"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Сообщение удалено"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/messages/{messageId} [delete]
func (h *ChatHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	messageID := chi.URLParam(r, "messageId")

	if err := h.ChatServiceInterface.DeleteMessage(r.Context(), messageID); err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
