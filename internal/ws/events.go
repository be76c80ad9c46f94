package ws

import (
	"admin-chat-server/internal/model"
	"encoding/json"
)

// Имена событий протокола чата. Совпадают с тем, что ждет виджет.
const (
	EventMessage      = "message"
	EventAdminMessage = "admin_message"
	EventRegister     = "register"

	EventMessageSent       = "message_sent"
	EventMessageError      = "message_error"
	EventNewClientMessage  = "new_client_message"
	EventAdminMessageSent  = "admin_message_sent"
	EventAdminMessageError = "admin_message_error"
	EventNewAdminMessage   = "new_admin_message"
	EventRegistered        = "registered"
)

// Frame : кадр протокола. Любое сообщение в обе стороны — JSON
// вида {"event": ..., "data": ...}.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// MessageIn : клиент отправляет сообщение администратору
type MessageIn struct {
	FromID    string `json:"fromId"`
	ToID      string `json:"toId"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// AdminMessageIn : администратор отвечает клиенту
type AdminMessageIn struct {
	ClientID string `json:"clientId"`
	Text     string `json:"text"`
}

// RegisterIn : регистрация клиента на соединении
type RegisterIn struct {
	ChatID string `json:"chatId"`
	Name   string `json:"name"`
}

// MessageSentOut : подтверждение отправителю.
// Queued true означает "сохранено, но получатель оффлайн".
type MessageSentOut struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Timestamp int64  `json:"timestamp"`
	Queued    bool   `json:"queued"`
}

// AdminMessageSentOut : подтверждение администратору
type AdminMessageSentOut struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Queued    bool   `json:"queued"`
}

// ErrorOut : ошибка обработки события
type ErrorOut struct {
	Error string `json:"error"`
}

// NewClientMessageOut : доставка сообщения администратору
type NewClientMessageOut struct {
	*model.Message
	IsAdmin bool `json:"is_admin"`
}
