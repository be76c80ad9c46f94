package requestresponse

import "admin-chat-server/internal/model"

// ConversationResponse : история переписки двух участников, по возрастанию времени
type ConversationResponse struct {
	Success  bool             `json:"success" example:"true"`
	Messages []*model.Message `json:"messages"`
}

// UnreadResponse : непрочитанные сообщения пользователя
type UnreadResponse struct {
	Success  bool             `json:"success" example:"true"`
	Messages []*model.Message `json:"messages"`
}

// RecentResponse : последние сообщения для сводки диалогов, по убыванию времени
type RecentResponse struct {
	Success  bool             `json:"success" example:"true"`
	Messages []*model.Message `json:"messages"`
}

// MarkReadRequest : пометить прочитанным одно сообщение или весь диалог.
// Если MessageID пуст, читается пара UserID/InterlocutorID.
type MarkReadRequest struct {
	MessageID      string `json:"messageId"`
	UserID         string `json:"userId"`
	InterlocutorID string `json:"interlocutorId"`
}

// MarkReadResponse : ответ на пометку прочитанным
type MarkReadResponse struct {
	Success bool `json:"success" example:"true"`
}
