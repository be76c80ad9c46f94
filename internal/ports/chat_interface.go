package ports

import (
	"admin-chat-server/internal/model"
	"context"
)

type ChatServiceInterface interface {
	// SendToAdmin сохраняет сообщение клиента и возвращает директиву
	// доставки. Отсутствие живого соединения администратора — не ошибка.
	SendToAdmin(ctx context.Context, fromID, toID, text string, sentAt int64) (*model.SendResult, error)
	SendToClient(ctx context.Context, adminID, clientID, text string) (*model.SendResult, error)
	RegisterClient(ctx context.Context, chatID, socketID, name string) (*model.Client, error)
	GetConversation(ctx context.Context, userA, userB string) ([]*model.Message, error)
	GetRecent(ctx context.Context, userID string, limit int) ([]*model.Message, error)
	GetUnread(ctx context.Context, userID string) ([]*model.Message, error)
	MarkRead(ctx context.Context, messageID string) error
	MarkConversationRead(ctx context.Context, userID, interlocutorID string) error
	DeleteMessage(ctx context.Context, messageID string) error

	FindAdmin(ctx context.Context) (*model.Administrator, error)
	BindAdminSocket(ctx context.Context, adminID int64, socketID string) error
	ReleaseAdminSocket(ctx context.Context, adminID int64, socketID string) error
	ReleaseClientSocket(ctx context.Context, chatID, socketID string) error
}

type SettingsServiceInterface interface {
	GetAll(ctx context.Context) (*model.WidgetSettings, error)
	UpdateSocket(ctx context.Context, settings *model.SocketSettings) error
	UpdateConsent(ctx context.Context, settings *model.ConsentSettings) error
	UpdateColors(ctx context.Context, settings *model.ColorSettings) error
	UpdateQuestion(ctx context.Context, question *model.QuestionSettings) error
	UpdateContact(ctx context.Context, contact *model.ContactSettings) error
}
