package ports

import (
	"admin-chat-server/internal/model"
	"context"
)

type MessageRepositoryInterface interface {
	// Insert сохраняет сообщение. При коллизии messageId возвращает
	// ошибку, оборачивающую ErrDuplicateMessageID.
	Insert(ctx context.Context, message *model.Message) (*model.Message, error)
	// GetConversation : обе стороны переписки, по возрастанию времени
	GetConversation(ctx context.Context, userA, userB string, limit int) ([]*model.Message, error)
	// GetRecent : последние сообщения пользователя, по убыванию времени
	GetRecent(ctx context.Context, userID string, limit int) ([]*model.Message, error)
	GetUnread(ctx context.Context, userID string) ([]*model.Message, error)
	MarkRead(ctx context.Context, messageID string) error
	MarkConversationRead(ctx context.Context, userID, interlocutorID string) error
	Delete(ctx context.Context, messageID string) error
}
