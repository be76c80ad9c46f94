package ports

import (
	"admin-chat-server/internal/model"
	"context"
)

type ClientRepositoryInterface interface {
	// FindByChatID возвращает (nil, nil), если клиента еще нет
	FindByChatID(ctx context.Context, chatID string) (*model.Client, error)
	// Upsert создает клиента при первом контакте либо обновляет имя
	Upsert(ctx context.Context, chatID, name string) (*model.Client, error)
	BindSocket(ctx context.Context, chatID, socketID string) error
	ClearSocketIfMatch(ctx context.Context, chatID, socketID string) (bool, error)
	SetOnline(ctx context.Context, chatID string, online bool) error
}
