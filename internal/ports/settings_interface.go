package ports

import (
	"admin-chat-server/internal/model"
	"context"
)

type SettingsRepositoryInterface interface {
	GetSocket(ctx context.Context) (*model.SocketSettings, error)
	UpdateSocket(ctx context.Context, settings *model.SocketSettings) error
	GetConsent(ctx context.Context) (*model.ConsentSettings, error)
	UpdateConsent(ctx context.Context, settings *model.ConsentSettings) error
	GetColors(ctx context.Context) (*model.ColorSettings, error)
	UpdateColors(ctx context.Context, settings *model.ColorSettings) error
	ListQuestions(ctx context.Context) ([]*model.QuestionSettings, error)
	UpdateQuestion(ctx context.Context, question *model.QuestionSettings) error
	ListContacts(ctx context.Context) ([]*model.ContactSettings, error)
	UpdateContact(ctx context.Context, contact *model.ContactSettings) error
}

// SettingsCacheInterface : кэш агрегата настроек в Redis
type SettingsCacheInterface interface {
	// GetSettings возвращает (nil, nil) при промахе кэша
	GetSettings(ctx context.Context) (*model.WidgetSettings, error)
	SetSettings(ctx context.Context, settings *model.WidgetSettings) error
	Invalidate(ctx context.Context) error
}
