package ports

import (
	"admin-chat-server/internal/model"
	"admin-chat-server/internal/security"
	"context"
)

type AuthenticationService interface {
	// Login проверяет пару логин/пароль. Любая причина отказа
	// возвращается одной и той же ошибкой "неверный логин или пароль",
	// чтобы не раскрывать существование учетной записи.
	Login(ctx context.Context, login, password string) (*model.TokensPair, *model.Administrator, error)
	Verify(token string) (*security.Claims, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokensPair, *model.Administrator, error)
	Profile(ctx context.Context, adminID int64) (*model.Administrator, error)
	// EnsureDefaultAdmin создает администратора по умолчанию при первом запуске
	EnsureDefaultAdmin(ctx context.Context) error
}
