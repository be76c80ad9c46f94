package ports

import (
	"admin-chat-server/internal/model"
	"context"
)

type AdminRepositoryInterface interface {
	// FindAdmin возвращает единственного администратора (система
	// рассчитана ровно на одну учетную запись после сидирования)
	FindAdmin(ctx context.Context) (*model.Administrator, error)
	FindByLogin(ctx context.Context, login string) (*model.Administrator, error)
	FindByID(ctx context.Context, id int64) (*model.Administrator, error)
	Create(ctx context.Context, login, passwordHash string) (*model.Administrator, error)
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
	// BindSocket привязывает администратора к новому соединению и помечает его онлайн
	BindSocket(ctx context.Context, id int64, socketID string) error
	// ClearSocketIfMatch снимает привязку одним условным UPDATE:
	// поле обнуляется только если в нем все еще ожидаемый socketID.
	// Возвращает true, если строка была изменена.
	ClearSocketIfMatch(ctx context.Context, id int64, socketID string) (bool, error)
}
