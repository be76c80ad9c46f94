package repository

import (
	"admin-chat-server/config"
	"admin-chat-server/internal/model"
	"admin-chat-server/internal/util"
	"context"
	"database/sql"
	"errors"
)

type ClientRepository struct {
	*config.Database
}

func NewClientRepository(database *config.Database) *ClientRepository {
	return &ClientRepository{database}
}

// FindByChatID : ищет клиента по его долговечному chatId.
// Отсутствие клиента — не ошибка, возвращается (nil, nil).
func (r *ClientRepository) FindByChatID(ctx context.Context, chatID string) (*model.Client, error) {
	query := `SELECT id, chat_id, socket_id, name, online, created_at FROM clients WHERE chat_id = $1`

	client := &model.Client{}
	err := r.DB.GetContext(ctx, client, query, chatID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, util.LogError("[ClientRepo] не удалось найти клиента", err)
	}
	return client, nil
}

// Upsert : создает клиента при первом контакте либо обновляет имя.
// chatId — долговечный ключ, одна строка на клиента.
func (r *ClientRepository) Upsert(ctx context.Context, chatID, name string) (*model.Client, error) {
	query := `
	INSERT INTO clients (chat_id, name)
	VALUES ($1, $2)
	ON CONFLICT (chat_id) DO UPDATE SET name = CASE WHEN EXCLUDED.name <> '' THEN EXCLUDED.name ELSE clients.name END
	RETURNING id, chat_id, socket_id, name, online, created_at
	`

	client := &model.Client{}
	err := r.DB.GetContext(ctx, client, query, chatID, name)
	if err != nil {
		return nil, util.LogError("[ClientRepo] ошибка вставки данных в БД", err)
	}

	return client, nil
}

// BindSocket : привязывает клиента к соединению, при реконнекте старая
// привязка перезаписывается
func (r *ClientRepository) BindSocket(ctx context.Context, chatID, socketID string) error {
	query := `UPDATE clients SET socket_id = $2, online = TRUE WHERE chat_id = $1`
	_, err := r.DB.ExecContext(ctx, query, chatID, socketID)
	if err != nil {
		return util.LogError("[ClientRepo] не удалось привязать сокет", err)
	}
	return nil
}

// ClearSocketIfMatch : условное снятие привязки, как у администратора
func (r *ClientRepository) ClearSocketIfMatch(ctx context.Context, chatID, socketID string) (bool, error) {
	query := `UPDATE clients SET socket_id = NULL, online = FALSE WHERE chat_id = $1 AND socket_id = $2`

	result, err := r.DB.ExecContext(ctx, query, chatID, socketID)
	if err != nil {
		return false, util.LogError("[ClientRepo] не удалось снять привязку сокета", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, util.LogError("[ClientRepo] не удалось проверить снятие привязки", err)
	}

	return rowsAffected > 0, nil
}

// SetOnline : помечает клиента онлайн или оффлайн
func (r *ClientRepository) SetOnline(ctx context.Context, chatID string, online bool) error {
	query := `UPDATE clients SET online = $2 WHERE chat_id = $1`
	_, err := r.DB.ExecContext(ctx, query, chatID, online)
	if err != nil {
		return util.LogError("[ClientRepo] не удалось обновить статус клиента", err)
	}
	return nil
}
