package repository

import (
	"admin-chat-server/config"
	"admin-chat-server/internal/model"
	"admin-chat-server/internal/ports"
	"admin-chat-server/internal/util"
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// uniqueViolation : код ошибки PostgreSQL при нарушении уникальности
const uniqueViolation = "23505"

type MessageRepository struct {
	*config.Database
}

func NewMessageRepository(database *config.Database) *MessageRepository {
	return &MessageRepository{database}
}

// Insert : сохраняет сообщение. Коллизия messageId — фатальная ошибка
// записи, она возвращается как ports.ErrDuplicateMessageID и никогда
// не глотается.
func (r *MessageRepository) Insert(ctx context.Context, message *model.Message) (*model.Message, error) {
	query := `
	INSERT INTO messages (message_id, from_id, to_id, text, time, type, is_read)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, message_id, from_id, to_id, text, time, type, is_read
	`

	saved := &model.Message{}
	err := r.DB.GetContext(ctx, saved, query,
		message.MessageID,
		message.FromID,
		message.ToID,
		message.Text,
		message.Time,
		message.Type,
		message.IsRead,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, fmt.Errorf("[MessageRepo] коллизия messageId %s: %w", message.MessageID, ports.ErrDuplicateMessageID)
		}
		return nil, util.LogError("[MessageRepo] ошибка вставки данных в БД", err)
	}

	return saved, nil
}

// GetConversation : история переписки двух участников в обе стороны,
// по возрастанию времени — канонический порядок для воспроизведения диалога
func (r *MessageRepository) GetConversation(ctx context.Context, userA, userB string, limit int) ([]*model.Message, error) {
	query := `
	SELECT id, message_id, from_id, to_id, text, time, type, is_read
	FROM messages
	WHERE (from_id = $1 AND to_id = $2) OR (from_id = $2 AND to_id = $1)
	ORDER BY time ASC, id ASC
	LIMIT $3
	`

	var messages []*model.Message
	err := r.DB.SelectContext(ctx, &messages, query, userA, userB, limit)
	if err != nil {
		return nil, util.LogError("[MessageRepo] не удалось получить историю переписки", err)
	}
	return messages, nil
}

// GetRecent : последние сообщения пользователя по убыванию времени,
// для сводки диалогов
func (r *MessageRepository) GetRecent(ctx context.Context, userID string, limit int) ([]*model.Message, error) {
	query := `
	SELECT id, message_id, from_id, to_id, text, time, type, is_read
	FROM messages
	WHERE from_id = $1 OR to_id = $1
	ORDER BY time DESC, id DESC
	LIMIT $2
	`

	var messages []*model.Message
	err := r.DB.SelectContext(ctx, &messages, query, userID, limit)
	if err != nil {
		return nil, util.LogError("[MessageRepo] не удалось получить последние сообщения", err)
	}
	return messages, nil
}

// GetUnread : непрочитанные сообщения пользователя по возрастанию времени.
// Выборка не меняет флаг is_read — пометка прочитанным всегда отдельный вызов.
func (r *MessageRepository) GetUnread(ctx context.Context, userID string) ([]*model.Message, error) {
	query := `
	SELECT id, message_id, from_id, to_id, text, time, type, is_read
	FROM messages
	WHERE to_id = $1 AND is_read = FALSE
	ORDER BY time ASC, id ASC
	`

	var messages []*model.Message
	err := r.DB.SelectContext(ctx, &messages, query, userID)
	if err != nil {
		return nil, util.LogError("[MessageRepo] не удалось получить непрочитанные сообщения", err)
	}
	return messages, nil
}

// MarkRead : помечает одно сообщение прочитанным, идемпотентно
func (r *MessageRepository) MarkRead(ctx context.Context, messageID string) error {
	query := `UPDATE messages SET is_read = TRUE WHERE message_id = $1`
	_, err := r.DB.ExecContext(ctx, query, messageID)
	if err != nil {
		return util.LogError("[MessageRepo] не удалось пометить сообщение прочитанным", err)
	}
	return nil
}

// MarkConversationRead : помечает прочитанными все входящие сообщения
// от собеседника, идемпотентно
func (r *MessageRepository) MarkConversationRead(ctx context.Context, userID, interlocutorID string) error {
	query := `UPDATE messages SET is_read = TRUE WHERE to_id = $1 AND from_id = $2 AND is_read = FALSE`
	_, err := r.DB.ExecContext(ctx, query, userID, interlocutorID)
	if err != nil {
		return util.LogError("[MessageRepo] не удалось пометить диалог прочитанным", err)
	}
	return nil
}

// Delete : удаляет сообщение. Административная операция,
// в обычном потоке сообщения не удаляются.
func (r *MessageRepository) Delete(ctx context.Context, messageID string) error {
	query := `DELETE FROM messages WHERE message_id = $1`
	_, err := r.DB.ExecContext(ctx, query, messageID)
	if err != nil {
		return util.LogError("[MessageRepo] не удалось удалить сообщение", err)
	}
	return nil
}
