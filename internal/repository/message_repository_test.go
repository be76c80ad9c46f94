package repository_test

import (
	"admin-chat-server/internal/model"
	"admin-chat-server/internal/ports"
	"admin-chat-server/internal/repository"
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func messageColumns() []string {
	return []string{"id", "message_id", "from_id", "to_id", "text", "time", "type", "is_read"}
}

func TestMessageRepository_Insert(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewMessageRepository(database)

	message := &model.Message{
		MessageID: "msg_1000_abc",
		FromID:    "client-1",
		ToID:      "admin",
		Text:      "привет",
		Time:      1000,
		Type:      "text",
	}

	mock.ExpectQuery("INSERT INTO messages").
		WithArgs("msg_1000_abc", "client-1", "admin", "привет", int64(1000), "text", false).
		WillReturnRows(sqlmock.NewRows(messageColumns()).
			AddRow(1, "msg_1000_abc", "client-1", "admin", "привет", 1000, "text", false))

	saved, err := repo.Insert(context.Background(), message)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, "msg_1000_abc", saved.MessageID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Коллизия messageId приводит к различимой ошибке, а не к тихой перезаписи
func TestMessageRepository_Insert_DuplicateMessageID(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewMessageRepository(database)

	mock.ExpectQuery("INSERT INTO messages").
		WillReturnError(&pq.Error{Code: "23505"})

	saved, err := repo.Insert(context.Background(), &model.Message{MessageID: "msg_1000_abc"})

	assert.ErrorIs(t, err, ports.ErrDuplicateMessageID)
	assert.Nil(t, saved)
}

func TestMessageRepository_GetConversation(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewMessageRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE (from_id = $1 AND to_id = $2) OR (from_id = $2 AND to_id = $1)`)).
		WithArgs("client-1", "admin", 100).
		WillReturnRows(sqlmock.NewRows(messageColumns()).
			AddRow(1, "msg_1", "client-1", "admin", "вопрос", 1000, "text", true).
			AddRow(2, "msg_2", "admin", "client-1", "ответ", 2000, "text", false))

	messages, err := repo.GetConversation(context.Background(), "client-1", "admin", 100)

	assert.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, "вопрос", messages[0].Text)
	assert.Equal(t, "ответ", messages[1].Text)
}

// Переписка симметрична: порядок аргументов не влияет на выборку,
// оба направления накрывает один и тот же WHERE
func TestMessageRepository_GetConversation_ArgumentOrderSymmetry(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewMessageRepository(database)

	query := regexp.QuoteMeta(`WHERE (from_id = $1 AND to_id = $2) OR (from_id = $2 AND to_id = $1)`)
	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows(messageColumns()).
			AddRow(1, "msg_1", "client-1", "admin", "вопрос", 1000, "text", true).
			AddRow(2, "msg_2", "admin", "client-1", "ответ", 2000, "text", false)
	}

	mock.ExpectQuery(query).WithArgs("client-1", "admin", 100).WillReturnRows(rows())
	mock.ExpectQuery(query).WithArgs("admin", "client-1", 100).WillReturnRows(rows())

	direct, err := repo.GetConversation(context.Background(), "client-1", "admin", 100)
	assert.NoError(t, err)

	swapped, err := repo.GetConversation(context.Background(), "admin", "client-1", 100)
	assert.NoError(t, err)

	assert.Equal(t, direct, swapped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_GetUnread(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewMessageRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE to_id = $1 AND is_read = FALSE`)).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows(messageColumns()).
			AddRow(3, "msg_3", "client-1", "admin", "непрочитанное", 3000, "text", false))

	messages, err := repo.GetUnread(context.Background(), "admin")

	assert.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.False(t, messages[0].IsRead)
}

func TestMessageRepository_MarkRead(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewMessageRepository(database)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE messages SET is_read = TRUE WHERE message_id = $1`)).
		WithArgs("msg_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkRead(context.Background(), "msg_1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_MarkConversationRead(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewMessageRepository(database)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE messages SET is_read = TRUE WHERE to_id = $1 AND from_id = $2 AND is_read = FALSE`)).
		WithArgs("admin", "client-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.MarkConversationRead(context.Background(), "admin", "client-1")

	assert.NoError(t, err)
}
