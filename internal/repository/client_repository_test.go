package repository_test

import (
	"admin-chat-server/internal/repository"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func clientColumns() []string {
	return []string{"id", "chat_id", "socket_id", "name", "online", "created_at"}
}

func TestClientRepository_FindByChatID_NotFound(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewClientRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, chat_id, socket_id, name, online, created_at FROM clients WHERE chat_id = $1`)).
		WithArgs("client-x").
		WillReturnRows(sqlmock.NewRows(clientColumns()))

	// отсутствие клиента — штатная ситуация, не ошибка
	client, err := repo.FindByChatID(context.Background(), "client-x")

	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestClientRepository_Upsert(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewClientRepository(database)

	mock.ExpectQuery("INSERT INTO clients").
		WithArgs("client-1", "Иван").
		WillReturnRows(sqlmock.NewRows(clientColumns()).
			AddRow(1, "client-1", nil, "Иван", false, time.Now()))

	client, err := repo.Upsert(context.Background(), "client-1", "Иван")

	assert.NoError(t, err)
	assert.Equal(t, "client-1", client.ChatID)
	assert.Equal(t, "Иван", client.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_ClearSocketIfMatch_Stale(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewClientRepository(database)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE clients SET socket_id = NULL, online = FALSE WHERE chat_id = $1 AND socket_id = $2`)).
		WithArgs("client-1", "sock-old").
		WillReturnResult(sqlmock.NewResult(0, 0))

	cleared, err := repo.ClearSocketIfMatch(context.Background(), "client-1", "sock-old")

	assert.NoError(t, err)
	assert.False(t, cleared)
}

func TestClientRepository_SetOnline(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewClientRepository(database)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE clients SET online = $2 WHERE chat_id = $1`)).
		WithArgs("client-1", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetOnline(context.Background(), "client-1", true)

	assert.NoError(t, err)
}
