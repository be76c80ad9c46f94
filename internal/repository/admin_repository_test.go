package repository_test

import (
	"admin-chat-server/config"
	"admin-chat-server/internal/ports"
	"admin-chat-server/internal/repository"
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newMockDatabase(t *testing.T) (*config.Database, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &config.Database{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

func adminColumns() []string {
	return []string{"id", "login", "password_hash", "socket_id", "online", "is_active"}
}

func TestAdminRepository_FindAdmin(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewAdminRepository(database)

	mock.ExpectQuery("SELECT id, login, password_hash, socket_id, online, is_active FROM admin LIMIT 1").
		WillReturnRows(sqlmock.NewRows(adminColumns()).
			AddRow(1, "admin", "$2a$10$hash", nil, false, true))

	admin, err := repo.FindAdmin(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(1), admin.ID)
	assert.Equal(t, "admin", admin.Login)
	assert.Nil(t, admin.SocketID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_FindAdmin_Empty(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewAdminRepository(database)

	mock.ExpectQuery("SELECT id, login, password_hash, socket_id, online, is_active FROM admin LIMIT 1").
		WillReturnRows(sqlmock.NewRows(adminColumns()))

	admin, err := repo.FindAdmin(context.Background())

	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.Nil(t, admin)
}

func TestAdminRepository_BindSocket(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewAdminRepository(database)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE admin SET socket_id = $2, online = TRUE WHERE id = $1`)).
		WithArgs(int64(1), "sock-7").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.BindSocket(context.Background(), 1, "sock-7")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Условное снятие привязки: строка меняется только когда в поле
// все еще ожидаемый socketID
func TestAdminRepository_ClearSocketIfMatch(t *testing.T) {
	query := regexp.QuoteMeta(`UPDATE admin SET socket_id = NULL, online = FALSE WHERE id = $1 AND socket_id = $2`)

	t.Run("привязка актуальна и снимается", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := repository.NewAdminRepository(database)

		mock.ExpectExec(query).
			WithArgs(int64(1), "sock-7").
			WillReturnResult(sqlmock.NewResult(0, 1))

		cleared, err := repo.ClearSocketIfMatch(context.Background(), 1, "sock-7")

		assert.NoError(t, err)
		assert.True(t, cleared)
	})

	t.Run("привязка уже перезаписана, строка не тронута", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := repository.NewAdminRepository(database)

		mock.ExpectExec(query).
			WithArgs(int64(1), "sock-старый").
			WillReturnResult(sqlmock.NewResult(0, 0))

		cleared, err := repo.ClearSocketIfMatch(context.Background(), 1, "sock-старый")

		assert.NoError(t, err)
		assert.False(t, cleared)
	})
}

func TestAdminRepository_Create(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewAdminRepository(database)

	mock.ExpectQuery("INSERT INTO admin").
		WithArgs("admin", "$2a$10$hash").
		WillReturnRows(sqlmock.NewRows(adminColumns()).
			AddRow(1, "admin", "$2a$10$hash", nil, false, true))

	admin, err := repo.Create(context.Background(), "admin", "$2a$10$hash")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), admin.ID)
	assert.True(t, admin.IsActive)
}
