package repository

import (
	"admin-chat-server/config"
	"admin-chat-server/internal/model"
	"admin-chat-server/internal/ports"
	"admin-chat-server/internal/util"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type AdminRepository struct {
	*config.Database
}

func NewAdminRepository(database *config.Database) *AdminRepository {
	return &AdminRepository{database}
}

// FindAdmin : возвращает единственного администратора.
// После сидирования в таблице всегда ровно одна строка.
func (r *AdminRepository) FindAdmin(ctx context.Context) (*model.Administrator, error) {
	query := `SELECT id, login, password_hash, socket_id, online, is_active FROM admin LIMIT 1`

	admin := &model.Administrator{}
	err := r.DB.GetContext(ctx, admin, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[AdminRepo] администратор отсутствует: %w", ports.ErrNotFound)
		}
		return nil, util.LogError("[AdminRepo] не удалось найти администратора", err)
	}
	return admin, nil
}

// FindByLogin : ищет администратора по логину
func (r *AdminRepository) FindByLogin(ctx context.Context, login string) (*model.Administrator, error) {
	query := `SELECT id, login, password_hash, socket_id, online, is_active FROM admin WHERE login = $1`

	admin := &model.Administrator{}
	err := r.DB.GetContext(ctx, admin, query, login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[AdminRepo] администратор %s не найден: %w", login, ports.ErrNotFound)
		}
		return nil, util.LogError("[AdminRepo] не удалось найти администратора по логину", err)
	}
	return admin, nil
}

// FindByID : ищет администратора по ID
func (r *AdminRepository) FindByID(ctx context.Context, id int64) (*model.Administrator, error) {
	query := `SELECT id, login, password_hash, socket_id, online, is_active FROM admin WHERE id = $1`

	admin := &model.Administrator{}
	err := r.DB.GetContext(ctx, admin, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[AdminRepo] администратор %d не найден: %w", id, ports.ErrNotFound)
		}
		return nil, util.LogError("[AdminRepo] не удалось найти администратора по id", err)
	}
	return admin, nil
}

// Create : сохраняет нового администратора (используется только сидированием)
func (r *AdminRepository) Create(ctx context.Context, login, passwordHash string) (*model.Administrator, error) {
	query := `
	INSERT INTO admin (login, password_hash, online, is_active)
	VALUES ($1, $2, FALSE, TRUE)
	RETURNING id, login, password_hash, socket_id, online, is_active
	`

	admin := &model.Administrator{}
	err := r.DB.GetContext(ctx, admin, query, login, passwordHash)
	if err != nil {
		return nil, util.LogError("[AdminRepo] ошибка вставки данных в БД", err)
	}

	return admin, nil
}

// UpdatePasswordHash : перезаписывает хэш пароля.
// Используется при миграции унаследованных паролей в открытом виде.
func (r *AdminRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE admin SET password_hash = $2 WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return util.LogError("[AdminRepo] не удалось обновить хэш пароля", err)
	}
	return nil
}

// BindSocket : привязывает администратора к живому соединению.
// Перезаписывает старую привязку безусловно: новая всегда свежее.
func (r *AdminRepository) BindSocket(ctx context.Context, id int64, socketID string) error {
	query := `UPDATE admin SET socket_id = $2, online = TRUE WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id, socketID)
	if err != nil {
		return util.LogError("[AdminRepo] не удалось привязать сокет", err)
	}
	return nil
}

// ClearSocketIfMatch : снимает привязку одним условным UPDATE.
// Если за время жизни старого соединения администратор успел переподключиться,
// в поле уже чужой socketID и строка не трогается — read-then-write здесь
// привел бы к гонке между connect и disconnect.
func (r *AdminRepository) ClearSocketIfMatch(ctx context.Context, id int64, socketID string) (bool, error) {
	query := `UPDATE admin SET socket_id = NULL, online = FALSE WHERE id = $1 AND socket_id = $2`

	result, err := r.DB.ExecContext(ctx, query, id, socketID)
	if err != nil {
		return false, util.LogError("[AdminRepo] не удалось снять привязку сокета", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, util.LogError("[AdminRepo] не удалось проверить снятие привязки", err)
	}

	return rowsAffected > 0, nil
}
