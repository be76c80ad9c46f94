package config

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Database struct {
	*sqlx.DB
}

func NewDatabaseConnection(dbDriver string, dbConnectionStr string) (*Database, error) {
	database, err := sqlx.Connect(dbDriver, dbConnectionStr)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("ошибка пинга БД: %w", err)
	}

	log.Println("Подключение к БД успешно выполнено")
	return &Database{
		database,
	}, nil
}

// InitSchema создает таблицы, если их еще нет
func (db *Database) InitSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS admin (
			id BIGSERIAL PRIMARY KEY,
			login TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			socket_id TEXT,
			online BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS clients (
			id BIGSERIAL PRIMARY KEY,
			chat_id TEXT UNIQUE NOT NULL,
			socket_id TEXT,
			name TEXT NOT NULL DEFAULT '',
			online BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id BIGSERIAL PRIMARY KEY,
			message_id TEXT UNIQUE NOT NULL,
			from_id TEXT NOT NULL,
			to_id TEXT NOT NULL,
			text TEXT NOT NULL,
			time BIGINT NOT NULL,
			type TEXT NOT NULL DEFAULT 'text',
			is_read BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_to_unread ON messages (to_id, is_read)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_pair ON messages (from_id, to_id, time)`,
		`CREATE TABLE IF NOT EXISTS settings_socket (
			id BIGSERIAL PRIMARY KEY,
			url TEXT NOT NULL DEFAULT '',
			ws TEXT NOT NULL DEFAULT '',
			port TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS settings_consent (
			id BIGSERIAL PRIMARY KEY,
			consent_link TEXT NOT NULL DEFAULT '',
			policy_link TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS settings_colors (
			id BIGSERIAL PRIMARY KEY,
			container TEXT NOT NULL DEFAULT '',
			top TEXT NOT NULL DEFAULT '',
			messages TEXT NOT NULL DEFAULT '',
			from_id TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL DEFAULT '',
			notification TEXT NOT NULL DEFAULT '',
			to_id TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS settings_questions (
			id BIGSERIAL PRIMARY KEY,
			question TEXT NOT NULL DEFAULT '',
			off_on BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS settings_contacts (
			id BIGSERIAL PRIMARY KEY,
			social_network TEXT NOT NULL DEFAULT '',
			link TEXT NOT NULL DEFAULT '',
			off_on BOOLEAN NOT NULL DEFAULT TRUE
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ошибка создания схемы БД: %w", err)
		}
	}

	return nil
}

func (db *Database) Close() error {
	err := db.DB.Close()
	if err != nil {
		return fmt.Errorf("ошибка закрытия соединения с БД: %w", err)
	}

	return nil
}
