package model

import "time"

// Client : посетитель чата. Долговечный ключ — ChatID,
// SocketID живет только в рамках одного подключения.
type Client struct {
	ID        int64     `db:"id" json:"id"`
	ChatID    string    `db:"chat_id" json:"chatId"`
	SocketID  *string   `db:"socket_id" json:"-"`
	Name      string    `db:"name" json:"name"`
	Online    bool      `db:"online" json:"online"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
