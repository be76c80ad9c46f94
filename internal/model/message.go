package model

// Message : сообщение чата. Запись неизменяемая, мутируется только флаг IsRead.
// Time — epoch-время в миллисекундах, как его шлет виджет.
type Message struct {
	ID        int64  `db:"id" json:"id"`
	MessageID string `db:"message_id" json:"messageId"`
	FromID    string `db:"from_id" json:"fromId"`
	ToID      string `db:"to_id" json:"toId"`
	Text      string `db:"text" json:"text"`
	Time      int64  `db:"time" json:"time"`
	Type      string `db:"type" json:"type"`
	IsRead    bool   `db:"is_read" json:"is_read"`
}

// SendResult : итог отправки сообщения. Сообщение сохранено всегда,
// Delivered показывает, было ли живое соединение получателя.
type SendResult struct {
	Message           *Message
	Delivered         bool
	RecipientSocketID string
}
