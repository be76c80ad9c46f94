package model

// Administrator : единственная учетная запись администратора чата.
// SocketID хранит привязку к живому соединению и затирается при реконнекте.
type Administrator struct {
	ID           int64   `db:"id" json:"id"`
	Login        string  `db:"login" json:"login"`
	PasswordHash string  `db:"password_hash" json:"-"`
	SocketID     *string `db:"socket_id" json:"-"`
	Online       bool    `db:"online" json:"online"`
	IsActive     bool    `db:"is_active" json:"-"`
}
