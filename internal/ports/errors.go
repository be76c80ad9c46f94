package ports

import "errors"

// Ошибки хранилища. Репозитории оборачивают их через %w,
// чтобы вызывающий код различал их через errors.Is.
var (
	// ErrDuplicateMessageID : нарушение уникальности messageId.
	// Фатальная ошибка записи, молча игнорировать нельзя.
	ErrDuplicateMessageID = errors.New("сообщение с таким messageId уже существует")

	// ErrNotFound : запрошенная запись отсутствует
	ErrNotFound = errors.New("запись не найдена")
)
