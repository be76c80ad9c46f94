package security

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost : стоимость хэширования паролей, не ниже 10
const bcryptCost = 10

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsBcryptHash отличает bcrypt-хэш от унаследованного пароля в открытом
// виде. Нужен только для одноразовой миграции старых записей.
func IsBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") ||
		strings.HasPrefix(hash, "$2b$") ||
		strings.HasPrefix(hash, "$2y$")
}
