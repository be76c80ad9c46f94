package util

import (
	"fmt"
	"log"
)

// LogError пишет ошибку в лог и возвращает ее обернутой, чтобы вызывающий
// код мог отдать ее дальше по цепочке
func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}
