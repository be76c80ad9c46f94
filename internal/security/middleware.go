package security

import (
	"admin-chat-server/internal/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
)

type contextKey string

const (
	AdminContextKey contextKey = "admin"
)

// Коды ошибок аутентификации в ответах API
const (
	CodeAuthRequired       = "AUTH_REQUIRED"
	CodeInvalidTokenFormat = "INVALID_TOKEN_FORMAT"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeAccountDisabled    = "ACCOUNT_DISABLED"
)

// AdminFinder : минимальный доступ к учетной записи администратора,
// чтобы middleware могла проверить, что запись все еще активна
type AdminFinder interface {
	FindByID(ctx context.Context, id int64) (*model.Administrator, error)
}

// JWTMiddleware аутентифицирует HTTP-запросы по заголовку Authorization.
// Отсутствие заголовка — ошибка: на HTTP-поверхности анонимных запросов
// к защищенным маршрутам не бывает (в отличие от сокетов).
func JWTMiddleware(jwtService *JWTService, admins AdminFinder) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(jwtService, admins, next))
	}
}

func handleAuthentication(jwtService *JWTService, admins AdminFinder, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		authorizationHeader := request.Header.Get("Authorization")
		if authorizationHeader == "" {
			writeAuthError(writer, http.StatusUnauthorized, CodeAuthRequired, "требуется аутентификация")
			return
		}

		parts := strings.Split(authorizationHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeAuthError(writer, http.StatusUnauthorized, CodeInvalidTokenFormat, "неверный формат токена, используйте: Bearer <token>")
			return
		}

		claims, err := jwtService.ValidateJWT(parts[1])
		if err != nil {
			log.Printf("невалидный токен: %v", err)
			if errors.Is(err, ErrTokenExpired) {
				writeAuthError(writer, http.StatusUnauthorized, CodeTokenExpired, "срок действия токена истек")
				return
			}
			writeAuthError(writer, http.StatusUnauthorized, CodeInvalidToken, "невалидный токен")
			return
		}

		// подпись верна, но учетная запись могла быть отключена после выдачи токена
		admin, err := admins.FindByID(request.Context(), claims.AdminID)
		if err != nil || admin == nil {
			log.Printf("администратор %d не найден: %v", claims.AdminID, err)
			writeAuthError(writer, http.StatusUnauthorized, CodeInvalidToken, "невалидный токен")
			return
		}
		if !admin.IsActive {
			writeAuthError(writer, http.StatusForbidden, CodeAccountDisabled, "учетная запись отключена")
			return
		}

		req := request.WithContext(context.WithValue(request.Context(), AdminContextKey, claims))
		next.ServeHTTP(writer, req)
	}
}

func writeAuthError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}{
		Success: false,
		Message: message,
		Code:    code,
	}

	json.NewEncoder(w).Encode(resp)
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(AdminContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}
