package handler

import (
	"admin-chat-server/internal/model"
	"admin-chat-server/internal/model/requestresponse"
	"admin-chat-server/internal/ports"
	"admin-chat-server/internal/security"
	"admin-chat-server/internal/service"
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// refreshCookieName : HTTP-only cookie с refresh токеном.
// Access токен клиент хранит сам, refresh браузеру недоступен из JS.
const refreshCookieName = "refresh_token"

type AuthenticationHandler struct {
	ports.AuthenticationService
	ports.JWTServiceInterface
}

func NewAuthenticationHandler(
	authenticationService ports.AuthenticationService,
	jwtServiceInterface ports.JWTServiceInterface,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService,
		jwtServiceInterface,
	}
}

// Login godoc
// @Summary Аутентификация администратора
// @Description Получение access токена по логину и паролю. Refresh токен уходит в HTTP-only cookie.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.LoginResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный логин или пароль"
// @Failure 403 {object} requestresponse.ErrorResponse "Учетная запись отключена"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if req.Login == "" || req.Password == "" {
		sendErrorResponse(w, 400, "login и password обязательны")
		return
	}

	tokens, admin, err := h.AuthenticationService.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			sendErrorResponse(w, 401, "неверный логин или пароль")
		case errors.Is(err, service.ErrAccountDisabled):
			sendErrorResponse(w, 403, "учетная запись отключена")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	h.setRefreshCookie(w, tokens.RefreshToken)

	resp := requestresponse.LoginResponse{
		Success:   true,
		Token:     tokens.AccessToken,
		Admin:     adminInfo(admin),
		ExpiresIn: int64(h.JWTServiceInterface.AccessTokenTTL().Seconds()),
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// VerifyToken godoc
// @Summary Проверка access токена
// @Description Проверяет подпись и срок действия токена, возвращает его payload
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.VerifyTokenRequest true "Тело запроса"
// @Success 200 {object} requestresponse.VerifyTokenResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/auth/verify [post]
func (h *AuthenticationHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.VerifyTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if req.Token == "" {
		sendErrorResponse(w, 400, "token обязателен")
		return
	}

	claims, err := h.AuthenticationService.Verify(req.Token)
	if err != nil {
		sendErrorResponse(w, 401, "невалидный токен")
		return
	}

	resp := requestresponse.VerifyTokenResponse{
		Success: true,
		Payload: requestresponse.AdminInfo{
			ID:    claims.AdminID,
			Login: claims.Login,
		},
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Profile godoc
// @Summary Профиль текущего администратора
// @Description Возвращает учетную запись администратора из access токена
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ProfileResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/profile [get]
func (h *AuthenticationHandler) Profile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "пользователь не авторизован")
		return
	}

	admin, err := h.AuthenticationService.Profile(r.Context(), claims.AdminID)
	if err != nil {
		log.Println(err)
		if errors.Is(err, service.ErrAccountDisabled) {
			sendErrorResponse(w, 403, "учетная запись отключена")
			return
		}
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.ProfileResponse{
		Success: true,
		Admin:   adminInfo(admin),
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// RefreshToken godoc
// @Summary Обновление пары токенов
// @Description Выпускает новую пару токенов по refresh токену из HTTP-only cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.RefreshTokenResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Refresh токен отсутствует или невалиден"
// @Failure 403 {object} requestresponse.ErrorResponse "Учетная запись отключена"
// @Router /api/auth/refresh [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		sendErrorResponse(w, 401, "refresh токен отсутствует")
		return
	}

	tokens, admin, err := h.AuthenticationService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		log.Println(err)
		if errors.Is(err, service.ErrAccountDisabled) {
			sendErrorResponse(w, 403, "учетная запись отключена")
			return
		}
		sendErrorResponse(w, 401, "невалидный refresh токен")
		return
	}

	h.setRefreshCookie(w, tokens.RefreshToken)

	resp := requestresponse.RefreshTokenResponse{
		Success:   true,
		Token:     tokens.AccessToken,
		Admin:     adminInfo(admin),
		ExpiresIn: int64(h.JWTServiceInterface.AccessTokenTTL().Seconds()),
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Logout godoc
// @Summary Завершение сессии
// @Description Стирает refresh cookie. Токены не хранятся на сервере, отзывать нечего.
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.LogoutResponse
// @Router /api/auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/auth",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.LogoutResponse{Success: true})
}

func (h *AuthenticationHandler) setRefreshCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/api/auth",
		MaxAge:   int(h.JWTServiceInterface.RefreshTokenTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func adminInfo(admin *model.Administrator) requestresponse.AdminInfo {
	return requestresponse.AdminInfo{
		ID:    admin.ID,
		Login: admin.Login,
	}
}

// decodeJSON обрабатывает декодирование JSON и возвращает ответ об ошибке, если декодирование не удалось.
func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(400)
		json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
			Error: requestresponse.ErrorDetail{
				Code: 400,
				Text: "некорректный JSON",
			},
		})
		return err
	}
	return nil
}

// sendErrorResponse отправляет ответ об ошибке JSON с указанным кодом статуса и сообщением
func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{
			Code: statusCode,
			Text: message,
		},
	})
}
