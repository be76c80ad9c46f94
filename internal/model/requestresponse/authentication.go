package requestresponse

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Login    string `json:"login" example:"admin"`
	Password string `json:"password" example:"admin"`
}

// AdminInfo : публичная часть учетной записи администратора
type AdminInfo struct {
	ID    int64  `json:"id" example:"1"`
	Login string `json:"login" example:"admin"`
}

// LoginResponse : ответ на успешную аутентификацию.
// ExpiresIn — срок жизни access токена в секундах.
type LoginResponse struct {
	Success   bool      `json:"success" example:"true"`
	Token     string    `json:"token" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
	Admin     AdminInfo `json:"admin"`
	ExpiresIn int64     `json:"expiresIn" example:"840"`
}

// VerifyTokenRequest : запрос на проверку токена
type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// VerifyTokenResponse : ответ на успешную проверку токена
type VerifyTokenResponse struct {
	Success bool      `json:"success" example:"true"`
	Payload AdminInfo `json:"payload"`
}

// ProfileResponse : профиль текущего администратора
type ProfileResponse struct {
	Success bool      `json:"success" example:"true"`
	Admin   AdminInfo `json:"admin"`
}

// RefreshTokenResponse : новая пара токенов, refresh уходит в cookie
type RefreshTokenResponse struct {
	Success   bool      `json:"success" example:"true"`
	Token     string    `json:"token"`
	Admin     AdminInfo `json:"admin"`
	ExpiresIn int64     `json:"expiresIn" example:"840"`
}

// LogoutResponse : ответ на завершение сессии
type LogoutResponse struct {
	Success bool `json:"success" example:"true"`
}

// ErrorDetail : код и текст ошибки
type ErrorDetail struct {
	Code int    `json:"code" example:"401"`
	Text string `json:"text" example:"неверный логин или пароль"`
}

// ErrorResponse : единый формат ошибки API
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
