package security

import (
	"admin-chat-server/config"
	"admin-chat-server/internal/model"
	"admin-chat-server/internal/util"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Виды ошибок проверки токена. Различаются ради логов и наблюдаемости,
// для вызывающего кода все три означают "не аутентифицирован".
var (
	ErrTokenMalformed   = errors.New("токен имеет неверный формат")
	ErrSignatureInvalid = errors.New("подпись токена не прошла проверку")
	ErrTokenExpired     = errors.New("срок действия токена истек")
)

const (
	defaultAccessTokenTTL  = 14 * time.Minute
	defaultRefreshTokenTTL = 30 * 24 * time.Hour
)

type Claims struct {
	AdminID int64  `json:"id"`
	Login   string `json:"login"`
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// AccessTokenTTL возвращает срок жизни access токена из конфигурации,
// при отсутствии или ошибке парсинга — 14 минут
func (service *JWTService) AccessTokenTTL() time.Duration {
	return parseTTL(service.JWTConfig.AccessTokenTTL, defaultAccessTokenTTL)
}

// RefreshTokenTTL возвращает срок жизни refresh токена, по умолчанию 30 дней
func (service *JWTService) RefreshTokenTTL() time.Duration {
	return parseTTL(service.JWTConfig.RefreshTokenTTL, defaultRefreshTokenTTL)
}

func parseTTL(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return ttl
}

// GenerateTokensPair выпускает пару access/refresh токенов.
// Оба токена — подписанные JWT с одинаковым payload {id, login},
// различается только срок жизни. В БД ничего не сохраняется.
func (service *JWTService) GenerateTokensPair(adminID int64, login string) (*model.TokensPair, error) {
	accessToken, err := service.issue(adminID, login, service.AccessTokenTTL())
	if err != nil {
		return nil, util.LogError("ошибка подписи access токена", err)
	}

	refreshToken, err := service.issue(adminID, login, service.RefreshTokenTTL())
	if err != nil {
		return nil, util.LogError("ошибка подписи refresh токена", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (service *JWTService) issue(adminID int64, login string, ttl time.Duration) (string, error) {
	claims := Claims{
		AdminID: adminID,
		Login:   login,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "admin-chat-server",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return jwtToken.SignedString([]byte(service.SecretKey))
}

// ValidateJWT проверяет подпись и срок действия токена.
// Просроченный или поддельный токен никогда не дает аутентифицированную
// личность: возвращается nil и ошибка соответствующего вида.
func (service *JWTService) ValidateJWT(jwtTokenStr string) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return []byte(service.SecretKey), nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !jwtToken.Valid {
		return nil, ErrSignatureInvalid
	}

	return claims, nil
}
