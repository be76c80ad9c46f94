package ports

import (
	"admin-chat-server/internal/model"
	"admin-chat-server/internal/security"
	"time"
)

type JWTServiceInterface interface {
	GenerateTokensPair(adminID int64, login string) (*model.TokensPair, error)
	ValidateJWT(tokenString string) (*security.Claims, error)
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
}
