package service

import (
	"admin-chat-server/config"
	"admin-chat-server/internal/model"
	"admin-chat-server/internal/ports"
	"admin-chat-server/internal/security"
	"admin-chat-server/internal/util"
	"context"
	"errors"
	"fmt"
	"log"
)

// Причина отказа в аутентификации не детализируется, чтобы по ответу
// нельзя было перебирать логины
var (
	ErrInvalidCredentials = errors.New("неверный логин или пароль")
	ErrAccountDisabled    = errors.New("учетная запись отключена")
)

const (
	defaultAdminLogin    = "admin"
	defaultAdminPassword = "admin"
)

type AuthenticationService struct {
	adminRepository ports.AdminRepositoryInterface
	jwtService      ports.JWTServiceInterface
	adminConfig     *config.AdminConfig
}

func NewAuthenticationService(
	adminRepository ports.AdminRepositoryInterface,
	jwtService ports.JWTServiceInterface,
	adminConfig *config.AdminConfig,
) *AuthenticationService {
	return &AuthenticationService{
		adminRepository: adminRepository,
		jwtService:      jwtService,
		adminConfig:     adminConfig,
	}
}

// Login проверяет пару логин/пароль и выпускает пару токенов.
// Унаследованные записи с паролем в открытом виде перехэшируются
// при первом успешном входе — это одноразовая миграция, а не рабочий режим.
func (s *AuthenticationService) Login(ctx context.Context, login, password string) (*model.TokensPair, *model.Administrator, error) {
	admin, err := s.adminRepository.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("[AuthService] ошибка поиска администратора: %w", err)
	}

	if !admin.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	if !s.verifyPassword(ctx, admin, password) {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.jwtService.GenerateTokensPair(admin.ID, admin.Login)
	if err != nil {
		return nil, nil, fmt.Errorf("[AuthService] ошибка генерации токенов: %w", err)
	}

	return tokens, admin, nil
}

func (s *AuthenticationService) verifyPassword(ctx context.Context, admin *model.Administrator, password string) bool {
	if security.IsBcryptHash(admin.PasswordHash) {
		return security.CheckPassword(password, admin.PasswordHash)
	}

	// унаследованная запись: в поле лежит пароль в открытом виде
	if admin.PasswordHash != password {
		return false
	}

	log.Printf("администратор %s: обнаружен пароль в открытом виде, выполняется перехэширование", admin.Login)
	hash, err := security.HashPassword(password)
	if err != nil {
		log.Printf("не удалось захэшировать пароль при миграции: %v", err)
		return true // вход разрешен, миграция повторится при следующем входе
	}
	if err := s.adminRepository.UpdatePasswordHash(ctx, admin.ID, hash); err != nil {
		log.Printf("не удалось сохранить хэш пароля при миграции: %v", err)
	}
	return true
}

// Verify проверяет подпись и срок действия токена без побочных эффектов
func (s *AuthenticationService) Verify(token string) (*security.Claims, error) {
	return s.jwtService.ValidateJWT(token)
}

// Refresh выпускает новую пару токенов по действующему refresh токену
func (s *AuthenticationService) Refresh(ctx context.Context, refreshToken string) (*model.TokensPair, *model.Administrator, error) {
	claims, err := s.jwtService.ValidateJWT(refreshToken)
	if err != nil {
		return nil, nil, util.LogError("[AuthService] не удалось провалидировать refresh токен", err)
	}

	admin, err := s.adminRepository.FindByID(ctx, claims.AdminID)
	if err != nil {
		return nil, nil, util.LogError("[AuthService] администратор из refresh токена не найден", err)
	}
	if !admin.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	tokens, err := s.jwtService.GenerateTokensPair(admin.ID, admin.Login)
	if err != nil {
		return nil, nil, fmt.Errorf("[AuthService] ошибка генерации токенов: %w", err)
	}

	return tokens, admin, nil
}

// Profile возвращает учетную запись текущего администратора
func (s *AuthenticationService) Profile(ctx context.Context, adminID int64) (*model.Administrator, error) {
	admin, err := s.adminRepository.FindByID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] администратор не найден: %w", err)
	}
	if !admin.IsActive {
		return nil, ErrAccountDisabled
	}
	return admin, nil
}

// EnsureDefaultAdmin создает администратора по умолчанию, если таблица пуста.
// Это осознанное удобство первого запуска, а не рекомендация по безопасности.
func (s *AuthenticationService) EnsureDefaultAdmin(ctx context.Context) error {
	_, err := s.adminRepository.FindAdmin(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return fmt.Errorf("[AuthService] ошибка проверки наличия администратора: %w", err)
	}

	login := s.adminConfig.Login
	if login == "" {
		login = defaultAdminLogin
	}
	password := s.adminConfig.Password
	if password == "" {
		password = defaultAdminPassword
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("[AuthService] не удалось захэшировать пароль по умолчанию: %w", err)
	}

	admin, err := s.adminRepository.Create(ctx, login, hash)
	if err != nil {
		return fmt.Errorf("[AuthService] не удалось создать администратора: %w", err)
	}

	log.Printf("ВНИМАНИЕ: создан администратор по умолчанию %q (id=%d). Немедленно смените пароль!", admin.Login, admin.ID)
	return nil
}
