package service

import (
	"admin-chat-server/internal/model"
	"admin-chat-server/internal/ports"
	"context"
	"fmt"
	"log"
)

// SettingsService : настройки виджета с кэшированием в Redis.
// Кэш хранит весь агрегат и сбрасывается любым обновлением.
type SettingsService struct {
	settingsRepository ports.SettingsRepositoryInterface
	cache              ports.SettingsCacheInterface
}

func NewSettingsService(
	settingsRepository ports.SettingsRepositoryInterface,
	cache ports.SettingsCacheInterface,
) *SettingsService {
	return &SettingsService{
		settingsRepository: settingsRepository,
		cache:              cache,
	}
}

func (s *SettingsService) GetAll(ctx context.Context) (*model.WidgetSettings, error) {
	cached, err := s.cache.GetSettings(ctx)
	if err != nil {
		log.Printf("[SettingsService] кэш недоступен, чтение из БД: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	settings := &model.WidgetSettings{}

	if settings.Socket, err = s.settingsRepository.GetSocket(ctx); err != nil {
		return nil, fmt.Errorf("[SettingsService] %w", err)
	}
	if settings.Consent, err = s.settingsRepository.GetConsent(ctx); err != nil {
		return nil, fmt.Errorf("[SettingsService] %w", err)
	}
	if settings.Colors, err = s.settingsRepository.GetColors(ctx); err != nil {
		return nil, fmt.Errorf("[SettingsService] %w", err)
	}
	if settings.Questions, err = s.settingsRepository.ListQuestions(ctx); err != nil {
		return nil, fmt.Errorf("[SettingsService] %w", err)
	}
	if settings.Contacts, err = s.settingsRepository.ListContacts(ctx); err != nil {
		return nil, fmt.Errorf("[SettingsService] %w", err)
	}

	if err := s.cache.SetSettings(ctx, settings); err != nil {
		log.Printf("[SettingsService] не удалось сохранить настройки в кэш: %v", err)
	}

	return settings, nil
}

func (s *SettingsService) UpdateSocket(ctx context.Context, settings *model.SocketSettings) error {
	if err := s.settingsRepository.UpdateSocket(ctx, settings); err != nil {
		return fmt.Errorf("[SettingsService] %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *SettingsService) UpdateConsent(ctx context.Context, settings *model.ConsentSettings) error {
	if err := s.settingsRepository.UpdateConsent(ctx, settings); err != nil {
		return fmt.Errorf("[SettingsService] %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *SettingsService) UpdateColors(ctx context.Context, settings *model.ColorSettings) error {
	if err := s.settingsRepository.UpdateColors(ctx, settings); err != nil {
		return fmt.Errorf("[SettingsService] %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *SettingsService) UpdateQuestion(ctx context.Context, question *model.QuestionSettings) error {
	if err := s.settingsRepository.UpdateQuestion(ctx, question); err != nil {
		return fmt.Errorf("[SettingsService] %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *SettingsService) UpdateContact(ctx context.Context, contact *model.ContactSettings) error {
	if err := s.settingsRepository.UpdateContact(ctx, contact); err != nil {
		return fmt.Errorf("[SettingsService] %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *SettingsService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("[SettingsService] не удалось сбросить кэш настроек: %v", err)
	}
}
