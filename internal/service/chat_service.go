package service

import (
	"admin-chat-server/internal/model"
	"admin-chat-server/internal/ports"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	conversationLimit  = 100
	defaultRecentLimit = 50

	messageTypeText = "text"
)

// ChatService : ретранслятор сообщений между клиентами и администратором.
// Сообщение сначала сохраняется, потом ищется живое соединение получателя;
// отсутствие соединения — штатная ситуация, сообщение остается в очереди БД.
type ChatService struct {
	adminRepository   ports.AdminRepositoryInterface
	clientRepository  ports.ClientRepositoryInterface
	messageRepository ports.MessageRepositoryInterface
}

func NewChatService(
	adminRepository ports.AdminRepositoryInterface,
	clientRepository ports.ClientRepositoryInterface,
	messageRepository ports.MessageRepositoryInterface,
) *ChatService {
	return &ChatService{
		adminRepository:   adminRepository,
		clientRepository:  clientRepository,
		messageRepository: messageRepository,
	}
}

// newMessageID : монотонное время + случайный суффикс, чтобы
// конкурентные отправки не выдавали одинаковые идентификаторы
func newMessageID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("msg_%d_%s", time.Now().UnixMilli(), suffix)
}

// SendToAdmin сохраняет сообщение клиента и возвращает директиву доставки.
// Побочный эффект: клиент создается при первом контакте и помечается онлайн.
func (s *ChatService) SendToAdmin(ctx context.Context, fromID, toID, text string, sentAt int64) (*model.SendResult, error) {
	if sentAt == 0 {
		sentAt = time.Now().UnixMilli()
	}

	message := &model.Message{
		MessageID: newMessageID(),
		FromID:    fromID,
		ToID:      toID,
		Text:      text,
		Time:      sentAt,
		Type:      messageTypeText,
	}

	saved, err := s.messageRepository.Insert(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("[ChatService] не удалось сохранить сообщение: %w", err)
	}

	if _, err := s.clientRepository.Upsert(ctx, fromID, ""); err != nil {
		log.Printf("[ChatService] не удалось зарегистрировать клиента %s: %v", fromID, err)
	} else if err := s.clientRepository.SetOnline(ctx, fromID, true); err != nil {
		log.Printf("[ChatService] не удалось пометить клиента %s онлайн: %v", fromID, err)
	}

	result := &model.SendResult{Message: saved}

	// ошибка поиска администратора не отменяет успешную запись:
	// сообщение уже лежит в БД и будет вычитано позже
	admin, err := s.adminRepository.FindAdmin(ctx)
	if err != nil {
		log.Printf("[ChatService] администратор недоступен для маршрутизации: %v", err)
		return result, nil
	}

	if admin.Online && admin.SocketID != nil {
		result.Delivered = true
		result.RecipientSocketID = *admin.SocketID
	}

	return result, nil
}

// SendToClient : симметричная отправка ответа администратора клиенту
func (s *ChatService) SendToClient(ctx context.Context, adminID, clientID, text string) (*model.SendResult, error) {
	message := &model.Message{
		MessageID: newMessageID(),
		FromID:    adminID,
		ToID:      clientID,
		Text:      text,
		Time:      time.Now().UnixMilli(),
		Type:      messageTypeText,
	}

	saved, err := s.messageRepository.Insert(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("[ChatService] не удалось сохранить сообщение: %w", err)
	}

	result := &model.SendResult{Message: saved}

	client, err := s.clientRepository.FindByChatID(ctx, clientID)
	if err != nil {
		log.Printf("[ChatService] клиент %s недоступен для маршрутизации: %v", clientID, err)
		return result, nil
	}

	if client != nil && client.Online && client.SocketID != nil {
		result.Delivered = true
		result.RecipientSocketID = *client.SocketID
	}

	return result, nil
}

// RegisterClient создает или обновляет клиента и привязывает его к соединению
func (s *ChatService) RegisterClient(ctx context.Context, chatID, socketID, name string) (*model.Client, error) {
	client, err := s.clientRepository.Upsert(ctx, chatID, name)
	if err != nil {
		return nil, fmt.Errorf("[ChatService] не удалось зарегистрировать клиента: %w", err)
	}

	if err := s.clientRepository.BindSocket(ctx, chatID, socketID); err != nil {
		return nil, fmt.Errorf("[ChatService] не удалось привязать сокет клиента: %w", err)
	}

	client.SocketID = &socketID
	client.Online = true
	return client, nil
}

// GetConversation : история переписки, по возрастанию времени.
// Результат одинаков при любом порядке аргументов.
func (s *ChatService) GetConversation(ctx context.Context, userA, userB string) ([]*model.Message, error) {
	return s.messageRepository.GetConversation(ctx, userA, userB, conversationLimit)
}

// GetRecent : последние сообщения для сводки диалогов, по убыванию времени
func (s *ChatService) GetRecent(ctx context.Context, userID string, limit int) ([]*model.Message, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.messageRepository.GetRecent(ctx, userID, limit)
}

// GetUnread : непрочитанные сообщения. Выборка не меняет флаг is_read.
func (s *ChatService) GetUnread(ctx context.Context, userID string) ([]*model.Message, error) {
	return s.messageRepository.GetUnread(ctx, userID)
}

func (s *ChatService) MarkRead(ctx context.Context, messageID string) error {
	return s.messageRepository.MarkRead(ctx, messageID)
}

func (s *ChatService) MarkConversationRead(ctx context.Context, userID, interlocutorID string) error {
	return s.messageRepository.MarkConversationRead(ctx, userID, interlocutorID)
}

// DeleteMessage : административное удаление сообщения из истории
func (s *ChatService) DeleteMessage(ctx context.Context, messageID string) error {
	return s.messageRepository.Delete(ctx, messageID)
}

func (s *ChatService) FindAdmin(ctx context.Context) (*model.Administrator, error) {
	return s.adminRepository.FindAdmin(ctx)
}

// BindAdminSocket привязывает администратора к новому соединению.
// Старое соединение не закрывается, оно просто перестает получать сообщения.
func (s *ChatService) BindAdminSocket(ctx context.Context, adminID int64, socketID string) error {
	return s.adminRepository.BindSocket(ctx, adminID, socketID)
}

// ReleaseAdminSocket снимает привязку при разрыве соединения.
// Условный UPDATE гарантирует, что обработчик отключения старого сокета
// не затрет привязку, созданную более свежим подключением.
func (s *ChatService) ReleaseAdminSocket(ctx context.Context, adminID int64, socketID string) error {
	cleared, err := s.adminRepository.ClearSocketIfMatch(ctx, adminID, socketID)
	if err != nil {
		return fmt.Errorf("[ChatService] не удалось снять привязку администратора: %w", err)
	}
	if !cleared {
		log.Printf("[ChatService] привязка администратора уже перезаписана более новым соединением, сокет %s не тронут", socketID)
	}
	return nil
}

func (s *ChatService) ReleaseClientSocket(ctx context.Context, chatID, socketID string) error {
	cleared, err := s.clientRepository.ClearSocketIfMatch(ctx, chatID, socketID)
	if err != nil {
		return fmt.Errorf("[ChatService] не удалось снять привязку клиента: %w", err)
	}
	if !cleared {
		log.Printf("[ChatService] привязка клиента %s уже перезаписана, сокет %s не тронут", chatID, socketID)
	}
	return nil
}
