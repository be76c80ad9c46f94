package service_test

import (
	"admin-chat-server/internal/model"
	"admin-chat-server/internal/security"
	"admin-chat-server/internal/service"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===== MOCKS =====

// MockAdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) FindAdmin(ctx context.Context) (*model.Administrator, error) {
	args := m.Called(ctx)
	if a, ok := args.Get(0).(*model.Administrator); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdminRepository) FindByLogin(ctx context.Context, login string) (*model.Administrator, error) {
	args := m.Called(ctx, login)
	if a, ok := args.Get(0).(*model.Administrator); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdminRepository) FindByID(ctx context.Context, id int64) (*model.Administrator, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*model.Administrator); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdminRepository) Create(ctx context.Context, login, passwordHash string) (*model.Administrator, error) {
	args := m.Called(ctx, login, passwordHash)
	if a, ok := args.Get(0).(*model.Administrator); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdminRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockAdminRepository) BindSocket(ctx context.Context, id int64, socketID string) error {
	args := m.Called(ctx, id, socketID)
	return args.Error(0)
}

func (m *MockAdminRepository) ClearSocketIfMatch(ctx context.Context, id int64, socketID string) (bool, error) {
	args := m.Called(ctx, id, socketID)
	return args.Bool(0), args.Error(1)
}

// MockClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByChatID(ctx context.Context, chatID string) (*model.Client, error) {
	args := m.Called(ctx, chatID)
	if c, ok := args.Get(0).(*model.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClientRepository) Upsert(ctx context.Context, chatID, name string) (*model.Client, error) {
	args := m.Called(ctx, chatID, name)
	if c, ok := args.Get(0).(*model.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClientRepository) BindSocket(ctx context.Context, chatID, socketID string) error {
	args := m.Called(ctx, chatID, socketID)
	return args.Error(0)
}

func (m *MockClientRepository) ClearSocketIfMatch(ctx context.Context, chatID, socketID string) (bool, error) {
	args := m.Called(ctx, chatID, socketID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) SetOnline(ctx context.Context, chatID string, online bool) error {
	args := m.Called(ctx, chatID, online)
	return args.Error(0)
}

// MockMessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Insert(ctx context.Context, message *model.Message) (*model.Message, error) {
	args := m.Called(ctx, message)
	if msg, ok := args.Get(0).(*model.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageRepository) GetConversation(ctx context.Context, userA, userB string, limit int) ([]*model.Message, error) {
	args := m.Called(ctx, userA, userB, limit)
	if msgs, ok := args.Get(0).([]*model.Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageRepository) GetRecent(ctx context.Context, userID string, limit int) ([]*model.Message, error) {
	args := m.Called(ctx, userID, limit)
	if msgs, ok := args.Get(0).([]*model.Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageRepository) GetUnread(ctx context.Context, userID string) ([]*model.Message, error) {
	args := m.Called(ctx, userID)
	if msgs, ok := args.Get(0).([]*model.Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, messageID string) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

func (m *MockMessageRepository) MarkConversationRead(ctx context.Context, userID, interlocutorID string) error {
	args := m.Called(ctx, userID, interlocutorID)
	return args.Error(0)
}

func (m *MockMessageRepository) Delete(ctx context.Context, messageID string) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

// MockJWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateTokensPair(adminID int64, login string) (*model.TokensPair, error) {
	args := m.Called(adminID, login)
	if t, ok := args.Get(0).(*model.TokensPair); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJWTService) ValidateJWT(token string) (*security.Claims, error) {
	args := m.Called(token)
	if c, ok := args.Get(0).(*security.Claims); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJWTService) AccessTokenTTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

func (m *MockJWTService) RefreshTokenTTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// ===== TESTS =====

func socketID(id string) *string {
	return &id
}

func TestChatService_SendToAdmin(t *testing.T) {
	ctx := context.Background()
	saved := &model.Message{ID: 1, MessageID: "msg_1_abc", FromID: "client-1", ToID: "admin", Text: "привет", Time: 1000, Type: "text"}

	tests := []struct {
		name          string
		setupMocks    func(a *MockAdminRepository, c *MockClientRepository, msg *MockMessageRepository)
		expectError   bool
		wantDelivered bool
		wantSocketID  string
	}{
		{
			name: "администратор онлайн, сообщение доставляется",
			setupMocks: func(a *MockAdminRepository, c *MockClientRepository, msg *MockMessageRepository) {
				msg.On("Insert", ctx, mock.Anything).Return(saved, nil)
				c.On("Upsert", ctx, "client-1", "").Return(&model.Client{ChatID: "client-1"}, nil)
				c.On("SetOnline", ctx, "client-1", true).Return(nil)
				a.On("FindAdmin", ctx).Return(&model.Administrator{ID: 1, Online: true, SocketID: socketID("sock-7")}, nil)
			},
			wantDelivered: true,
			wantSocketID:  "sock-7",
		},
		{
			name: "администратор оффлайн, сообщение остается в очереди",
			setupMocks: func(a *MockAdminRepository, c *MockClientRepository, msg *MockMessageRepository) {
				msg.On("Insert", ctx, mock.Anything).Return(saved, nil)
				c.On("Upsert", ctx, "client-1", "").Return(&model.Client{ChatID: "client-1"}, nil)
				c.On("SetOnline", ctx, "client-1", true).Return(nil)
				a.On("FindAdmin", ctx).Return(&model.Administrator{ID: 1, Online: false}, nil)
			},
			wantDelivered: false,
		},
		{
			name: "ошибка поиска администратора не отменяет запись",
			setupMocks: func(a *MockAdminRepository, c *MockClientRepository, msg *MockMessageRepository) {
				msg.On("Insert", ctx, mock.Anything).Return(saved, nil)
				c.On("Upsert", ctx, "client-1", "").Return(&model.Client{ChatID: "client-1"}, nil)
				c.On("SetOnline", ctx, "client-1", true).Return(nil)
				a.On("FindAdmin", ctx).Return(nil, errors.New("db error"))
			},
			wantDelivered: false,
		},
		{
			name: "ошибка вставки фатальна",
			setupMocks: func(a *MockAdminRepository, c *MockClientRepository, msg *MockMessageRepository) {
				msg.On("Insert", ctx, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			adminRepo := new(MockAdminRepository)
			clientRepo := new(MockClientRepository)
			messageRepo := new(MockMessageRepository)
			chatService := service.NewChatService(adminRepo, clientRepo, messageRepo)

			tt.setupMocks(adminRepo, clientRepo, messageRepo)

			result, err := chatService.SendToAdmin(ctx, "client-1", "admin", "привет", 1000)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, saved, result.Message)
				assert.Equal(t, tt.wantDelivered, result.Delivered)
				assert.Equal(t, tt.wantSocketID, result.RecipientSocketID)
			}

			adminRepo.AssertExpectations(t)
			clientRepo.AssertExpectations(t)
			messageRepo.AssertExpectations(t)
		})
	}
}

func TestChatService_SendToAdmin_GeneratesMessageID(t *testing.T) {
	ctx := context.Background()
	adminRepo := new(MockAdminRepository)
	clientRepo := new(MockClientRepository)
	messageRepo := new(MockMessageRepository)
	chatService := service.NewChatService(adminRepo, clientRepo, messageRepo)

	messageRepo.On("Insert", ctx, mock.MatchedBy(func(m *model.Message) bool {
		return strings.HasPrefix(m.MessageID, "msg_") && m.Time > 0 && m.Type == "text"
	})).Return(&model.Message{MessageID: "msg_1_abc"}, nil)
	clientRepo.On("Upsert", ctx, "client-1", "").Return(&model.Client{ChatID: "client-1"}, nil)
	clientRepo.On("SetOnline", ctx, "client-1", true).Return(nil)
	adminRepo.On("FindAdmin", ctx).Return(&model.Administrator{ID: 1}, nil)

	// sentAt == 0: время проставляет сервер
	_, err := chatService.SendToAdmin(ctx, "client-1", "admin", "привет", 0)
	assert.NoError(t, err)
	messageRepo.AssertExpectations(t)
}

// Конкурентные отправки от разных клиентов: каждое сообщение сохраняется
// со своим уникальным messageId, коллизий и потерянных записей нет
func TestChatService_SendToAdmin_ConcurrentSendsUniqueMessageIDs(t *testing.T) {
	const senders = 100

	adminRepo := new(MockAdminRepository)
	clientRepo := new(MockClientRepository)
	messageRepo := new(MockMessageRepository)
	chatService := service.NewChatService(adminRepo, clientRepo, messageRepo)

	var mu sync.Mutex
	seen := make(map[string]struct{})

	messageRepo.On("Insert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		message := args.Get(1).(*model.Message)
		mu.Lock()
		seen[message.MessageID] = struct{}{}
		mu.Unlock()
	}).Return(&model.Message{MessageID: "msg_1_abc"}, nil)
	clientRepo.On("Upsert", mock.Anything, mock.Anything, "").Return(&model.Client{}, nil)
	clientRepo.On("SetOnline", mock.Anything, mock.Anything, true).Return(nil)
	adminRepo.On("FindAdmin", mock.Anything).Return(&model.Administrator{ID: 1}, nil)

	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			fromID := fmt.Sprintf("client-%d", n)
			_, err := chatService.SendToAdmin(context.Background(), fromID, "admin", "привет", 0)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, seen, senders)
}

func TestChatService_SendToClient(t *testing.T) {
	ctx := context.Background()
	saved := &model.Message{ID: 2, MessageID: "msg_2_def", FromID: "admin", ToID: "client-1", Text: "ответ", Time: 2000, Type: "text"}

	tests := []struct {
		name          string
		setupMocks    func(c *MockClientRepository, msg *MockMessageRepository)
		wantDelivered bool
	}{
		{
			name: "клиент онлайн",
			setupMocks: func(c *MockClientRepository, msg *MockMessageRepository) {
				msg.On("Insert", ctx, mock.Anything).Return(saved, nil)
				c.On("FindByChatID", ctx, "client-1").Return(&model.Client{ChatID: "client-1", Online: true, SocketID: socketID("sock-3")}, nil)
			},
			wantDelivered: true,
		},
		{
			name: "клиент еще не подключался",
			setupMocks: func(c *MockClientRepository, msg *MockMessageRepository) {
				msg.On("Insert", ctx, mock.Anything).Return(saved, nil)
				c.On("FindByChatID", ctx, "client-1").Return(nil, nil)
			},
			wantDelivered: false,
		},
		{
			name: "клиент оффлайн",
			setupMocks: func(c *MockClientRepository, msg *MockMessageRepository) {
				msg.On("Insert", ctx, mock.Anything).Return(saved, nil)
				c.On("FindByChatID", ctx, "client-1").Return(&model.Client{ChatID: "client-1", Online: false}, nil)
			},
			wantDelivered: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			adminRepo := new(MockAdminRepository)
			clientRepo := new(MockClientRepository)
			messageRepo := new(MockMessageRepository)
			chatService := service.NewChatService(adminRepo, clientRepo, messageRepo)

			tt.setupMocks(clientRepo, messageRepo)

			result, err := chatService.SendToClient(ctx, "admin", "client-1", "ответ")

			assert.NoError(t, err)
			assert.Equal(t, tt.wantDelivered, result.Delivered)

			clientRepo.AssertExpectations(t)
			messageRepo.AssertExpectations(t)
		})
	}
}

func TestChatService_RegisterClient(t *testing.T) {
	ctx := context.Background()

	t.Run("успешная регистрация", func(t *testing.T) {
		adminRepo := new(MockAdminRepository)
		clientRepo := new(MockClientRepository)
		messageRepo := new(MockMessageRepository)
		chatService := service.NewChatService(adminRepo, clientRepo, messageRepo)

		clientRepo.On("Upsert", ctx, "client-1", "Иван").Return(&model.Client{ID: 1, ChatID: "client-1", Name: "Иван"}, nil)
		clientRepo.On("BindSocket", ctx, "client-1", "sock-9").Return(nil)

		client, err := chatService.RegisterClient(ctx, "client-1", "sock-9", "Иван")

		assert.NoError(t, err)
		assert.True(t, client.Online)
		assert.Equal(t, "sock-9", *client.SocketID)
		clientRepo.AssertExpectations(t)
	})

	t.Run("ошибка привязки сокета", func(t *testing.T) {
		adminRepo := new(MockAdminRepository)
		clientRepo := new(MockClientRepository)
		messageRepo := new(MockMessageRepository)
		chatService := service.NewChatService(adminRepo, clientRepo, messageRepo)

		clientRepo.On("Upsert", ctx, "client-1", "").Return(&model.Client{ID: 1, ChatID: "client-1"}, nil)
		clientRepo.On("BindSocket", ctx, "client-1", "sock-9").Return(errors.New("db error"))

		client, err := chatService.RegisterClient(ctx, "client-1", "sock-9", "")

		assert.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestChatService_ReleaseAdminSocket(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		cleared     bool
		repoError   error
		expectError bool
	}{
		{name: "привязка снята", cleared: true},
		{name: "привязка уже перезаписана новым соединением", cleared: false},
		{name: "ошибка хранилища", repoError: errors.New("db error"), expectError: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			adminRepo := new(MockAdminRepository)
			clientRepo := new(MockClientRepository)
			messageRepo := new(MockMessageRepository)
			chatService := service.NewChatService(adminRepo, clientRepo, messageRepo)

			adminRepo.On("ClearSocketIfMatch", ctx, int64(1), "sock-old").Return(tt.cleared, tt.repoError)

			err := chatService.ReleaseAdminSocket(ctx, 1, "sock-old")

			if tt.expectError {
				assert.Error(t, err)
			} else {
				// устаревшая привязка — не ошибка, disconnect обязан завершаться тихо
				assert.NoError(t, err)
			}
			adminRepo.AssertExpectations(t)
		})
	}
}

func TestChatService_GetRecent_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	adminRepo := new(MockAdminRepository)
	clientRepo := new(MockClientRepository)
	messageRepo := new(MockMessageRepository)
	chatService := service.NewChatService(adminRepo, clientRepo, messageRepo)

	messageRepo.On("GetRecent", ctx, "client-1", 50).Return([]*model.Message{}, nil)

	_, err := chatService.GetRecent(ctx, "client-1", 0)

	assert.NoError(t, err)
	messageRepo.AssertExpectations(t)
}

func TestChatService_GetConversation_UsesLimit(t *testing.T) {
	ctx := context.Background()
	adminRepo := new(MockAdminRepository)
	clientRepo := new(MockClientRepository)
	messageRepo := new(MockMessageRepository)
	chatService := service.NewChatService(adminRepo, clientRepo, messageRepo)

	messageRepo.On("GetConversation", ctx, "client-1", "admin", 100).Return([]*model.Message{}, nil)

	_, err := chatService.GetConversation(ctx, "client-1", "admin")

	assert.NoError(t, err)
	messageRepo.AssertExpectations(t)
}
