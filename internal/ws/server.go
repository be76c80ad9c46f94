package ws

import (
	"admin-chat-server/internal/ports"
	"admin-chat-server/internal/security"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// adminChatID : идентификатор администратора в адресации сообщений.
// Клиенты шлют сообщения с toId = "admin".
const adminChatID = "admin"

// persistTimeout ограничивает обращения к хранилищу из обработчиков
// событий: зависший запрос роняет событие, а не весь цикл соединения
const persistTimeout = 5 * time.Second

type Server struct {
	hub         *Hub
	chatService ports.ChatServiceInterface
	jwtService  ports.JWTServiceInterface
	upgrader    websocket.Upgrader
}

func NewServer(hub *Hub, chatService ports.ChatServiceInterface, jwtService ports.JWTServiceInterface) *Server {
	return &Server{
		hub:         hub,
		chatService: chatService,
		jwtService:  jwtService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS выполняет рукопожатие. Токен приходит query-параметром.
// Его отсутствие — не ошибка: соединение продолжается анонимным клиентом.
// Невалидный токен, напротив, фатален: рукопожатие отклоняется явно,
// тихого понижения до анонимного клиента не происходит.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	var claims *security.Claims

	if token := r.URL.Query().Get("token"); token != "" {
		var err error
		claims, err = s.jwtService.ValidateJWT(token)
		if err != nil {
			log.Printf("рукопожатие отклонено: %v", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"error":   "невалидный токен",
			})
			return
		}
	}

	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ошибка апгрейда соединения: %v", err)
		return
	}

	c := &Conn{
		id:     uuid.New().String(),
		ws:     wsConn,
		send:   make(chan []byte, 256),
		server: s,
		claims: claims,
	}
	s.hub.register(c)

	if claims != nil {
		ctx, cancel := context.WithTimeout(r.Context(), persistTimeout)
		err := s.chatService.BindAdminSocket(ctx, claims.AdminID, c.id)
		cancel()
		if err != nil {
			log.Printf("не удалось привязать сокет администратора: %v", err)
			s.hub.unregister(c)
			wsConn.Close()
			return
		}
		log.Printf("администратор %s подключен: %s", claims.Login, c.id)
	}

	go c.writePump()
	go c.readPump()
}

// cleanup снимает привязки при разрыве соединения. Снятие условное:
// если за это время случился реконнект, свежая привязка не затирается.
func (s *Server) cleanup(c *Conn) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if c.claims != nil {
		if err := s.chatService.ReleaseAdminSocket(ctx, c.claims.AdminID, c.id); err != nil {
			log.Printf("ошибка отвязки сокета администратора: %v", err)
		}
	}
	if c.chatID != "" {
		if err := s.chatService.ReleaseClientSocket(ctx, c.chatID, c.id); err != nil {
			log.Printf("ошибка отвязки сокета клиента: %v", err)
		}
	}
}

func (s *Server) handleFrame(c *Conn, frame *Frame) {
	switch frame.Event {
	case EventMessage:
		s.handleClientMessage(c, frame.Data)
	case EventAdminMessage:
		s.handleAdminMessage(c, frame.Data)
	case EventRegister:
		s.handleRegister(c, frame.Data)
	default:
		log.Printf("неизвестное событие %q от %s", frame.Event, c.id)
	}
}

// handleClientMessage : клиент пишет администратору
func (s *Server) handleClientMessage(c *Conn, data json.RawMessage) {
	var in MessageIn
	if err := json.Unmarshal(data, &in); err != nil || in.FromID == "" || in.Text == "" {
		s.hub.SendTo(c.id, EventMessageError, ErrorOut{Error: "некорректное сообщение"})
		return
	}
	if in.ToID == "" {
		in.ToID = adminChatID
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	// первое сообщение связывает соединение с клиентом
	if c.chatID == "" {
		if _, err := s.chatService.RegisterClient(ctx, in.FromID, c.id, ""); err != nil {
			log.Printf("не удалось привязать клиента %s: %v", in.FromID, err)
		} else {
			c.chatID = in.FromID
		}
	}

	result, err := s.chatService.SendToAdmin(ctx, in.FromID, in.ToID, in.Text, in.Timestamp)
	if err != nil {
		log.Printf("ошибка отправки сообщения от %s: %v", in.FromID, err)
		s.hub.SendTo(c.id, EventMessageError, ErrorOut{Error: "не удалось отправить сообщение"})
		return
	}

	s.hub.SendTo(c.id, EventMessageSent, MessageSentOut{
		Success:   true,
		MessageID: result.Message.MessageID,
		Timestamp: result.Message.Time,
		Queued:    !result.Delivered,
	})

	if result.Delivered {
		s.hub.SendTo(result.RecipientSocketID, EventNewClientMessage, NewClientMessageOut{
			Message: result.Message,
			IsAdmin: true,
		})
	} else {
		log.Printf("администратор оффлайн, сообщение %s сохранено в БД", result.Message.MessageID)
	}
}

// handleAdminMessage : администратор отвечает клиенту
func (s *Server) handleAdminMessage(c *Conn, data json.RawMessage) {
	if c.claims == nil {
		s.hub.SendTo(c.id, EventAdminMessageError, ErrorOut{Error: "только администратор может отправлять сообщения"})
		return
	}

	var in AdminMessageIn
	if err := json.Unmarshal(data, &in); err != nil || in.ClientID == "" || in.Text == "" {
		s.hub.SendTo(c.id, EventAdminMessageError, ErrorOut{Error: "некорректное сообщение"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	result, err := s.chatService.SendToClient(ctx, adminChatID, in.ClientID, in.Text)
	if err != nil {
		log.Printf("ошибка отправки ответа клиенту %s: %v", in.ClientID, err)
		s.hub.SendTo(c.id, EventAdminMessageError, ErrorOut{Error: "не удалось отправить сообщение"})
		return
	}

	s.hub.SendTo(c.id, EventAdminMessageSent, AdminMessageSentOut{
		Success:   true,
		MessageID: result.Message.MessageID,
		Queued:    !result.Delivered,
	})

	if result.Delivered {
		s.hub.SendTo(result.RecipientSocketID, EventNewAdminMessage, result.Message)
	}
}

// handleRegister : явная регистрация клиента на соединении
func (s *Server) handleRegister(c *Conn, data json.RawMessage) {
	var in RegisterIn
	if err := json.Unmarshal(data, &in); err != nil || in.ChatID == "" {
		s.hub.SendTo(c.id, EventMessageError, ErrorOut{Error: "некорректная регистрация"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	client, err := s.chatService.RegisterClient(ctx, in.ChatID, c.id, in.Name)
	if err != nil {
		log.Printf("ошибка регистрации клиента %s: %v", in.ChatID, err)
		s.hub.SendTo(c.id, EventMessageError, ErrorOut{Error: "не удалось зарегистрировать клиента"})
		return
	}

	c.chatID = in.ChatID
	s.hub.SendTo(c.id, EventRegistered, client)
}
