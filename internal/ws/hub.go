package ws

import (
	"admin-chat-server/internal/util"
	"encoding/json"
	"log"
	"sync"
)

// Hub : реестр живых соединений по socketID.
// Долговечные привязки (администратор, клиенты) живут в БД,
// здесь только эфемерное отображение socketID -> соединение.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*Conn
}

func NewHub() *Hub {
	return &Hub{connections: make(map[string]*Conn)}
}

func (h *Hub) register(c *Conn) {
	h.mu.Lock()
	h.connections[c.id] = c
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Conn) {
	h.mu.Lock()
	if h.connections[c.id] == c {
		delete(h.connections, c.id)
	}
	h.mu.Unlock()
}

// SendTo сериализует кадр и кладет его в очередь соединения.
// Возвращает false, если соединения уже нет или его очередь переполнена —
// для вызывающего кода это не ошибка, сообщение остается в БД.
func (h *Hub) SendTo(socketID, event string, data interface{}) bool {
	h.mu.RLock()
	c := h.connections[socketID]
	h.mu.RUnlock()
	if c == nil {
		return false
	}

	payload, err := json.Marshal(data)
	if err != nil {
		util.LogError("ошибка сериализации кадра", err)
		return false
	}
	frame, err := json.Marshal(Frame{Event: event, Data: payload})
	if err != nil {
		util.LogError("ошибка сериализации кадра", err)
		return false
	}

	select {
	case c.send <- frame:
		return true
	default:
		// медленный получатель: очередь переполнена, кадр не доставлен
		log.Printf("очередь соединения %s переполнена, кадр %s отброшен", socketID, event)
		return false
	}
}

// Online возвращает число живых соединений
func (h *Hub) Online() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}
