package ws

import (
	"admin-chat-server/internal/security"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 1 << 16
)

// Conn : одно живое соединение. claims == nil означает анонимного
// клиента; chatID заполняется после register или первого сообщения
// и читается только из горутины readPump.
type Conn struct {
	id     string
	ws     *websocket.Conn
	send   chan []byte
	server *Server
	claims *security.Claims
	chatID string
}

func (c *Conn) readPump() {
	defer func() {
		c.server.hub.unregister(c)
		c.server.cleanup(c)
		if err := c.ws.Close(); err != nil {
			log.Printf("ошибка закрытия соединения %s: %v", c.id, err)
		}
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("неожиданный разрыв соединения %s: %v", c.id, err)
			}
			break
		}

		var frame Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			log.Printf("некорректный кадр от %s: %v", c.id, err)
			continue
		}

		// события одного соединения обрабатываются строго по порядку поступления
		c.server.handleFrame(c, &frame)
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
