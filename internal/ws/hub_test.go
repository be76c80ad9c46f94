package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_SendTo(t *testing.T) {
	hub := NewHub()
	c := &Conn{id: "sock-1", send: make(chan []byte, 1)}
	hub.register(c)

	ok := hub.SendTo("sock-1", EventMessageSent, MessageSentOut{Success: true, MessageID: "msg_1"})
	assert.True(t, ok)

	raw := <-c.send
	var frame Frame
	assert.NoError(t, json.Unmarshal(raw, &frame))
	assert.Equal(t, EventMessageSent, frame.Event)

	var out MessageSentOut
	assert.NoError(t, json.Unmarshal(frame.Data, &out))
	assert.True(t, out.Success)
	assert.Equal(t, "msg_1", out.MessageID)
}

func TestHub_SendTo_UnknownSocket(t *testing.T) {
	hub := NewHub()

	ok := hub.SendTo("нет-такого", EventMessageSent, MessageSentOut{})

	assert.False(t, ok)
}

// Переполненная очередь медленного получателя не блокирует отправителя
func TestHub_SendTo_FullQueueDropsFrame(t *testing.T) {
	hub := NewHub()
	c := &Conn{id: "sock-1", send: make(chan []byte, 1)}
	hub.register(c)

	assert.True(t, hub.SendTo("sock-1", EventMessageSent, MessageSentOut{}))
	assert.False(t, hub.SendTo("sock-1", EventMessageSent, MessageSentOut{}))
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()
	c := &Conn{id: "sock-1", send: make(chan []byte, 1)}
	hub.register(c)
	assert.Equal(t, 1, hub.Online())

	hub.unregister(c)
	assert.Equal(t, 0, hub.Online())
	assert.False(t, hub.SendTo("sock-1", EventMessageSent, MessageSentOut{}))
}

// Запоздавший unregister старого соединения не выбивает новое с тем же id
func TestHub_Unregister_StaleConnection(t *testing.T) {
	hub := NewHub()
	old := &Conn{id: "sock-1", send: make(chan []byte, 1)}
	hub.register(old)

	replacement := &Conn{id: "sock-1", send: make(chan []byte, 1)}
	hub.register(replacement)

	hub.unregister(old)

	assert.Equal(t, 1, hub.Online())
	assert.True(t, hub.SendTo("sock-1", EventMessageSent, MessageSentOut{}))
}
