package websocket

import (
	"context"
	"encoding/json"

	domainMessageLog "github.com/AzielCF/az-evo-relay/domains/messagelog"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

const (
	CodeMessageLogged   = "MESSAGE_LOGGED"
	CodeMessagesCleared = "MESSAGES_CLEARED"
)

type BroadcastMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Result  any    `json:"result,omitempty"`
}

// Hub fans message-log changes out to every connected websocket client.
// All client bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[*websocket.Conn]struct{}
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan BroadcastMessage
	done       chan struct{}
}

var _ domainMessageLog.IMessageLogListener = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]struct{}),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan BroadcastMessage, 64),
		done:       make(chan struct{}),
	}
}

// Publish queues a message without blocking; it is dropped when the hub is behind.
func (h *Hub) Publish(message BroadcastMessage) bool {
	select {
	case h.broadcast <- message:
		return true
	default:
		logrus.Warnf("[WS] Broadcast queue full, dropping %s", message.Code)
		return false
	}
}

func (h *Hub) MessageLogged(payload domainMessageLog.Payload, size int) {
	h.Publish(BroadcastMessage{Code: CodeMessageLogged, Message: "Mensagem registrada", Result: payload})
}

func (h *Hub) MessagesCleared(removed int) {
	h.Publish(BroadcastMessage{Code: CodeMessagesCleared, Message: "Mensagens limpas", Result: map[string]int{"removidas": removed}})
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for conn := range h.clients {
				h.closeConnection(conn)
			}
			return

		case conn := <-h.register:
			h.clients[conn] = struct{}{}
			logrus.Debug("[WS] Connection registered")

		case conn := <-h.unregister:
			delete(h.clients, conn)
			logrus.Debug("[WS] Connection unregistered")

		case message := <-h.broadcast:
			h.broadcastToLocal(message)
		}
	}
}

func (h *Hub) broadcastToLocal(message BroadcastMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		logrus.Errorf("[WS] Marshal error: %v", err)
		return
	}

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logrus.Errorf("[WS] Write error: %v", err)
			h.closeConnection(conn)
		}
	}
}

func (h *Hub) closeConnection(conn *websocket.Conn) {
	_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
	_ = conn.Close()
	delete(h.clients, conn)
}

// RegisterRoutes mounts the live message feed at /ws/mensagens. Clients only listen;
// anything they send is ignored.
func (h *Hub) RegisterRoutes(app fiber.Router) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})

	app.Get("/ws/mensagens", websocket.New(func(conn *websocket.Conn) {
		defer func() {
			select {
			case h.unregister <- conn:
			case <-h.done:
			}
			_ = conn.Close()
		}()

		select {
		case h.register <- conn:
		case <-h.done:
			return
		}

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					logrus.Debugf("[WS] read error: %v", err)
				}
				return
			}
		}
	}))
}
