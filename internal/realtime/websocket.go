package realtime

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096

	ActionSubscribeExperiment = "subscribe-experiment"
)

// ClientMessage is a request sent by a client over the socket.
type ClientMessage struct {
	Action       string `json:"action"`
	ExperimentID string `json:"experimentId"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades requests to WebSocket connections registered with hub.
func Handler(hub *Hub, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("failed to upgrade the websocket", "error", err)
			return
		}

		c := hub.Register()
		go writePump(ws, c, logger)
		readPump(ws, hub, c, logger)
	})
}

// readPump handles client requests until the connection fails, then
// unregisters the client, which also stops its writePump.
func readPump(ws *websocket.Conn, hub *Hub, c *Client, logger *slog.Logger) {
	defer hub.Unregister(c)

	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg ClientMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read failed", "client", c.ID, "error", err)
			}
			return
		}

		switch msg.Action {
		case ActionSubscribeExperiment:
			if code := strings.TrimSpace(msg.ExperimentID); code != "" {
				hub.Subscribe(c, code)
			}
		default:
			logger.Debug("ignoring client message", "client", c.ID, "action", msg.Action)
		}
	}
}

func writePump(ws *websocket.Conn, c *Client, logger *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = ws.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Warn("failed to write websocket message", "client", c.ID, "error", err)
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
