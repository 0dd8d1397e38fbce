package api

import (
	"net/http"
	"time"

	"DexPulse/internal/service/metrics"
	xlogger "DexPulse/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type streamConfig struct {
	pingInterval time.Duration
	writeWait    time.Duration
}

func defaultStreamConfig() streamConfig {
	return streamConfig{pingInterval: 30 * time.Second, writeWait: 10 * time.Second}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Stream pushes every refresh controller snapshot to a WebSocket client.
// Slow clients only see the latest snapshot.
func (h *SignalsEchoHandler) Stream(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("stream upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	metrics.StreamClients.Inc()
	defer metrics.StreamClients.Dec()

	snaps, unsubscribe := h.watcher.Subscribe()
	defer unsubscribe()

	// The server read/write timeouts still apply to the hijacked conn.
	pongWait := 2 * h.stream.pingInterval
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(h.stream.pingInterval)
	defer ping.Stop()

	remote := c.RealIP()
	h.logger.Debug("stream client connected", xlogger.String("remote", remote))
	for {
		select {
		case <-closed:
			h.logger.Debug("stream client disconnected", xlogger.String("remote", remote))
			return nil
		case snap, ok := <-snaps:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
					time.Now().Add(h.stream.writeWait))
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(h.stream.writeWait))
			if err := conn.WriteJSON(snap); err != nil {
				h.logger.Debug("stream write failed", xlogger.String("remote", remote), xlogger.Error(err))
				return nil
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(h.stream.writeWait)); err != nil {
				return nil
			}
		}
	}
}
