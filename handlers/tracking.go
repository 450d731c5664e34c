package handlers

import (
	"context"
	"net/http"
	"time"

	"infinitewash/models"
	"infinitewash/services/tracking"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const trackingWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// TrackingHandler streams a simulated driver approach over a websocket.
type TrackingHandler struct {
	Interval time.Duration
	Logger   *zap.Logger
}

func NewTrackingHandler(interval time.Duration, logger *zap.Logger) *TrackingHandler {
	return &TrackingHandler{Interval: interval, Logger: logger}
}

type trackingEvent struct {
	Event string                `json:"event"`
	Data  models.TrackingSample `json:"data"`
}

// Stream handles GET /api/tracking/ws.
func (h *TrackingHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warn("tracking websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// The client never sends anything useful; reading only detects a close.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	sim := tracking.NewSimulator(h.Interval)
	err = sim.Run(ctx, func(s models.TrackingSample) error {
		_ = conn.SetWriteDeadline(time.Now().Add(trackingWriteWait))
		return conn.WriteJSON(trackingEvent{Event: "tracking.update", Data: s})
	})
	if err != nil && err != context.Canceled {
		h.Logger.Debug("tracking stream ended", zap.Error(err))
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(trackingWriteWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "arrived"))
}
