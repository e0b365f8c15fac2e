// internal/handlers/websocket/websocket.go
package websocket

import (
	"net/http"
	"time"

	"elizatrader-service/internal/middleware"
	"elizatrader-service/internal/pkg/response"
	service "elizatrader-service/internal/service/auth"
	ws "elizatrader-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WebSocketHandler struct {
	hub         *ws.Hub
	authService *service.AuthService
	logger      *zap.Logger
	upgrader    websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub, authService *service.AuthService, allowedOrigins []string, logger *zap.Logger) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

// HandleConnection upgrades an authenticated admin to the live event feed.
// The token arrives via query parameter or bearer header; browsers cannot
// set headers on websocket dials, hence the query fallback.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	token := middleware.ExtractToken(c)
	if token == "" {
		response.Unauthorized(c, "missing authentication token")
		return
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		h.logger.Warn("event feed authentication failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		response.Unauthorized(c, "authentication failed")
		return
	}
	if !claims.IsAdmin() {
		response.Forbidden(c, "insufficient permissions")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}

	client := ws.NewClient(h.hub, conn, claims.Identifier, h.logger)
	h.hub.RegisterClient(client)

	go client.WritePump()
	go client.ReadPump()
}

// GetStats returns event feed connection statistics (admin only).
func (h *WebSocketHandler) GetStats(c *gin.Context) {
	response.Success(c, http.StatusOK, "event feed stats", gin.H{
		"total_connections": h.hub.TotalClients(),
		"timestamp":         time.Now(),
	})
}
