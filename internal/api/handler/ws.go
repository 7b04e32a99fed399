package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"strangerchat/backend/internal/coordinator"
)

// ServeWebSocket upgrades the connection and registers the participant
// with the coordinator. The connection id comes from an /anonid token when
// one is presented (query param or bearer header); without one a fresh id
// is minted on the spot. An invalid token is rejected rather than silently
// replaced.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	connectionID, ok := h.connectionID(c)
	if !ok {
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return h.Config.OriginAllowed(r.Header.Get("Origin"))
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := coordinator.NewWebSocketClient(connectionID, conn, h.Coordinator, h.log)
	h.Coordinator.RegisterCh <- client
	client.Run()
}

func (h *Handler) connectionID(c *gin.Context) (string, bool) {
	tokenString := c.Query("token")
	if tokenString == "" {
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if tokenString == "" {
		return uuid.NewString(), true
	}

	anonID, err := ParseToken(tokenString, h.Config.JWTSecret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return "", false
	}
	return anonID, true
}
