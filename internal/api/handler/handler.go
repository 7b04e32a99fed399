package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"strangerchat/backend/internal/config"
	"strangerchat/backend/internal/coordinator"
)

// Handler wires the HTTP surface to the coordinator.
type Handler struct {
	Coordinator *coordinator.Coordinator
	Config      *config.Config

	log zerolog.Logger
}

func NewHandler(coord *coordinator.Coordinator, cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{Coordinator: coord, Config: cfg, log: log}
}

// Status answers the root route with a plain liveness line.
func (h *Handler) Status(c *gin.Context) {
	c.String(http.StatusOK, "StrangerChat server is running")
}
