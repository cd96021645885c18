package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/querytube/insight-services/internal/apperr"
	"github.com/querytube/insight-services/internal/config"
	"github.com/querytube/insight-services/internal/models"
	"github.com/querytube/insight-services/internal/service"
	"github.com/rs/zerolog"
)

// AskHandler handles the sql assistant endpoints
type AskHandler struct {
	services *service.AssistantServices
	timeout  time.Duration
	log      zerolog.Logger
}

// NewAskHandler creates a new AskHandler
func NewAskHandler(services *service.AssistantServices, cfg *config.Config, log zerolog.Logger) *AskHandler {
	return &AskHandler{
		services: services,
		timeout:  cfg.Server.RequestTimeout,
		log:      log.With().Str("handler", "ask").Logger(),
	}
}

// Ask handles POST /ask
func (h *AskHandler) Ask(c *gin.Context) {
	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	resp, err := h.services.Ask.Ask(ctx, req.Question)
	if err != nil {
		status := apperr.HTTPStatus(apperr.KindOf(err))
		if status >= http.StatusInternalServerError {
			h.log.Error().Err(err).Str("question", req.Question).Msg("Ask failed")
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Health handles GET /health
func (h *AskHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Ask.Health(c.Request.Context()))
}
