package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/querytube/insight-services/internal/apperr"
	"github.com/querytube/insight-services/internal/config"
	"github.com/querytube/insight-services/internal/models"
	"github.com/querytube/insight-services/internal/service"
	"github.com/rs/zerolog"
)

// CommentHandler handles the comment analyzer endpoints
type CommentHandler struct {
	services *service.SentimentServices
	timeout  time.Duration
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.SentimentServices, cfg *config.Config, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		timeout:  cfg.Server.RequestTimeout,
		log:      log.With().Str("handler", "comments").Logger(),
	}
}

// AnalyzeComments handles POST /analyze_comments/
func (h *CommentHandler) AnalyzeComments(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	records, err := h.services.Comments.Analyze(ctx, req)
	if err != nil {
		var ae *apperr.Error
		if !errors.As(err, &ae) {
			ae = apperr.Wrap(apperr.KindInternal, service.MsgUnexpectedPrefix+err.Error(), err)
		}
		if ae.Status() >= http.StatusInternalServerError {
			h.log.Error().Err(err).Str("url", req.URL).Msg("Comment analysis failed")
		}
		c.JSON(ae.Status(), gin.H{"detail": ae.Message})
		return
	}

	c.JSON(http.StatusOK, records)
}

// Health handles GET /health
func (h *CommentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Comments.Health())
}
