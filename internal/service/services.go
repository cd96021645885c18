package service

import (
	"context"

	"github.com/querytube/insight-services/internal/llm"
	"github.com/querytube/insight-services/internal/models"
	"github.com/querytube/insight-services/internal/repository"
	"github.com/querytube/insight-services/internal/sentiment"
	"github.com/querytube/insight-services/internal/youtube"
	"github.com/rs/zerolog"
)

// AskService answers natural language questions about the sales table
type AskService interface {
	Ask(ctx context.Context, question string) (*models.AskResponse, error)
	Health(ctx context.Context) models.AssistantHealth
}

// CommentService collects and scores the comments of a video
type CommentService interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) ([]models.CommentRecord, error)
	Health() models.CommentHealth
}

// AssistantServices holds the services of the sql assistant
type AssistantServices struct {
	Ask AskService
}

// SentimentServices holds the services of the comment analyzer
type SentimentServices struct {
	Comments CommentService
}

// NewAssistantServices wires the sql assistant. dialect names the SQL
// flavour the model is asked to write.
func NewAssistantServices(repos *repository.Repositories, model llm.Generator, dialect string, log zerolog.Logger) *AssistantServices {
	return &AssistantServices{
		Ask: newAskService(repos.Query, model, dialect, log),
	}
}

// NewSentimentServices wires the comment analyzer. source may be nil
// when no API key is configured; keyPresent reports whether one was supplied.
func NewSentimentServices(source youtube.CommentSource, keyPresent bool, classifier *sentiment.Classifier, log zerolog.Logger) *SentimentServices {
	return &SentimentServices{
		Comments: newCommentService(source, keyPresent, classifier, log),
	}
}
