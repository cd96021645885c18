package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/querytube/insight-services/internal/apperr"
	"github.com/querytube/insight-services/internal/llm"
	"github.com/querytube/insight-services/internal/metrics"
	"github.com/querytube/insight-services/internal/models"
	"github.com/querytube/insight-services/internal/repository"
	"github.com/querytube/insight-services/internal/validation"
	"github.com/rs/zerolog"
)

const (
	sqlPromptTemplate     = "You are a %s expert. Translate this to SQL: %s. Table: sales (product_name, revenue, country). Return ONLY SQL."
	summaryPromptTemplate = "The user asked '%s' and the database returned %s. Explain this to them briefly."

	// DBErrorPrefix starts the result text of a query that failed to run
	DBErrorPrefix = "DB Error: "
)

// askService is the concrete implementation of AskService
type askService struct {
	repo    repository.QueryRepository
	model   llm.Generator
	dialect string
	log     zerolog.Logger
}

// newAskService creates a new AskService
func newAskService(repo repository.QueryRepository, model llm.Generator, dialect string, log zerolog.Logger) *askService {
	if model == nil {
		model = llm.Unconfigured{}
	}
	return &askService{
		repo:    repo,
		model:   model,
		dialect: dialect,
		log:     log.With().Str("service", "ask").Logger(),
	}
}

// Ask turns question into SQL, runs it through the read-only gate and
// asks the model to explain the outcome. Gate rejections and database
// failures become the result text; only model failures are returned as errors.
func (s *askService) Ask(ctx context.Context, question string) (*models.AskResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "question is required")
	}

	raw, err := s.generate(ctx, "sql", fmt.Sprintf(sqlPromptTemplate, s.dialect, question))
	if err != nil {
		return nil, fmt.Errorf("generate sql: %w", err)
	}
	query := validation.StripCodeFences(raw)

	result := s.executeSafe(ctx, query)

	summary, err := s.generate(ctx, "summary", fmt.Sprintf(summaryPromptTemplate, question, result.String()))
	if err != nil {
		return nil, fmt.Errorf("summarize results: %w", err)
	}

	return &models.AskResponse{
		SQL:     query,
		Results: result,
		Summary: summary,
	}, nil
}

// executeSafe never returns an error: rejections and database failures
// are reported through QueryResult.Error.
func (s *askService) executeSafe(ctx context.Context, query string) models.QueryResult {
	if err := validation.CheckReadOnly(query); err != nil {
		metrics.QueriesTotal.WithLabelValues("rejected").Inc()
		event := s.log.Warn().Str("sql", query)
		var roErr *validation.ReadOnlyError
		if errors.As(err, &roErr) {
			event = event.Str("keyword", roErr.Keyword)
		}
		event.Msg("Generated query rejected by read-only gate")
		return models.QueryResult{Error: err.Error()}
	}

	rows, err := s.repo.Query(ctx, query)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues("failed").Inc()
		s.log.Error().Err(err).Str("sql", query).Msg("Query execution failed")
		return models.QueryResult{Error: DBErrorPrefix + err.Error()}
	}

	metrics.QueriesTotal.WithLabelValues("executed").Inc()
	s.log.Info().Int("rows", len(rows)).Msg("Query executed")
	return models.QueryResult{Rows: rows}
}

func (s *askService) generate(ctx context.Context, stage, prompt string) (string, error) {
	text, err := s.model.Generate(ctx, prompt)
	if err != nil {
		metrics.ModelCalls.WithLabelValues(stage, "error").Inc()
		return "", err
	}
	metrics.ModelCalls.WithLabelValues(stage, "ok").Inc()
	return text, nil
}

// Health reports model configuration and database reachability
func (s *askService) Health(ctx context.Context) models.AssistantHealth {
	status := models.AssistantHealth{
		Status:          "Running",
		ModelConfigured: llm.IsConfigured(s.model),
		Database:        "up",
		Driver:          s.repo.Driver(),
	}
	if err := s.repo.Ping(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Database health check failed")
		status.Database = "down"
	}
	return status
}
